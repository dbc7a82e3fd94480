// internal/ua/ua.go
//
// User-Agent parsing helpers.
//
// This wrapper isolates the third-party `github.com/avct/uasurfer` API so
// the rest of the codebase never sees its enums or structs.  If we ever
// swap parsers, only this file changes.
package ua

import (
	"fmt"

	surfer "github.com/avct/uasurfer"
)

// Info carries the UA attributes used by the request-info middleware and the
// admin access log.
//
// Device will be one of: "Desktop", "Mobile", "Tablet", or "Other".
type Info struct {
	Browser   string
	Version   string
	OS        string
	OSVersion string
	Platform  string
	Device    string
	IsBot     bool
	Raw       string
}

// Parse converts a raw header into an Info struct.  After the first call
// the underlying library reuses internal buffers, so Parse allocates only
// on rarely-seen strings.
func Parse(raw string) Info {
	parsed := surfer.Parse(raw)

	info := Info{
		Browser:   parsed.Browser.Name.String(),
		Version:   versionToString(parsed.Browser.Version),
		OS:        parsed.OS.Name.String(),
		OSVersion: versionToString(parsed.OS.Version),
		Platform:  parsed.OS.Platform.String(),
		IsBot:     parsed.IsBot(),
		Raw:       raw,
	}

	switch parsed.DeviceType {
	case surfer.DeviceComputer:
		info.Device = "Desktop"
	case surfer.DevicePhone:
		info.Device = "Mobile"
	case surfer.DeviceTablet:
		info.Device = "Tablet"
	default:
		info.Device = "Other"
	}

	return info
}

// versionToString renders "Major.Minor.Patch", trimming zero patch levels.
func versionToString(v surfer.Version) string {
	if v.Patch == 0 {
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
