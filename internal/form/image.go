// internal/form/image.go
//
// Shopadmin – Product form: image capture.
//
// Context
//   When the user picks a file, its bytes are read and stored on the draft as
//   a data URI, which doubles as the preview source and the submitted image
//   value.  When no file is picked, the draft image stays empty and the
//   payload falls back to product.PlaceholderImage.
//
//   The 2 MB limit shown next to the picker is advisory UI copy only; nothing
//   enforces it here or server-side.  Likewise no type sniff rejects non-image
//   files.  Both are accepted gaps, not bugs to fix silently.
//
//------------------------------------------------------------------------------

package form

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

// extMIME maps common image extensions to their MIME type.  Unknown
// extensions fall through to content sniffing.
var extMIME = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// ReadDataURI consumes r and returns its contents as a base64 data URI.  The
// MIME type comes from the file extension when recognized, otherwise from
// sniffing the first bytes.
func ReadDataURI(filename string, r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read image %s: %w", filename, err)
	}

	mime, ok := extMIME[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		mime = http.DetectContentType(raw)
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}
