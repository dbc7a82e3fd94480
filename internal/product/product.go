// internal/product/product.go
//
// Shopadmin – Product domain types.
//
// Context
//   The admin dialog edits a transient product draft: name, description,
//   price, a garment type, a color, and an optional image.  Type and Color
//   are closed enumerations.  They are typed strings with Parse constructors
//   so an unknown selection is rejected at the boundary, and every consumer
//   switches exhaustively over the declared constants.  Adding a member means
//   touching the constant block and the All* slice in one place.
//
// Style
//   Two-space sentence spacing, Oxford comma, concise inline notes.
//
//------------------------------------------------------------------------------

package product

import "fmt"

// PlaceholderImage is the literal image reference submitted when the user
// picked no file.  The catalog stores it verbatim.
const PlaceholderImage = "random.jpg"

// MinPrice is the smallest accepted price.  One cent granularity.
const MinPrice = 0.01

// -----------------------------------------------------------------------------
// Type enumeration
// -----------------------------------------------------------------------------

// Type is the closed garment-type enumeration.
type Type string

const (
	TypeTShirt Type = "TSHIRT"
	TypeJeans  Type = "JEANS"
	TypeShirt  Type = "SHIRT"
	TypeOther  Type = "OTHER"
)

// AllTypes lists every member in display order.
var AllTypes = []Type{TypeTShirt, TypeJeans, TypeShirt, TypeOther}

// ParseType returns the Type for raw, or an error when raw is not a member.
// The empty string is reported as "no selection" rather than "bad value" so
// callers can phrase the message accordingly.
func ParseType(raw string) (Type, error) {
	switch Type(raw) {
	case TypeTShirt, TypeJeans, TypeShirt, TypeOther:
		return Type(raw), nil
	case "":
		return "", fmt.Errorf("product type: no selection")
	default:
		return "", fmt.Errorf("product type: unknown value %q", raw)
	}
}

// Valid reports membership.  Exhaustive over the constant block.
func (t Type) Valid() bool {
	switch t {
	case TypeTShirt, TypeJeans, TypeShirt, TypeOther:
		return true
	}
	return false
}

// Label returns the human-readable name shown in the select control.
func (t Type) Label() string {
	switch t {
	case TypeTShirt:
		return "T-Shirt"
	case TypeJeans:
		return "Jeans"
	case TypeShirt:
		return "Shirt"
	case TypeOther:
		return "Other"
	default:
		return string(t)
	}
}

// -----------------------------------------------------------------------------
// Color enumeration
// -----------------------------------------------------------------------------

// Color is the closed color enumeration.
type Color string

const (
	ColorRed    Color = "RED"
	ColorBlue   Color = "BLUE"
	ColorGreen  Color = "GREEN"
	ColorYellow Color = "YELLOW"
	ColorPurple Color = "PURPLE"
	ColorOrange Color = "ORANGE"
	ColorPink   Color = "PINK"
	ColorBrown  Color = "BROWN"
)

// AllColors lists every member in display order.
var AllColors = []Color{
	ColorRed, ColorBlue, ColorGreen, ColorYellow,
	ColorPurple, ColorOrange, ColorPink, ColorBrown,
}

// ParseColor returns the Color for raw, or an error when raw is not a member.
func ParseColor(raw string) (Color, error) {
	switch Color(raw) {
	case ColorRed, ColorBlue, ColorGreen, ColorYellow,
		ColorPurple, ColorOrange, ColorPink, ColorBrown:
		return Color(raw), nil
	case "":
		return "", fmt.Errorf("product color: no selection")
	default:
		return "", fmt.Errorf("product color: unknown value %q", raw)
	}
}

// Valid reports membership.  Exhaustive over the constant block.
func (c Color) Valid() bool {
	switch c {
	case ColorRed, ColorBlue, ColorGreen, ColorYellow,
		ColorPurple, ColorOrange, ColorPink, ColorBrown:
		return true
	}
	return false
}

// -----------------------------------------------------------------------------
// Draft
// -----------------------------------------------------------------------------

// Draft is the in-memory, not-yet-persisted product the user is editing.  A
// Draft produced by form.Validate satisfies every invariant: Name non-empty,
// Price ≥ MinPrice, Type and Color members of their enumerations.  Image is
// either a data URI captured from the file picker or empty; the submission
// payload substitutes PlaceholderImage for the empty case.
type Draft struct {
	Name        string
	Description string
	Price       float64
	Type        Type
	Color       Color
	Image       string
}

// Payload is the wire shape POSTed to the catalog create endpoint.
type Payload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Type        Type    `json:"type"`
	Color       Color   `json:"color"`
	Image       string  `json:"image"`
}

// Payload converts the draft to its outbound form.  The image field is always
// present: user-supplied data, or the placeholder when nothing was chosen.
func (d Draft) Payload() Payload {
	img := d.Image
	if img == "" {
		img = PlaceholderImage
	}
	return Payload{
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Type:        d.Type,
		Color:       d.Color,
		Image:       img,
	}
}
