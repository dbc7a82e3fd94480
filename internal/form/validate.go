// internal/form/validate.go
//
// Shopadmin – Product form: validation rules.
//
// Context
//   The dialog collects raw field values: free text for name and description,
//   the price as typed into a number input, and the two select values.  At
//   submit time the whole set is validated as one unit.  On success the caller
//   gets a strongly-typed product.Draft it can trust; on failure it gets one
//   ErrorField per offending field so the template can highlight exact issues.
//   Validation is pure: no I/O, no mutation, and nothing leaves the client on
//   failure.
//
// Workflow
//   •  Validate trims and checks each field against its rule: name required,
//      price numeric and ≥ product.MinPrice, type and color members of their
//      enumerations.  Description carries no constraint.
//   •  Errors are field-scoped and non-fatal.  Callers wrap the []ErrorField
//      in a validationError and treat it as a user error, not a 500.
//
// Style
//   Comments follow the house guide: full sentences, two spaces after
//   periods, and Oxford commas.
//
//------------------------------------------------------------------------------

package form

import (
	"errors"
	"strconv"
	"strings"

	"github.com/yanizio/shopadmin/internal/product"
)

// -----------------------------------------------------------------------------
// Error types
// -----------------------------------------------------------------------------

// ErrorKind classifies a field failure so callers can branch on cause rather
// than parse messages.
type ErrorKind string

const (
	// KindRequired marks an empty mandatory text field.
	KindRequired ErrorKind = "required"
	// KindRange marks a numeric value outside its allowed range, including
	// values that failed to parse as numbers at all.
	KindRange ErrorKind = "range"
	// KindSelection marks a select control whose value is absent or not a
	// member of its closed enumeration.
	KindSelection ErrorKind = "selection"
)

// ErrorField describes a single validation failure so the dialog can render
// a message beneath the offending control.
type ErrorField struct {
	Name    string    // field name
	Kind    ErrorKind // failure class
	Message string    // user-facing message
}

// validationError wraps []ErrorField and satisfies the error interface.
//
// It lets callers distinguish user input errors from system failures via
// errors.As / IsValidationError.
type validationError struct{ Fields []ErrorField }

func (ve validationError) Error() string { return "product form validation failed" }

// IsValidationError reports whether err came from a failed Validate.
func IsValidationError(err error) bool {
	var ve validationError
	return errors.As(err, &ve)
}

// ValidationFields extracts the field errors carried by err, or nil when err
// is not a validation error.
func ValidationFields(err error) []ErrorField {
	var ve validationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

// -----------------------------------------------------------------------------
// Raw input
// -----------------------------------------------------------------------------

// RawDraft holds the field values exactly as the user entered them.  Price
// stays a string until validation so a non-numeric entry surfaces as a field
// error instead of a decode failure.  Image is the data URI captured by the
// file picker, or empty when nothing was chosen.
type RawDraft struct {
	Name        string
	Description string
	Price       string
	Type        string
	Color       string
	Image       string
}

// -----------------------------------------------------------------------------
// Public API
// -----------------------------------------------------------------------------

// Validate checks raw as a whole unit and returns either a typed draft that
// satisfies every invariant, or the full set of field errors.  All-or-nothing:
// a draft is never partially accepted.
func Validate(raw RawDraft) (product.Draft, []ErrorField) {
	var errs []ErrorField
	var d product.Draft

	d.Name = strings.TrimSpace(raw.Name)
	if d.Name == "" {
		errs = append(errs, ErrorField{"name", KindRequired, "Product name is required."})
	}

	// Description is optional and unconstrained.
	d.Description = raw.Description

	priceRaw := strings.TrimSpace(raw.Price)
	price, perr := strconv.ParseFloat(priceRaw, 64)
	switch {
	case priceRaw == "" || perr != nil:
		errs = append(errs, ErrorField{"price", KindRange, "Price must be a number."})
	case price < product.MinPrice:
		errs = append(errs, ErrorField{"price", KindRange, "Price must be greater than zero."})
	default:
		d.Price = price
	}

	if typ, err := product.ParseType(raw.Type); err != nil {
		errs = append(errs, ErrorField{"type", KindSelection, "Please select a product type."})
	} else {
		d.Type = typ
	}

	if col, err := product.ParseColor(raw.Color); err != nil {
		errs = append(errs, ErrorField{"color", KindSelection, "Please select a color."})
	} else {
		d.Color = col
	}

	// Image needs no checking here: the data URI was produced by our own
	// reader, and the empty case falls back to the placeholder at payload
	// time.
	d.Image = raw.Image

	if len(errs) > 0 {
		return product.Draft{}, errs
	}
	return d, nil
}
