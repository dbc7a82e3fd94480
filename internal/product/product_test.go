// internal/product/product_test.go
//
// Unit-tests for the enum constructors and payload conversion.
//
// Run: go test ./internal/product -v

package product

import "testing"

func TestParseType(t *testing.T) {
	for _, m := range AllTypes {
		got, err := ParseType(string(m))
		if err != nil {
			t.Fatalf("ParseType(%q) error: %v", m, err)
		}
		if got != m {
			t.Fatalf("ParseType(%q) = %q", m, got)
		}
	}

	if _, err := ParseType(""); err == nil {
		t.Fatal("ParseType(\"\") should fail")
	}
	if _, err := ParseType("HAT"); err == nil {
		t.Fatal("ParseType(\"HAT\") should fail")
	}
}

func TestParseColor(t *testing.T) {
	for _, m := range AllColors {
		got, err := ParseColor(string(m))
		if err != nil {
			t.Fatalf("ParseColor(%q) error: %v", m, err)
		}
		if got != m {
			t.Fatalf("ParseColor(%q) = %q", m, got)
		}
	}

	if _, err := ParseColor("TEAL"); err == nil {
		t.Fatal("ParseColor(\"TEAL\") should fail")
	}
}

func TestPayloadPlaceholder(t *testing.T) {
	d := Draft{
		Name:  "Classic Tee",
		Price: 499,
		Type:  TypeTShirt,
		Color: ColorBlue,
	}

	p := d.Payload()
	if p.Image != PlaceholderImage {
		t.Fatalf("image = %q, want %q", p.Image, PlaceholderImage)
	}
	if p.Name != "Classic Tee" || p.Price != 499 || p.Type != TypeTShirt || p.Color != ColorBlue {
		t.Fatalf("payload mismatch: %+v", p)
	}
}

func TestPayloadKeepsUploadedImage(t *testing.T) {
	d := Draft{
		Name:  "Cap",
		Price: 12.50,
		Type:  TypeOther,
		Color: ColorBrown,
		Image: "data:image/png;base64,aGVsbG8=",
	}

	if got := d.Payload().Image; got != d.Image {
		t.Fatalf("image = %q, want uploaded data URI", got)
	}
}
