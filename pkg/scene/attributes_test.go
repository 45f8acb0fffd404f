package scene

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewShapeAttributesDefaults(t *testing.T) {
	attrs := NewShapeAttributes(nil)

	want := &ShapeAttributes{
		Fill:                  true,
		Outline:               true,
		OutlineStipplePattern: 0xffff,
	}
	if diff := cmp.Diff(want, attrs); diff != "" {
		t.Fatalf("default attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestNewShapeAttributesFromConfig(t *testing.T) {
	attrs := NewShapeAttributes(map[string]any{
		"lineColor":     "ff112233",
		"lineWidth":     2.5,
		"interiorColor": "7f445566",
		"fill":          false,
		"outline":       false,
	})

	if attrs.LineColor != "ff112233" {
		t.Fatalf("lineColor not applied: %q", attrs.LineColor)
	}
	if attrs.LineWidth != 2.5 {
		t.Fatalf("lineWidth not applied: %v", attrs.LineWidth)
	}
	if attrs.InteriorColor != "7f445566" {
		t.Fatalf("interiorColor not applied: %q", attrs.InteriorColor)
	}
	if attrs.Fill {
		t.Fatalf("explicit fill=false must be honored")
	}
	if attrs.Outline {
		t.Fatalf("explicit outline=false must be honored")
	}
}

func TestNewShapeAttributesNumericWidths(t *testing.T) {
	for _, width := range []any{int(3), int64(3), float32(3), float64(3)} {
		attrs := NewShapeAttributes(map[string]any{"lineWidth": width})
		if attrs.LineWidth != 3 {
			t.Fatalf("width %T not coerced, got %v", width, attrs.LineWidth)
		}
	}
}

func TestNewShapeAttributesIgnoresWrongTypes(t *testing.T) {
	attrs := NewShapeAttributes(map[string]any{
		"lineColor": 42,
		"fill":      "yes",
	})
	if attrs.LineColor != "" {
		t.Fatalf("non-string color must be ignored, got %q", attrs.LineColor)
	}
	if !attrs.Fill {
		t.Fatalf("non-bool fill must keep default true")
	}
}
