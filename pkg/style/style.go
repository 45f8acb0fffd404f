// Package style models resolved KML visual configuration. A Style carries a
// normal and a highlight presentation state; geometry adapters consult only
// the normal state and keep highlight handling deliberately unimplemented.
package style

import (
	"strings"

	"github.com/goliatone/go-kmlscene/pkg/kml"
)

// Presentation is the visual configuration for one presentation state.
// Colors use the KML aabbggrr hex form, normalized to lowercase. Unset
// fields stay at their zero values; Fill and Outline use pointers so
// explicit false survives resolution.
type Presentation struct {
	LineColor     string
	LineWidth     float64
	InteriorColor string
	Fill          *bool
	Outline       *bool
}

// IsZero reports whether no field of the presentation was ever set.
func (p Presentation) IsZero() bool {
	return p.LineColor == "" && p.LineWidth == 0 && p.InteriorColor == "" &&
		p.Fill == nil && p.Outline == nil
}

// Style is a resolved visual configuration with normal and highlight
// states. BalloonText carries the raw balloon template when the source
// style declares one.
type Style struct {
	ID          string
	Normal      Presentation
	Highlight   Presentation
	BalloonText string
}

// Generate produces the plain configuration mapping of visual fields
// consumed by shape-attribute construction. Only set fields appear; a zero
// normal presentation yields an empty mapping.
func (s *Style) Generate() map[string]any {
	config := map[string]any{}
	if s == nil {
		return config
	}

	p := s.Normal
	if p.LineColor != "" {
		config["lineColor"] = p.LineColor
	}
	if p.LineWidth > 0 {
		config["lineWidth"] = p.LineWidth
	}
	if p.InteriorColor != "" {
		config["interiorColor"] = p.InteriorColor
	}
	if p.Fill != nil {
		config["fill"] = *p.Fill
	}
	if p.Outline != nil {
		config["outline"] = *p.Outline
	}
	return config
}

// ParseStyle reads a <Style> element (LineStyle, PolyStyle, and
// BalloonStyle children) into a Style. Unknown children are ignored.
func ParseStyle(n *kml.Node) *Style {
	st := &Style{ID: n.ID()}
	st.Normal = parsePresentation(n)

	if balloon, ok := kml.Child(n, "BalloonStyle"); ok {
		if text, ok := kml.StringField(balloon, "text"); ok {
			st.BalloonText = text
		}
	}
	return st
}

func parsePresentation(n *kml.Node) Presentation {
	var p Presentation

	if line, ok := kml.Child(n, "LineStyle"); ok {
		if color, ok := kml.StringField(line, "color"); ok {
			p.LineColor = normalizeColor(color)
		}
		if width, ok := kml.FloatField(line, "width"); ok {
			p.LineWidth = width
		}
	}

	if poly, ok := kml.Child(n, "PolyStyle"); ok {
		if color, ok := kml.StringField(poly, "color"); ok {
			p.InteriorColor = normalizeColor(color)
		}
		if fill, ok := kml.BoolField(poly, "fill"); ok {
			value := fill
			p.Fill = &value
		}
		if outline, ok := kml.BoolField(poly, "outline"); ok {
			value := outline
			p.Outline = &value
		}
	}

	return p
}

func normalizeColor(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
