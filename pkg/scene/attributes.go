package scene

// ShapeAttributes is the visual attribute set a renderable shape is
// constructed with. Built from a style's configuration mapping; callers
// treat the value as frozen once a shape holds it.
type ShapeAttributes struct {
	LineColor     string
	LineWidth     float64
	InteriorColor string
	Fill          bool
	Outline       bool

	DrawVerticals         bool
	Lighting              bool
	DepthTest             bool
	OutlineStippleFactor  int
	OutlineStipplePattern uint16
}

// NewShapeAttributes builds an attribute set from a configuration mapping.
// Missing entries fall back to KML defaults: filled, outlined, solid
// stipple pattern. A nil mapping yields the default set.
func NewShapeAttributes(config map[string]any) *ShapeAttributes {
	attrs := &ShapeAttributes{
		Fill:                  true,
		Outline:               true,
		OutlineStipplePattern: 0xffff,
	}

	if color, ok := configString(config, "lineColor"); ok {
		attrs.LineColor = color
	}
	if width, ok := configFloat(config, "lineWidth"); ok {
		attrs.LineWidth = width
	}
	if color, ok := configString(config, "interiorColor"); ok {
		attrs.InteriorColor = color
	}
	if fill, ok := configBool(config, "fill"); ok {
		attrs.Fill = fill
	}
	if outline, ok := configBool(config, "outline"); ok {
		attrs.Outline = outline
	}

	return attrs
}

func configString(config map[string]any, key string) (string, bool) {
	if config == nil {
		return "", false
	}
	if value, ok := config[key].(string); ok {
		return value, true
	}
	return "", false
}

func configFloat(config map[string]any, key string) (float64, bool) {
	if config == nil {
		return 0, false
	}
	switch value := config[key].(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	}
	return 0, false
}

func configBool(config map[string]any, key string) (bool, bool) {
	if config == nil {
		return false, false
	}
	if value, ok := config[key].(bool); ok {
		return value, true
	}
	return false, false
}
