package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the scene pipeline.
type RenderOptions struct {
	// Title labels the output where the format has a place for one, such as
	// the HTML report heading or the scene JSON document name.
	Title string
	// Layers restricts output to the named layers. Empty means every layer
	// is rendered.
	Layers []string
	// Pretty requests indented output for formats that support it.
	Pretty bool
	// Template names an alternate template for template-backed renderers,
	// relative to their template root. Empty keeps the renderer's default.
	Template string
	// Metadata carries extra key/value pairs renderers may surface verbatim,
	// such as the source document location or generation timestamps.
	Metadata map[string]any
}

// IncludesLayer reports whether the options admit the named layer.
func (o RenderOptions) IncludesLayer(name string) bool {
	if len(o.Layers) == 0 {
		return true
	}
	for _, layer := range o.Layers {
		if layer == name {
			return true
		}
	}
	return false
}
