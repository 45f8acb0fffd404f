package scene

// Layer owns an ordered list of renderables. Layers are single-writer:
// one logical render pass mutates them at a time, so no locking is needed.
type Layer struct {
	name        string
	renderables []Renderable
}

// NewLayer constructs an empty named layer.
func NewLayer(name string) *Layer {
	return &Layer{name: name}
}

// Name returns the layer name.
func (l *Layer) Name() string {
	if l == nil {
		return ""
	}
	return l.name
}

// Add registers a renderable with the layer.
func (l *Layer) Add(r Renderable) {
	if l == nil || r == nil {
		return
	}
	l.renderables = append(l.renderables, r)
}

// Renderables returns a snapshot of the registered renderables in order.
func (l *Layer) Renderables() []Renderable {
	if l == nil {
		return nil
	}
	out := make([]Renderable, len(l.renderables))
	copy(out, l.renderables)
	return out
}

// Len reports the number of registered renderables.
func (l *Layer) Len() int {
	if l == nil {
		return 0
	}
	return len(l.renderables)
}
