// Package scene holds the rendering surface the KML geometry adapters bind
// into: renderable shape primitives, layers, the per-frame render context,
// and the scene assembled from a document. The heavy rendering machinery
// (tessellation, terrain, draw ordering) lives in the host renderer; these
// types are the data-level contract it consumes.
package scene

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-kmlscene/pkg/kml"
	"github.com/goliatone/go-kmlscene/pkg/style"
)

// Renderable is an object registered with a layer so the host draws it each
// frame. Concrete shapes live in this package; renderers dispatch on Kind.
// Prepare runs once per render pass before drawing; shapes use it to report
// geometry defects their constructors deliberately do not check.
type Renderable interface {
	Kind() string
	Prepare(ctx *Context) error
}

// Adapter binds one KML geometry element to a renderable shape. Adapters own
// their renderable exclusively after construction and participate in every
// render pass.
type Adapter interface {
	// TagNames reports the KML element names the adapter handles.
	TagNames() []string

	// Render participates in one render pass. Construction of the
	// renderable is deferred until the context carries a resolved style.
	Render(ctx *Context)

	// Renderable returns the constructed shape, nil before construction.
	Renderable() Renderable

	// Style returns the style last associated with the adapter.
	Style() *style.Style
}

// Factory constructs an adapter for one geometry node.
type Factory func(node *kml.Node) Adapter

// FactorySource resolves a KML tag name to an adapter factory.
type FactorySource interface {
	Get(tag string) (Factory, bool)
}

// StyleResolver resolves a feature's effective style; nil means the style is
// not available yet and construction stays deferred.
type StyleResolver interface {
	Resolve(feature *kml.Node) *style.Style
}

// Binding couples one document feature to its geometry adapter, resolved
// style, and target layer.
type Binding struct {
	ID      string
	Name    string
	Tag     string
	Feature *kml.Node
	Node    *kml.Node
	Adapter Adapter
	Style   *style.Style
	Layer   *Layer
}

// Scene is the layered content assembled from one document.
type Scene struct {
	layers   []*Layer
	bindings []*Binding
}

// NewScene assembles a scene from prebuilt layers and bindings. Most callers
// go through Builder; hosts composing content manually can wire layers in
// directly.
func NewScene(layers []*Layer, bindings []*Binding) *Scene {
	return &Scene{
		layers:   append([]*Layer(nil), layers...),
		bindings: append([]*Binding(nil), bindings...),
	}
}

// Layers returns the scene's layers in creation order.
func (s *Scene) Layers() []*Layer {
	if s == nil {
		return nil
	}
	out := make([]*Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// Bindings returns the feature bindings in document order.
func (s *Scene) Bindings() []*Binding {
	if s == nil {
		return nil
	}
	out := make([]*Binding, len(s.bindings))
	copy(out, s.bindings)
	return out
}

// FindBinding looks a binding up by feature id.
func (s *Scene) FindBinding(id string) (*Binding, bool) {
	if s == nil || id == "" {
		return nil, false
	}
	for _, b := range s.bindings {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// RenderableCount sums the renderables registered across all layers.
func (s *Scene) RenderableCount() int {
	if s == nil {
		return 0
	}
	total := 0
	for _, layer := range s.layers {
		total += layer.Len()
	}
	return total
}

// Pass runs one render pass over every binding: the context's current layer
// and last-known style are set per binding before its adapter renders.
// Bindings without a resolved style keep deferring construction. After the
// binding loop every layer renderable is prepared; the first preparation
// failure aborts the pass.
func (s *Scene) Pass(ctx *Context) error {
	if s == nil {
		return errors.New("scene: scene is nil")
	}
	if ctx == nil {
		return errors.New("scene: context is required")
	}

	ctx.advanceFrame()
	for _, b := range s.bindings {
		if b.Adapter == nil {
			return fmt.Errorf("scene: binding %s has no adapter", b.ID)
		}
		ctx.SetCurrentLayer(b.Layer)
		ctx.KML.LastStyle = b.Style
		b.Adapter.Render(ctx)
	}
	ctx.KML.LastStyle = nil

	for _, layer := range s.layers {
		for _, r := range layer.Renderables() {
			if err := r.Prepare(ctx); err != nil {
				return fmt.Errorf("scene: prepare %s on layer %q: %w", r.Kind(), layer.Name(), err)
			}
		}
	}
	return nil
}
