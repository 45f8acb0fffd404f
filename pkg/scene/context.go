package scene

import (
	"github.com/goliatone/go-kmlscene/pkg/style"
)

// KMLOptions carries the KML-specific per-pass state adapters consult.
type KMLOptions struct {
	// LastStyle is the style resolved for the feature currently being
	// rendered. Nil signals that no style is available yet, deferring
	// renderable construction to a later pass.
	LastStyle *style.Style
}

// Context is the per-frame state handed to adapters during a render pass:
// the active drawing layer, the frame counter, and KML options.
type Context struct {
	KML KMLOptions

	layer *Layer
	frame uint64
}

// NewContext constructs a context with an initial current layer, which may
// be nil when the first pass assigns layers per binding.
func NewContext(layer *Layer) *Context {
	return &Context{layer: layer}
}

// CurrentLayer returns the active drawing layer.
func (c *Context) CurrentLayer() *Layer {
	if c == nil {
		return nil
	}
	return c.layer
}

// SetCurrentLayer switches the active drawing layer.
func (c *Context) SetCurrentLayer(layer *Layer) {
	if c == nil {
		return
	}
	c.layer = layer
}

// Frame returns the current frame number. The counter starts at zero and
// advances once per render pass.
func (c *Context) Frame() uint64 {
	if c == nil {
		return 0
	}
	return c.frame
}

func (c *Context) advanceFrame() {
	c.frame++
}
