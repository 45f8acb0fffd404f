package adapters

import (
	"strings"

	"github.com/goliatone/go-kmlscene/pkg/kml"
	"github.com/goliatone/go-kmlscene/pkg/scene"
	"github.com/goliatone/go-kmlscene/pkg/style"
)

// core is the cross-cutting geometry behavior every adapter composes: the
// document node handle, the last associated style, the cached renderable,
// and per-pass bookkeeping. Concrete adapters call advance at the top of
// Render and attach when they construct their shape.
type core struct {
	node       *kml.Node
	style      *style.Style
	renderable scene.Renderable
	frame      uint64
}

// advance records the render pass the adapter last participated in. Shared
// bookkeeping runs before any tag-specific render logic.
func (c *core) advance(ctx *scene.Context) {
	if ctx == nil {
		return
	}
	c.frame = ctx.Frame()
}

// attach caches the renderable and registers it with the context's current
// layer. The renderable is owned by the adapter from here on.
func (c *core) attach(ctx *scene.Context, r scene.Renderable) {
	c.renderable = r
	if layer := ctx.CurrentLayer(); layer != nil {
		layer.Add(r)
	}
}

// Node returns the geometry element the adapter reads from.
func (c *core) Node() *kml.Node {
	return c.node
}

// Renderable returns the constructed shape, nil before construction.
func (c *core) Renderable() scene.Renderable {
	return c.renderable
}

// Style returns the style last associated with the adapter.
func (c *core) Style() *style.Style {
	return c.style
}

// RenderedFrame reports the frame number of the last render pass the
// adapter participated in.
func (c *core) RenderedFrame() uint64 {
	return c.frame
}

// appliedAltitudeMode resolves the document's altitude mode with the KML
// default of clamping to ground when the element is absent or empty.
func (c *core) appliedAltitudeMode() string {
	mode, ok := kml.StringField(c.node, "altitudeMode")
	if !ok {
		return scene.AltitudeClampToGround
	}
	if trimmed := strings.TrimSpace(mode); trimmed != "" {
		return trimmed
	}
	return scene.AltitudeClampToGround
}
