package adapters

import (
	"github.com/goliatone/go-kmlscene/pkg/geom"
	"github.com/goliatone/go-kmlscene/pkg/kml"
	"github.com/goliatone/go-kmlscene/pkg/scene"
	"github.com/goliatone/go-kmlscene/pkg/style"
)

var polygonTags = []string{"Polygon"}

// Polygon adapts a KML <Polygon> element into a renderable polygon shape.
// Construction is lazy: the shape is built on the first render pass that
// carries a resolved style, and reused on every later pass.
type Polygon struct {
	core
}

var _ scene.Adapter = (*Polygon)(nil)

// NewPolygon returns a polygon adapter bound to node.
func NewPolygon(node *kml.Node) *Polygon {
	return &Polygon{core: core{node: node}}
}

// TagNames returns the KML element names this adapter handles.
func (p *Polygon) TagNames() []string {
	return append([]string(nil), polygonTags...)
}

// Extrude reads the document's <extrude> flag. The second return reports
// whether the element is present and parseable.
func (p *Polygon) Extrude() (bool, bool) {
	return kml.BoolField(p.node, "extrude")
}

// Tessellate reads the document's <tessellate> flag.
func (p *Polygon) Tessellate() (bool, bool) {
	return kml.BoolField(p.node, "tessellate")
}

// AltitudeMode reads the document's <altitudeMode> value.
func (p *Polygon) AltitudeMode() (string, bool) {
	return kml.StringField(p.node, "altitudeMode")
}

// OuterBoundary returns the ring parsed from the outer boundary element.
func (p *Polygon) OuterBoundary() (*geom.Ring, bool) {
	return kml.BoundaryRing(p.node, "outerBoundaryIs")
}

// InnerBoundary returns the ring parsed from the inner boundary element.
// Only the first inner boundary is consulted; a polygon renders at most
// one hole.
func (p *Polygon) InnerBoundary() (*geom.Ring, bool) {
	return kml.BoundaryRing(p.node, "innerBoundaryIs")
}

// Center returns the mean position of the outer boundary's vertices, or
// the zero position when the polygon has no outer boundary.
func (p *Polygon) Center() geom.Position {
	ring, ok := p.OuterBoundary()
	if !ok {
		return geom.Position{}
	}
	return ring.Center()
}

// Render participates in a render pass. Until a style has been resolved
// for the owning feature the polygon stays unbuilt; bookkeeping still
// advances so the pass is observable.
func (p *Polygon) Render(ctx *scene.Context) {
	p.advance(ctx)

	if ctx == nil || ctx.KML.LastStyle == nil {
		return
	}
	p.EnsureRenderable(ctx, ctx.KML.LastStyle)
}

// EnsureRenderable associates st with the polygon and constructs the
// renderable shape if it does not exist yet. Construction happens at most
// once; later calls only refresh the style association.
func (p *Polygon) EnsureRenderable(ctx *scene.Context, st *style.Style) {
	p.style = st
	if p.renderable != nil {
		return
	}

	shape := scene.NewPolygonShape(p.PrepareLocations(), p.PrepareAttributes(st))
	shape.Extrude = p.appliedExtrude()
	shape.AltitudeMode = p.appliedAltitudeMode()
	p.attach(ctx, shape)
}

// PrepareAttributes derives the shape attribute set from st. Fields the
// globe renderer requires for polygons are forced after style application:
// vertical faces follow the applied extrude flag, lighting and depth
// testing are on, and outlines draw solid.
func (p *Polygon) PrepareAttributes(st *style.Style) *scene.ShapeAttributes {
	attrs := scene.NewShapeAttributes(st.Generate())
	attrs.DrawVerticals = p.appliedExtrude()
	attrs.Lighting = true
	attrs.DepthTest = true
	attrs.OutlineStippleFactor = 0
	return attrs
}

// PrepareLocations collects the boundary position sequences for shape
// construction. The result is always a slice of sequences: [outer] for a
// simple polygon, [inner, outer] when a hole is present, so the winding
// pair renders the hole correctly.
func (p *Polygon) PrepareLocations() [][]geom.Position {
	outer, ok := p.OuterBoundary()
	if !ok {
		return [][]geom.Position{}
	}

	if inner, ok := p.InnerBoundary(); ok {
		return [][]geom.Position{inner.Positions(), outer.Positions()}
	}
	return [][]geom.Position{outer.Positions()}
}

// appliedExtrude resolves the extrude flag applied to the shape. Polygons
// default to extruded when the document omits the element; an explicit
// value, including false, is honored.
func (p *Polygon) appliedExtrude() bool {
	value, ok := p.Extrude()
	if !ok {
		return true
	}
	return value
}
