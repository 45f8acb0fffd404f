package adapters

import (
	"github.com/goliatone/go-kmlscene/pkg/geom"
	"github.com/goliatone/go-kmlscene/pkg/kml"
	"github.com/goliatone/go-kmlscene/pkg/scene"
	"github.com/goliatone/go-kmlscene/pkg/style"
)

var pointTags = []string{"Point"}

// Point adapts a KML <Point> element into a renderable point shape.
type Point struct {
	core
}

var _ scene.Adapter = (*Point)(nil)

// NewPoint returns a point adapter bound to node.
func NewPoint(node *kml.Node) *Point {
	return &Point{core: core{node: node}}
}

// TagNames returns the KML element names this adapter handles.
func (p *Point) TagNames() []string {
	return append([]string(nil), pointTags...)
}

// Extrude reads the document's <extrude> flag.
func (p *Point) Extrude() (bool, bool) {
	return kml.BoolField(p.node, "extrude")
}

// AltitudeMode reads the document's <altitudeMode> value.
func (p *Point) AltitudeMode() (string, bool) {
	return kml.StringField(p.node, "altitudeMode")
}

// Position returns the first coordinate tuple of the point's
// <coordinates> element.
func (p *Point) Position() (geom.Position, bool) {
	text, ok := kml.StringField(p.node, "coordinates")
	if !ok {
		return geom.Position{}, false
	}
	positions := kml.ParseCoordinates(text)
	if len(positions) == 0 {
		return geom.Position{}, false
	}
	return positions[0], true
}

// Render participates in a render pass, deferring construction until a
// style is available.
func (p *Point) Render(ctx *scene.Context) {
	p.advance(ctx)

	if ctx == nil || ctx.KML.LastStyle == nil {
		return
	}
	p.EnsureRenderable(ctx, ctx.KML.LastStyle)
}

// EnsureRenderable associates st with the point and constructs the shape
// on first call.
func (p *Point) EnsureRenderable(ctx *scene.Context, st *style.Style) {
	p.style = st
	if p.renderable != nil {
		return
	}

	position, ok := p.Position()
	if !ok {
		return
	}

	shape := scene.NewPointShape(position, scene.NewShapeAttributes(st.Generate()))
	shape.Extrude = p.appliedExtrude()
	shape.AltitudeMode = p.appliedAltitudeMode()
	p.attach(ctx, shape)
}

// appliedExtrude resolves the extrude flag. Points are not extruded
// unless the document asks for it.
func (p *Point) appliedExtrude() bool {
	value, ok := p.Extrude()
	if !ok {
		return false
	}
	return value
}
