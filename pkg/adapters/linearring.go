package adapters

import (
	"github.com/goliatone/go-kmlscene/pkg/geom"
	"github.com/goliatone/go-kmlscene/pkg/kml"
	"github.com/goliatone/go-kmlscene/pkg/scene"
	"github.com/goliatone/go-kmlscene/pkg/style"
)

var linearRingTags = []string{"LinearRing"}

// LinearRing adapts a standalone KML <LinearRing> element into a closed
// renderable polyline. Rings nested inside polygon boundaries never reach
// this adapter; the polygon consumes them directly.
type LinearRing struct {
	core
}

var _ scene.Adapter = (*LinearRing)(nil)

// NewLinearRing returns a linear ring adapter bound to node.
func NewLinearRing(node *kml.Node) *LinearRing {
	return &LinearRing{core: core{node: node}}
}

// TagNames returns the KML element names this adapter handles.
func (l *LinearRing) TagNames() []string {
	return append([]string(nil), linearRingTags...)
}

// Extrude reads the document's <extrude> flag.
func (l *LinearRing) Extrude() (bool, bool) {
	return kml.BoolField(l.node, "extrude")
}

// Tessellate reads the document's <tessellate> flag.
func (l *LinearRing) Tessellate() (bool, bool) {
	return kml.BoolField(l.node, "tessellate")
}

// AltitudeMode reads the document's <altitudeMode> value.
func (l *LinearRing) AltitudeMode() (string, bool) {
	return kml.StringField(l.node, "altitudeMode")
}

// Ring returns the parsed coordinate ring.
func (l *LinearRing) Ring() (*geom.Ring, bool) {
	ring := kml.RingFromNode(l.node)
	if ring == nil || ring.Len() == 0 {
		return nil, false
	}
	return ring, true
}

// Render participates in a render pass, deferring construction until a
// style is available.
func (l *LinearRing) Render(ctx *scene.Context) {
	l.advance(ctx)

	if ctx == nil || ctx.KML.LastStyle == nil {
		return
	}
	l.EnsureRenderable(ctx, ctx.KML.LastStyle)
}

// EnsureRenderable associates st with the ring and constructs the shape
// on first call. The polyline is marked closed so the renderer joins the
// last vertex back to the first.
func (l *LinearRing) EnsureRenderable(ctx *scene.Context, st *style.Style) {
	l.style = st
	if l.renderable != nil {
		return
	}

	ring, ok := l.Ring()
	if !ok {
		return
	}

	shape := scene.NewPolylineShape(ring.Positions(), scene.NewShapeAttributes(st.Generate()))
	shape.Closed = true
	shape.Extrude = l.appliedExtrude()
	shape.FollowTerrain = l.appliedTessellate()
	shape.AltitudeMode = l.appliedAltitudeMode()
	l.attach(ctx, shape)
}

func (l *LinearRing) appliedExtrude() bool {
	value, ok := l.Extrude()
	if !ok {
		return false
	}
	return value
}

func (l *LinearRing) appliedTessellate() bool {
	value, ok := l.Tessellate()
	if !ok {
		return false
	}
	return value
}
