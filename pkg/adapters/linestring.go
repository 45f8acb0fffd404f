package adapters

import (
	"github.com/goliatone/go-kmlscene/pkg/geom"
	"github.com/goliatone/go-kmlscene/pkg/kml"
	"github.com/goliatone/go-kmlscene/pkg/scene"
	"github.com/goliatone/go-kmlscene/pkg/style"
)

var lineStringTags = []string{"LineString"}

// LineString adapts a KML <LineString> element into a renderable
// polyline.
type LineString struct {
	core
}

var _ scene.Adapter = (*LineString)(nil)

// NewLineString returns a line string adapter bound to node.
func NewLineString(node *kml.Node) *LineString {
	return &LineString{core: core{node: node}}
}

// TagNames returns the KML element names this adapter handles.
func (l *LineString) TagNames() []string {
	return append([]string(nil), lineStringTags...)
}

// Extrude reads the document's <extrude> flag.
func (l *LineString) Extrude() (bool, bool) {
	return kml.BoolField(l.node, "extrude")
}

// Tessellate reads the document's <tessellate> flag.
func (l *LineString) Tessellate() (bool, bool) {
	return kml.BoolField(l.node, "tessellate")
}

// AltitudeMode reads the document's <altitudeMode> value.
func (l *LineString) AltitudeMode() (string, bool) {
	return kml.StringField(l.node, "altitudeMode")
}

// Positions returns the parsed coordinate tuples of the line.
func (l *LineString) Positions() []geom.Position {
	text, ok := kml.StringField(l.node, "coordinates")
	if !ok {
		return nil
	}
	return kml.ParseCoordinates(text)
}

// Render participates in a render pass, deferring construction until a
// style is available.
func (l *LineString) Render(ctx *scene.Context) {
	l.advance(ctx)

	if ctx == nil || ctx.KML.LastStyle == nil {
		return
	}
	l.EnsureRenderable(ctx, ctx.KML.LastStyle)
}

// EnsureRenderable associates st with the line and constructs the shape
// on first call.
func (l *LineString) EnsureRenderable(ctx *scene.Context, st *style.Style) {
	l.style = st
	if l.renderable != nil {
		return
	}

	positions := l.Positions()
	if len(positions) == 0 {
		return
	}

	shape := scene.NewPolylineShape(positions, scene.NewShapeAttributes(st.Generate()))
	shape.Extrude = l.appliedExtrude()
	shape.FollowTerrain = l.appliedTessellate()
	shape.AltitudeMode = l.appliedAltitudeMode()
	l.attach(ctx, shape)
}

// appliedExtrude resolves the extrude flag. Lines are not extruded unless
// the document asks for it.
func (l *LineString) appliedExtrude() bool {
	value, ok := l.Extrude()
	if !ok {
		return false
	}
	return value
}

// appliedTessellate resolves the tessellate flag, which maps onto terrain
// following for polylines.
func (l *LineString) appliedTessellate() bool {
	value, ok := l.Tessellate()
	if !ok {
		return false
	}
	return value
}
