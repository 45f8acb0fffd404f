package scene

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-kmlscene/pkg/geom"
)

// Altitude modes recognized by the shape primitives, matching the KML
// altitudeMode enumeration.
const (
	AltitudeClampToGround    = "clampToGround"
	AltitudeRelativeToGround = "relativeToGround"
	AltitudeAbsolute         = "absolute"
)

var _ Renderable = (*PolygonShape)(nil)
var _ Renderable = (*PolylineShape)(nil)
var _ Renderable = (*PointShape)(nil)

// PolygonShape is the renderable polygon primitive. Locations hold one
// position sequence per boundary; with a hole the order is [inner, outer].
// Extrude and AltitudeMode stay mutable post-construction so the owning
// adapter can apply document properties.
type PolygonShape struct {
	locations  [][]geom.Position
	attributes *ShapeAttributes

	Extrude      bool
	AltitudeMode string
}

// NewPolygonShape constructs a polygon renderable from boundary locations
// and a prepared attribute set.
func NewPolygonShape(locations [][]geom.Position, attributes *ShapeAttributes) *PolygonShape {
	copied := make([][]geom.Position, len(locations))
	copy(copied, locations)
	return &PolygonShape{locations: copied, attributes: attributes}
}

// Kind reports the renderable kind.
func (s *PolygonShape) Kind() string {
	return "polygon"
}

// Prepare validates the boundaries ahead of drawing. Construction accepts
// whatever the adapter read from the document; degenerate boundaries surface
// here, on the first pass after the shape lands on a layer.
func (s *PolygonShape) Prepare(_ *Context) error {
	if len(s.locations) == 0 {
		return errors.New("scene: polygon has no boundaries")
	}
	for i, boundary := range s.locations {
		if len(boundary) < 3 {
			return fmt.Errorf("scene: polygon boundary %d has %d positions, need at least 3", i, len(boundary))
		}
	}
	return nil
}

// Locations returns the boundary position sequences in construction order.
func (s *PolygonShape) Locations() [][]geom.Position {
	out := make([][]geom.Position, len(s.locations))
	copy(out, s.locations)
	return out
}

// Attributes returns the shape's attribute set.
func (s *PolygonShape) Attributes() *ShapeAttributes {
	return s.attributes
}

// PolylineShape is the renderable line primitive used for LineString and
// standalone LinearRing geometry.
type PolylineShape struct {
	positions  []geom.Position
	attributes *ShapeAttributes

	Extrude       bool
	FollowTerrain bool
	Closed        bool
	AltitudeMode  string
}

// NewPolylineShape constructs a polyline renderable.
func NewPolylineShape(positions []geom.Position, attributes *ShapeAttributes) *PolylineShape {
	copied := make([]geom.Position, len(positions))
	copy(copied, positions)
	return &PolylineShape{positions: copied, attributes: attributes}
}

// Kind reports the renderable kind.
func (s *PolylineShape) Kind() string {
	return "polyline"
}

// Prepare validates the position run ahead of drawing.
func (s *PolylineShape) Prepare(_ *Context) error {
	if len(s.positions) < 2 {
		return fmt.Errorf("scene: polyline has %d positions, need at least 2", len(s.positions))
	}
	return nil
}

// Positions returns the line's positions in order.
func (s *PolylineShape) Positions() []geom.Position {
	out := make([]geom.Position, len(s.positions))
	copy(out, s.positions)
	return out
}

// Attributes returns the shape's attribute set.
func (s *PolylineShape) Attributes() *ShapeAttributes {
	return s.attributes
}

// PointShape is the renderable point primitive.
type PointShape struct {
	position   geom.Position
	attributes *ShapeAttributes

	Extrude      bool
	AltitudeMode string
}

// NewPointShape constructs a point renderable.
func NewPointShape(position geom.Position, attributes *ShapeAttributes) *PointShape {
	return &PointShape{position: position, attributes: attributes}
}

// Kind reports the renderable kind.
func (s *PointShape) Kind() string {
	return "point"
}

// Prepare is a no-op: a point position is always drawable.
func (s *PointShape) Prepare(_ *Context) error {
	return nil
}

// Position returns the point's position.
func (s *PointShape) Position() geom.Position {
	return s.position
}

// Attributes returns the shape's attribute set.
func (s *PointShape) Attributes() *ShapeAttributes {
	return s.attributes
}
