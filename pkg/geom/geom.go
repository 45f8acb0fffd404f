// Package geom holds the geographic primitives shared by the KML binding
// layers: positions in degrees and the linear rings that bound polygons.
package geom

// Position is a geographic coordinate. Lat and Lon are degrees, Alt is
// meters above the reference surface.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Alt float64 `json:"alt,omitempty"`
}

// Ring is a closed ordered sequence of positions describing a polygon
// boundary (outer perimeter or inner hole). Rings are read-only after
// construction.
type Ring struct {
	positions []Position
}

// NewRing copies positions into a fresh ring. The caller keeps ownership
// of the input slice.
func NewRing(positions []Position) *Ring {
	copied := make([]Position, len(positions))
	copy(copied, positions)
	return &Ring{positions: copied}
}

// Len reports the number of stored positions, including a duplicated
// closing vertex when the source data carried one.
func (r *Ring) Len() int {
	if r == nil {
		return 0
	}
	return len(r.positions)
}

// Positions returns a copy of the ring's positions in order.
func (r *Ring) Positions() []Position {
	if r == nil {
		return nil
	}
	out := make([]Position, len(r.positions))
	copy(out, r.positions)
	return out
}

// Center computes the vertex mean of the ring. A duplicated closing
// vertex (first == last) is ignored so closed and unclosed encodings of
// the same boundary agree.
func (r *Ring) Center() Position {
	if r.Len() == 0 {
		return Position{}
	}

	positions := r.positions
	if len(positions) > 1 && positions[0] == positions[len(positions)-1] {
		positions = positions[:len(positions)-1]
	}

	var center Position
	for _, p := range positions {
		center.Lat += p.Lat
		center.Lon += p.Lon
		center.Alt += p.Alt
	}

	n := float64(len(positions))
	center.Lat /= n
	center.Lon /= n
	center.Alt /= n
	return center
}
