package kml

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-kmlscene/pkg/geom"
)

// Node is an opaque handle to a region of a parsed KML document: element
// name, attributes, character data, and ordered children. Nodes are built by
// Parse and never mutated afterwards.
type Node struct {
	name     string
	attrs    map[string]string
	text     string
	children []*Node
}

// Name returns the element name with any namespace prefix stripped.
func (n *Node) Name() string {
	if n == nil {
		return ""
	}
	return n.name
}

// Attr returns the named attribute value and whether it is present.
func (n *Node) Attr(key string) (string, bool) {
	if n == nil {
		return "", false
	}
	value, ok := n.attrs[key]
	return value, ok
}

// ID returns the element's id attribute, empty when absent.
func (n *Node) ID() string {
	id, _ := n.Attr("id")
	return id
}

// Text returns the element's trimmed character data.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return n.text
}

// Children returns the node's direct children in document order.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Child returns the first direct child with the given element name. The
// second return is false when no such child exists.
func Child(n *Node, name string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	for _, child := range n.children {
		if child.name == name {
			return child, true
		}
	}
	return nil, false
}

// Children returns every direct child with the given element name, in
// document order.
func Children(n *Node, name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, child := range n.children {
		if child.name == name {
			out = append(out, child)
		}
	}
	return out
}

// StringField reads the character data of the named child element. Absent
// elements report ok=false rather than an empty value so callers can tell
// "missing" from "present but empty".
func StringField(n *Node, name string) (string, bool) {
	child, ok := Child(n, name)
	if !ok {
		return "", false
	}
	return child.text, true
}

// BoolField reads the named child element as a KML boolean (1/0/true/false).
// Absent or malformed values report ok=false.
func BoolField(n *Node, name string) (bool, bool) {
	raw, ok := StringField(n, name)
	if !ok {
		return false, false
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, false
	}
	return value, true
}

// FloatField reads the named child element as a float. Absent or malformed
// values report ok=false.
func FloatField(n *Node, name string) (float64, bool) {
	raw, ok := StringField(n, name)
	if !ok {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// BoundaryRing reads <wrapper><LinearRing><coordinates> below n into a ring.
// The second return is false when the wrapper element is absent.
func BoundaryRing(n *Node, wrapper string) (*geom.Ring, bool) {
	boundary, ok := Child(n, wrapper)
	if !ok {
		return nil, false
	}
	ring, ok := Child(boundary, "LinearRing")
	if !ok {
		return nil, false
	}
	return RingFromNode(ring), true
}

// RingFromNode reads a <LinearRing> (or any element carrying a
// <coordinates> child) into a ring. Missing coordinates yield an empty ring.
func RingFromNode(n *Node) *geom.Ring {
	raw, _ := StringField(n, "coordinates")
	return geom.NewRing(ParseCoordinates(raw))
}

// ParseCoordinates decodes KML coordinate text: whitespace-separated
// lon,lat[,alt] tuples. Blank entries and surrounding whitespace are
// tolerated; malformed tuples are skipped.
func ParseCoordinates(text string) []geom.Position {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	positions := make([]geom.Position, 0, len(fields))
	for _, field := range fields {
		parts := strings.Split(field, ",")
		if len(parts) < 2 {
			continue
		}
		lon, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			continue
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			continue
		}
		pos := geom.Position{Lat: lat, Lon: lon}
		if len(parts) > 2 {
			if alt, err := strconv.ParseFloat(parts[2], 64); err == nil {
				pos.Alt = alt
			}
		}
		positions = append(positions, pos)
	}
	return positions
}
