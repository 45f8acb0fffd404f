package kml

import (
	"testing"
)

func TestBoolFieldDistinguishesAbsentFromFalse(t *testing.T) {
	node := mustParse(t, `<Polygon><extrude>0</extrude></Polygon>`)

	value, ok := BoolField(node, "extrude")
	if !ok {
		t.Fatalf("expected extrude to be present")
	}
	if value {
		t.Fatalf("explicit 0 must decode to false")
	}

	if _, ok := BoolField(node, "tessellate"); ok {
		t.Fatalf("absent tessellate must report ok=false")
	}
}

func TestBoolFieldAcceptsKMLSpellings(t *testing.T) {
	cases := map[string]bool{
		"1":     true,
		"0":     false,
		"true":  true,
		"false": false,
	}
	for raw, want := range cases {
		node := mustParse(t, `<Polygon><extrude>`+raw+`</extrude></Polygon>`)
		got, ok := BoolField(node, "extrude")
		if !ok {
			t.Fatalf("value %q should be present", raw)
		}
		if got != want {
			t.Fatalf("value %q decoded to %v, want %v", raw, got, want)
		}
	}
}

func TestBoolFieldMalformedReportsAbsent(t *testing.T) {
	node := mustParse(t, `<Polygon><extrude>maybe</extrude></Polygon>`)
	if _, ok := BoolField(node, "extrude"); ok {
		t.Fatalf("malformed boolean must report ok=false")
	}
}

func TestStringFieldPresentButEmpty(t *testing.T) {
	node := mustParse(t, `<Placemark><name></name></Placemark>`)
	value, ok := StringField(node, "name")
	if !ok {
		t.Fatalf("empty element is still present")
	}
	if value != "" {
		t.Fatalf("expected empty string, got %q", value)
	}
}

func TestFloatField(t *testing.T) {
	node := mustParse(t, `<LineStyle><width> 2.5 </width></LineStyle>`)
	value, ok := FloatField(node, "width")
	if !ok || value != 2.5 {
		t.Fatalf("expected 2.5 present, got %v ok=%v", value, ok)
	}
	if _, ok := FloatField(node, "scale"); ok {
		t.Fatalf("absent float must report ok=false")
	}
}

func TestBoundaryRing(t *testing.T) {
	polygon := mustParse(t, `
<Polygon>
  <outerBoundaryIs>
    <LinearRing><coordinates>10,10 20,10 20,20 10,20</coordinates></LinearRing>
  </outerBoundaryIs>
</Polygon>`)

	outer, ok := BoundaryRing(polygon, "outerBoundaryIs")
	if !ok {
		t.Fatalf("expected outer boundary present")
	}
	if outer.Len() != 4 {
		t.Fatalf("expected 4 outer positions, got %d", outer.Len())
	}

	if _, ok := BoundaryRing(polygon, "innerBoundaryIs"); ok {
		t.Fatalf("absent inner boundary must report ok=false")
	}
}

func TestAccessorsTolerateNilNode(t *testing.T) {
	if _, ok := Child(nil, "x"); ok {
		t.Fatalf("Child on nil node must report absent")
	}
	if _, ok := StringField(nil, "x"); ok {
		t.Fatalf("StringField on nil node must report absent")
	}
	if Children(nil, "x") != nil {
		t.Fatalf("Children on nil node must be nil")
	}
	var n *Node
	if n.Name() != "" || n.Text() != "" {
		t.Fatalf("nil node accessors must return zero values")
	}
}

func TestChildrenReturnsAllMatches(t *testing.T) {
	node := mustParse(t, `
<MultiGeometry>
  <Point><coordinates>1,1</coordinates></Point>
  <Point><coordinates>2,2</coordinates></Point>
  <LineString><coordinates>1,1 2,2</coordinates></LineString>
</MultiGeometry>`)

	points := Children(node, "Point")
	if len(points) != 2 {
		t.Fatalf("expected 2 Point children, got %d", len(points))
	}
	if got := node.Children(); len(got) != 3 {
		t.Fatalf("expected 3 children total, got %d", len(got))
	}
}
