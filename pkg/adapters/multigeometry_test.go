package adapters

import (
	"testing"

	"github.com/goliatone/go-kmlscene/pkg/scene"
)

const compoundDoc = `<MultiGeometry>
  <Point><coordinates>1,2</coordinates></Point>
  <LineString><coordinates>0,0 1,1</coordinates></LineString>
  <Model><Location/></Model>
</MultiGeometry>`

func TestMultiGeometrySkipsUnknownChildren(t *testing.T) {
	m := NewMultiGeometry(mustNode(t, compoundDoc), NewDefaultRegistry())

	children := m.Children()
	if len(children) != 2 {
		t.Fatalf("expected 2 child adapters, got %d", len(children))
	}
	if _, ok := children[0].(*Point); !ok {
		t.Errorf("expected first child to be a point adapter, got %T", children[0])
	}
	if _, ok := children[1].(*LineString); !ok {
		t.Errorf("expected second child to be a line adapter, got %T", children[1])
	}
}

func TestMultiGeometryFansOutRenderPasses(t *testing.T) {
	m := NewMultiGeometry(mustNode(t, compoundDoc), NewDefaultRegistry())
	ctx, layer := styledContext("s")

	m.Render(ctx)

	if m.Renderable() != nil {
		t.Error("expected the container to own no renderable")
	}
	if layer.Len() != 2 {
		t.Fatalf("expected 2 renderables from children, got %d", layer.Len())
	}
	for _, child := range m.Children() {
		if child.Renderable() == nil {
			t.Errorf("expected child %T to construct", child)
		}
	}
}

func TestMultiGeometryDefersWithChildren(t *testing.T) {
	m := NewMultiGeometry(mustNode(t, compoundDoc), NewDefaultRegistry())
	layer := scene.NewLayer("test")
	ctx := scene.NewContext(layer)

	m.Render(ctx)

	if layer.Len() != 0 {
		t.Fatalf("expected children to defer without a style, got %d renderables", layer.Len())
	}
}

func TestMultiGeometryWithoutSource(t *testing.T) {
	m := NewMultiGeometry(mustNode(t, compoundDoc), nil)

	if got := len(m.Children()); got != 0 {
		t.Fatalf("expected no children without a factory source, got %d", got)
	}
}
