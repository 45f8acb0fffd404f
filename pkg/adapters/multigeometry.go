package adapters

import (
	"github.com/goliatone/go-kmlscene/pkg/kml"
	"github.com/goliatone/go-kmlscene/pkg/scene"
)

var multiGeometryTags = []string{"MultiGeometry"}

// MultiGeometry adapts a KML <MultiGeometry> container by fanning render
// passes out to one child adapter per contained geometry element. The
// container itself owns no renderable; Renderable reports nil even after
// the children have constructed theirs.
type MultiGeometry struct {
	core

	children []scene.Adapter
}

var _ scene.Adapter = (*MultiGeometry)(nil)

// NewMultiGeometry returns a container adapter bound to node. Child
// adapters are resolved through source at construction time; geometry
// elements with no registered factory are skipped.
func NewMultiGeometry(node *kml.Node, source scene.FactorySource) *MultiGeometry {
	m := &MultiGeometry{core: core{node: node}}
	if node == nil || source == nil {
		return m
	}

	for _, child := range node.Children() {
		factory, ok := source.Get(child.Name())
		if !ok {
			continue
		}
		if adapter := factory(child); adapter != nil {
			m.children = append(m.children, adapter)
		}
	}
	return m
}

// TagNames returns the KML element names this adapter handles.
func (m *MultiGeometry) TagNames() []string {
	return append([]string(nil), multiGeometryTags...)
}

// Children returns the contained geometry adapters in document order.
func (m *MultiGeometry) Children() []scene.Adapter {
	return append([]scene.Adapter(nil), m.children...)
}

// Render advances the container and forwards the pass to every child.
// Children apply their own style gating, so an unstyled pass leaves them
// all unbuilt.
func (m *MultiGeometry) Render(ctx *scene.Context) {
	m.advance(ctx)

	if ctx != nil {
		m.style = ctx.KML.LastStyle
	}
	for _, child := range m.children {
		child.Render(ctx)
	}
}
