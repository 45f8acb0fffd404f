package scene

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-kmlscene/pkg/kml"
)

// DefaultLayerName names the layer holding features outside any folder.
const DefaultLayerName = "default"

// Builder assembles a Scene from a parsed document: features map to
// adapters through a factory source, styles resolve through a resolver,
// and folders group bindings into layers.
type Builder struct {
	factories FactorySource
	resolver  StyleResolver
}

// NewBuilder constructs a Builder. The factory source is mandatory; a nil
// resolver leaves every binding style unresolved.
func NewBuilder(factories FactorySource, resolver StyleResolver) (*Builder, error) {
	if factories == nil {
		return nil, errors.New("scene: factory source is required")
	}
	return &Builder{factories: factories, resolver: resolver}, nil
}

// Build walks the document and assembles the scene. Features whose geometry
// tag has no registered factory are skipped; features inside folders land on
// a layer named after the folder.
func (b *Builder) Build(doc kml.Document) (*Scene, error) {
	root := doc.Root()
	if root == nil {
		return nil, errors.New("scene: document has no root node")
	}

	sc := &Scene{}
	defaultLayer := NewLayer(DefaultLayerName)
	sc.layers = append(sc.layers, defaultLayer)

	b.collect(root, defaultLayer, sc)
	return sc, nil
}

func (b *Builder) collect(n *kml.Node, layer *Layer, sc *Scene) {
	for _, child := range n.Children() {
		switch child.Name() {
		case "Folder":
			if hidden(child) {
				continue
			}
			name, _ := kml.StringField(child, "name")
			if name == "" {
				name = fmt.Sprintf("folder-%d", len(sc.layers))
			}
			folderLayer := NewLayer(name)
			sc.layers = append(sc.layers, folderLayer)
			b.collect(child, folderLayer, sc)
		case "Document":
			b.collect(child, layer, sc)
		case "Placemark":
			if hidden(child) {
				continue
			}
			b.bind(child, layer, sc)
		}
	}
}

// hidden reports whether a feature opts out of drawing. KML visibility
// defaults to visible; only an explicit 0 hides the feature.
func hidden(n *kml.Node) bool {
	visible, ok := kml.BoolField(n, "visibility")
	return ok && !visible
}

func (b *Builder) bind(feature *kml.Node, layer *Layer, sc *Scene) {
	for _, child := range feature.Children() {
		factory, ok := b.factories.Get(child.Name())
		if !ok {
			continue
		}

		binding := &Binding{
			ID:      feature.ID(),
			Tag:     child.Name(),
			Feature: feature,
			Node:    child,
			Adapter: factory(child),
			Layer:   layer,
		}
		if binding.ID == "" {
			binding.ID = fmt.Sprintf("feature-%d", len(sc.bindings)+1)
		}
		if name, ok := kml.StringField(feature, "name"); ok {
			binding.Name = name
		}
		if b.resolver != nil {
			binding.Style = b.resolver.Resolve(feature)
		}

		sc.bindings = append(sc.bindings, binding)
		return
	}
}
