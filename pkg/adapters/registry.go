package adapters

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-kmlscene/pkg/kml"
	"github.com/goliatone/go-kmlscene/pkg/scene"
)

// Registry maps KML element names to adapter factories. Tag names are
// case-sensitive, matching the KML schema.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]scene.Factory
}

var _ scene.FactorySource = (*Registry)(nil)

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]scene.Factory{}}
}

// NewDefaultRegistry returns a registry preloaded with the built-in
// geometry adapters.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

// Register associates a factory with one or more tag names.
func (r *Registry) Register(tags []string, factory scene.Factory) error {
	if factory == nil {
		return fmt.Errorf("adapters: factory is required")
	}
	if len(tags) == 0 {
		return fmt.Errorf("adapters: tag name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.factories == nil {
		r.factories = map[string]scene.Factory{}
	}

	for _, tag := range tags {
		name := strings.TrimSpace(tag)
		if name == "" {
			return fmt.Errorf("adapters: tag name is required")
		}
		if _, exists := r.factories[name]; exists {
			return fmt.Errorf("adapters: tag %q already registered", name)
		}
		r.factories[name] = factory
	}

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(tags []string, factory scene.Factory) {
	if err := r.Register(tags, factory); err != nil {
		panic(err)
	}
}

// Get returns the factory registered for tag.
func (r *Registry) Get(tag string) (scene.Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[strings.TrimSpace(tag)]
	return factory, ok
}

// Has reports whether a factory is registered for tag.
func (r *Registry) Has(tag string) bool {
	_, ok := r.Get(tag)
	return ok
}

// List returns the registered tag names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterDefaults installs the built-in geometry adapters on r. The
// MultiGeometry factory resolves child geometries through r itself, so
// adapters registered later are picked up by containers too.
func RegisterDefaults(r *Registry) {
	r.MustRegister(polygonTags, func(node *kml.Node) scene.Adapter {
		return NewPolygon(node)
	})
	r.MustRegister(pointTags, func(node *kml.Node) scene.Adapter {
		return NewPoint(node)
	})
	r.MustRegister(lineStringTags, func(node *kml.Node) scene.Adapter {
		return NewLineString(node)
	})
	r.MustRegister(linearRingTags, func(node *kml.Node) scene.Adapter {
		return NewLinearRing(node)
	})
	r.MustRegister(multiGeometryTags, func(node *kml.Node) scene.Adapter {
		return NewMultiGeometry(node, r)
	})
}
