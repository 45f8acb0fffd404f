package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry holds named renderers. Hosts register the built-in trio at
// startup and may add their own; lookups are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register adds a renderer under its Name. Nil renderers, blank names, and
// duplicates are rejected.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.renderers[name]; taken {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	return nil
}

// MustRegister panics on registration failure, for startup wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer registered under name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	renderer, ok := r.renderers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found", name)
	}
	return renderer, nil
}

// MustGet panics when the renderer is missing.
func (r *Registry) MustGet(name string) Renderer {
	renderer, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return renderer
}

// GetForContentType returns the first renderer, in name order, whose
// ContentType matches. Media-type parameters on the argument are ignored.
func (r *Registry) GetForContentType(contentType string) (Renderer, error) {
	want := strings.TrimSpace(contentType)
	if i := strings.IndexByte(want, ';'); i >= 0 {
		want = strings.TrimSpace(want[:i])
	}
	if want == "" {
		return nil, fmt.Errorf("render: content type is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range r.sortedNames() {
		if renderer := r.renderers[name]; renderer.ContentType() == want {
			return renderer, nil
		}
	}
	return nil, fmt.Errorf("render: no renderer for content type %q", contentType)
}

// List returns the registered renderer names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames()
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.renderers[name]
	return ok
}

// sortedNames expects the caller to hold at least a read lock.
func (r *Registry) sortedNames() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
