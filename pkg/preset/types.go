package preset

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-kmlscene/pkg/style"
)

// Store keeps the parsed presets from preset documents. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	presets map[string]Preset
}

// NewStore assembles a store from prebuilt presets. Most callers go through
// LoadFS; hosts composing presets programmatically can wire them in
// directly.
func NewStore(presets ...Preset) (*Store, error) {
	store := &Store{presets: make(map[string]Preset, len(presets))}
	for _, p := range presets {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, errors.New("preset: preset name is required")
		}
		if _, exists := store.presets[name]; exists {
			return nil, fmt.Errorf("preset: duplicate preset %q", name)
		}
		p.Name = name
		store.presets[name] = p
	}
	return store, nil
}

// Preset is one named visual configuration. Normal carries the base
// presentation; Highlight is optional and stays zero when the document
// omits it.
type Preset struct {
	Name      string
	Source    string
	Normal    style.Presentation
	Highlight style.Presentation
}

// Style materialises the preset as a resolvable style. Pointer fields are
// cloned so callers cannot mutate the preset through the returned style.
func (p Preset) Style() *style.Style {
	return &style.Style{
		ID:        "preset:" + p.Name,
		Normal:    clonePresentation(p.Normal),
		Highlight: clonePresentation(p.Highlight),
	}
}

// Preset returns the configuration for the supplied preset name.
func (s *Store) Preset(name string) (Preset, bool) {
	if s == nil {
		return Preset{}, false
	}
	p, ok := s.presets[name]
	return p, ok
}

// Names lists the stored preset names in sorted order.
func (s *Store) Names() []string {
	if s == nil || len(s.presets) == 0 {
		return nil
	}
	names := make([]string, 0, len(s.presets))
	for name := range s.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any presets.
func (s *Store) Empty() bool {
	return s == nil || len(s.presets) == 0
}

func clonePresentation(p style.Presentation) style.Presentation {
	out := p
	if p.Fill != nil {
		value := *p.Fill
		out.Fill = &value
	}
	if p.Outline != nil {
		value := *p.Outline
		out.Outline = &value
	}
	return out
}
