package style

import (
	"strings"

	"github.com/goliatone/go-kmlscene/pkg/kml"
)

// Resolver resolves a feature's effective style against the shared styles
// declared in its own document. Inline styles win over styleUrl references;
// references into other documents resolve to nil so construction can be
// deferred until a style becomes available.
type Resolver struct {
	styles map[string]*Style
	maps   map[string]*kml.Node
}

// NewResolver indexes the document's shared <Style> and <StyleMap> elements
// by id.
func NewResolver(doc kml.Document) *Resolver {
	r := &Resolver{
		styles: make(map[string]*Style),
		maps:   make(map[string]*kml.Node),
	}

	kml.Walk(doc.Root(), func(n *kml.Node) bool {
		switch n.Name() {
		case "Style":
			if id := n.ID(); id != "" {
				r.styles[id] = ParseStyle(n)
			}
			return false
		case "StyleMap":
			if id := n.ID(); id != "" {
				r.maps[id] = n
			}
			return false
		case "Placemark":
			return false
		default:
			return true
		}
	})

	return r
}

// Resolve returns the feature's effective style: its inline <Style> first,
// then a document-local "#id" styleUrl. Nil means unresolved.
func (r *Resolver) Resolve(feature *kml.Node) *Style {
	if inline, ok := kml.Child(feature, "Style"); ok {
		return ParseStyle(inline)
	}

	raw, ok := kml.StringField(feature, "styleUrl")
	if !ok {
		return nil
	}
	ref := strings.TrimSpace(raw)
	if !strings.HasPrefix(ref, "#") {
		// External document reference; out of scope for local resolution.
		return nil
	}
	return r.Lookup(strings.TrimPrefix(ref, "#"))
}

// Lookup resolves a shared style id, following StyleMap normal/highlight
// pairs. Nil when the id is unknown.
func (r *Resolver) Lookup(id string) *Style {
	if r == nil || id == "" {
		return nil
	}
	if st, ok := r.styles[id]; ok {
		return st
	}
	if m, ok := r.maps[id]; ok {
		return r.resolveMap(m)
	}
	return nil
}

func (r *Resolver) resolveMap(m *kml.Node) *Style {
	combined := &Style{ID: m.ID()}
	resolved := false

	for _, pair := range kml.Children(m, "Pair") {
		key, _ := kml.StringField(pair, "key")

		var target *Style
		if inline, ok := kml.Child(pair, "Style"); ok {
			target = ParseStyle(inline)
		} else if raw, ok := kml.StringField(pair, "styleUrl"); ok {
			ref := strings.TrimSpace(raw)
			if strings.HasPrefix(ref, "#") {
				if st, ok := r.styles[strings.TrimPrefix(ref, "#")]; ok {
					target = st
				}
			}
		}
		if target == nil {
			continue
		}

		switch strings.TrimSpace(key) {
		case "highlight":
			combined.Highlight = target.Normal
			resolved = true
		default:
			// KML treats a missing key as "normal".
			combined.Normal = target.Normal
			combined.BalloonText = target.BalloonText
			resolved = true
		}
	}

	if !resolved {
		return nil
	}
	return combined
}
