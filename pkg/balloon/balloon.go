// Package balloon expands KML balloon templates: $[entity] references are
// replaced with feature values and the result is sanitized for embedding in
// host pages. Entities cover the builtin feature fields (name, description,
// address, id, Snippet) plus ExtendedData names and their /displayName
// variants.
package balloon

import (
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-kmlscene/pkg/kml"
	"github.com/goliatone/go-kmlscene/pkg/style"
)

// DefaultTemplate is the balloon content used when neither the resolved
// style nor the feature declares one.
const DefaultTemplate = "$[description]"

var entityPattern = regexp.MustCompile(`\$\[[^\[\]]+\]`)

var (
	balloonPolicyOnce sync.Once
	balloonPolicy     *bluemonday.Policy
)

// MissingEntityHandler decides the replacement text for an entity the
// feature cannot resolve.
type MissingEntityHandler func(entity string) string

// Option configures an Expander.
type Option func(*Expander)

// WithMissingEntityHandler overrides the default blank replacement for
// unresolvable entities.
func WithMissingEntityHandler(fn MissingEntityHandler) Option {
	return func(e *Expander) {
		if fn != nil {
			e.onMissing = fn
		}
	}
}

// WithPolicy substitutes the sanitization policy applied to expanded
// content.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(e *Expander) {
		e.policy = policy
	}
}

// WithoutSanitization disables sanitization; callers take responsibility
// for the expanded markup.
func WithoutSanitization() Option {
	return func(e *Expander) {
		e.sanitize = false
	}
}

// Expander substitutes balloon entities and sanitizes the result.
type Expander struct {
	policy    *bluemonday.Policy
	sanitize  bool
	onMissing MissingEntityHandler
}

// New constructs an Expander applying any provided options.
func New(options ...Option) *Expander {
	e := &Expander{
		sanitize:  true,
		onMissing: func(string) string { return "" },
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// ExpandFeature renders the balloon for feature: the resolved style's
// balloon template when present, the default template otherwise.
func (e *Expander) ExpandFeature(feature *kml.Node, st *style.Style) string {
	template := DefaultTemplate
	if st != nil && strings.TrimSpace(st.BalloonText) != "" {
		template = st.BalloonText
	}
	return e.Expand(template, feature)
}

// Expand replaces every $[entity] reference in text with the feature's
// value for that entity and sanitizes the result.
func (e *Expander) Expand(text string, feature *kml.Node) string {
	expanded := entityPattern.ReplaceAllStringFunc(text, func(match string) string {
		entity := strings.TrimSuffix(strings.TrimPrefix(match, "$["), "]")
		if value, ok := entityValue(feature, entity); ok {
			return value
		}
		return e.onMissing(entity)
	})

	if !e.sanitize {
		return expanded
	}
	policy := e.policy
	if policy == nil {
		policy = defaultPolicy()
	}
	return strings.TrimSpace(policy.Sanitize(expanded))
}

func entityValue(feature *kml.Node, entity string) (string, bool) {
	if feature == nil {
		return "", false
	}
	name := strings.TrimSpace(entity)

	if base, found := strings.CutSuffix(name, "/displayName"); found {
		return extendedDataField(feature, base, "displayName")
	}

	switch name {
	case "id":
		if id := feature.ID(); id != "" {
			return id, true
		}
		return "", false
	case "name", "description", "address":
		if value, ok := kml.StringField(feature, name); ok {
			return value, true
		}
		return "", false
	case "snippet", "Snippet":
		if value, ok := kml.StringField(feature, "Snippet"); ok {
			return value, true
		}
		if value, ok := kml.StringField(feature, "snippet"); ok {
			return value, true
		}
		return "", false
	}

	return extendedDataField(feature, name, "value")
}

func extendedDataField(feature *kml.Node, name, field string) (string, bool) {
	extended, ok := kml.Child(feature, "ExtendedData")
	if !ok {
		return "", false
	}
	for _, data := range kml.Children(extended, "Data") {
		attr, _ := data.Attr("name")
		if attr != name {
			continue
		}
		return kml.StringField(data, field)
	}
	return "", false
}

// defaultPolicy admits the markup balloons commonly carry: user-generated
// content elements plus tables and inline styling.
func defaultPolicy() *bluemonday.Policy {
	balloonPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowTables()
		policy.AllowAttrs("style").Globally()
		balloonPolicy = policy
	})
	return balloonPolicy
}
