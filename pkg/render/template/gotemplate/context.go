package gotemplate

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// toContext coerces arbitrary render data into a pongo2.Context. Maps pass
// through with their values normalized; any other value takes a JSON round
// trip so templates see plain maps, slices, and scalars rather than struct
// internals.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return buildContext(map[string]any(v))
	case map[string]any:
		return buildContext(v)
	default:
		decoded, err := roundTrip(v)
		if err != nil {
			return nil, err
		}
		m, ok := decoded.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("gotemplate: render data must convert to a map, got %T", data)
		}
		return buildContext(m)
	}
}

func buildContext(in map[string]any) (pongo2.Context, error) {
	ctx := make(pongo2.Context, len(in))
	for key, value := range in {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		normalized, err := normalize(value)
		if err != nil {
			return nil, err
		}
		ctx[key] = normalized
	}
	return ctx, nil
}

// normalize recursively rewrites nested values into JSON-shaped Go types.
// Functions pass through untouched so helpers survive the conversion.
func normalize(value any) (any, error) {
	if value == nil || callable(value) {
		return value, nil
	}

	switch v := value.(type) {
	case pongo2.Context:
		return normalizeMap(map[string]any(v))
	case map[string]any:
		return normalizeMap(v)
	case []any:
		return normalizeSlice(v)
	}

	decoded, err := roundTrip(value)
	if err != nil {
		return nil, err
	}
	switch v := decoded.(type) {
	case map[string]any:
		return normalizeMap(v)
	case []any:
		return normalizeSlice(v)
	default:
		return v, nil
	}
}

func normalizeMap(in map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(in))
	for key, value := range in {
		normalized, err := normalize(value)
		if err != nil {
			return nil, err
		}
		out[key] = normalized
	}
	return out, nil
}

func normalizeSlice(in []any) ([]any, error) {
	out := make([]any, 0, len(in))
	for _, value := range in {
		normalized, err := normalize(value)
		if err != nil {
			return nil, err
		}
		out = append(out, normalized)
	}
	return out, nil
}

func roundTrip(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func callable(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.IsValid() && rv.Kind() == reflect.Func
}
