package gotemplate

import (
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-kmlscene/pkg/style"
)

// registerBuiltinFilters installs the filters report templates rely on.
// pongo2 keeps one process-global filter table, so registration is guarded
// to stay idempotent across engines.
func registerBuiltinFilters() {
	for name, fn := range map[string]pongo2.FilterFunction{
		"trim":     trimFilter,
		"csscolor": cssColorFilter,
	} {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

// wrapFilter adapts a plain Go filter function to pongo2's filter contract.
func wrapFilter(name string, fn func(input any, param any) (any, error)) pongo2.FilterFunction {
	return func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		out, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: name, OrigError: err}
		}
		return pongo2.AsValue(out), nil
	}
}

func trimFilter(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// cssColorFilter converts KML aabbggrr colors into CSS rgba() expressions
// so templates can use style colors directly.
func cssColorFilter(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(style.CSSColor(in.String())), nil
}
