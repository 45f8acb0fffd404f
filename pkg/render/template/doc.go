// Package template defines renderer-agnostic template interfaces. The
// gotemplate subpackage provides the default pongo2-backed implementation;
// renderers accept any TemplateRenderer so callers can swap engines.
package template
