package gotemplate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-kmlscene/pkg/render/template"
)

// Option configures the engine before construction.
type Option func(*settings)

type settings struct {
	dir     string
	bundle  fs.FS
	ext     string
	helpers map[string]any
	globals map[string]any
}

// loaders assembles the pongo2 loader chain. Disk templates shadow bundled
// ones when both sources are configured.
func (s settings) loaders() ([]pongo2.TemplateLoader, error) {
	var loaders []pongo2.TemplateLoader
	if s.dir != "" {
		local, err := pongo2.NewLocalFileSystemLoader(s.dir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: local template loader: %w", err)
		}
		loaders = append(loaders, local)
	}
	if s.bundle != nil {
		loaders = append(loaders, pongo2.NewFSLoader(s.bundle))
	}
	if len(loaders) == 0 {
		return nil, errors.New("gotemplate: template source required: provide a base directory or an fs.FS")
	}
	return loaders, nil
}

// WithBaseDir loads templates from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(s *settings) { s.dir = strings.TrimSpace(dir) }
}

// WithFS loads templates from a filesystem, typically an embedded bundle.
func WithFS(bundle fs.FS) Option {
	return func(s *settings) { s.bundle = bundle }
}

// WithExtension overrides the extension appended to bare template names.
func WithExtension(ext string) Option {
	return func(s *settings) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.ext = ext
	}
}

// WithTemplateFunc installs helper functions or pongo2 filters at
// construction time.
func WithTemplateFunc(helpers map[string]any) Option {
	return func(s *settings) {
		if len(helpers) == 0 {
			return
		}
		if s.helpers == nil {
			s.helpers = make(map[string]any, len(helpers))
		}
		for name, fn := range helpers {
			s.helpers[strings.TrimSpace(name)] = fn
		}
	}
}

// WithGlobalData seeds context values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(s *settings) {
		if len(data) == 0 {
			return
		}
		if s.globals == nil {
			s.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			s.globals[strings.TrimSpace(key)] = value
		}
	}
}

// WithGoTemplateOptions accepts go-template options for callers migrating
// from a direct engine; currently a no-op.
func WithGoTemplateOptions(_ ...gotemplatepkg.Option) Option {
	return func(*settings) {}
}

// Engine renders pongo2 templates behind the template.TemplateRenderer
// seam. Parsed templates are cached per path; the mutex orders cache and
// Globals mutation against in-flight executions.
type Engine struct {
	set *pongo2.TemplateSet
	ext string

	mu    sync.RWMutex
	cache map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine from the provided options. At least one template
// source (base directory or fs.FS) is required.
func New(options ...Option) (*Engine, error) {
	cfg := settings{ext: ".tmpl"}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	loaders, err := cfg.loaders()
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		set:   pongo2.NewSet("kmlscene", loaders...),
		ext:   cfg.ext,
		cache: make(map[string]*pongo2.Template),
	}
	registerBuiltinFilters()

	if len(cfg.globals) > 0 {
		if err := engine.GlobalContext(cfg.globals); err != nil {
			return nil, fmt.Errorf("gotemplate: seed globals: %w", err)
		}
	}
	for name, fn := range cfg.helpers {
		if err := engine.installHelper(name, fn); err != nil {
			return nil, fmt.Errorf("gotemplate: install helper %q: %w", name, err)
		}
	}
	return engine, nil
}

// Render accepts either a template path or inline template content: strings
// carrying pongo2 markers execute directly, anything else resolves through
// the configured loaders.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if inlineTemplate(name) {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate loads, caches, and executes the named template, appending
// the configured extension to bare names.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine not initialized")
	}
	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}
	tmpl, err := e.lookup(path)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, fmt.Sprintf("template %q", path), data, out)
}

// RenderString parses and executes inline template content.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine not initialized")
	}
	tmpl, err := e.set.FromString(templateContent)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse inline template: %w", err)
	}
	return e.execute(tmpl, "inline template", data, out)
}

// RegisterFilter exposes a Go function as a pongo2 filter. Filter names are
// process-global in pongo2, so duplicates are rejected.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, wrapFilter(name, fn))
}

// GlobalContext merges data into the values visible to every template.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errors.New("gotemplate: engine not initialized")
	}
	if data == nil {
		return nil
	}

	globals, err := toContext(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = make(pongo2.Context)
	}
	e.set.Globals.Update(globals)
	return nil
}

// execute runs one parsed template over converted data and tees the result
// to any extra writers.
func (e *Engine) execute(tmpl *pongo2.Template, label string, data any, out []io.Writer) (string, error) {
	viewCtx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert render data: %w", err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(viewCtx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := w.Write([]byte(rendered)); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

// lookup resolves and caches a template by path, parsing at most once.
func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}

	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}

// installHelper wires a construction-time helper: pongo2 filters register
// on the global filter table, plain functions land in the set Globals.
func (e *Engine) installHelper(name string, fn any) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return nil
	}

	if filter, ok := fn.(pongo2.FilterFunction); ok {
		if pongo2.FilterExists(name) {
			return nil
		}
		return pongo2.RegisterFilter(name, filter)
	}

	if !callable(fn) {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = make(pongo2.Context)
	}
	e.set.Globals[name] = fn
	return nil
}

func inlineTemplate(s string) bool {
	return strings.Contains(s, "{{") || strings.Contains(s, "{%")
}
