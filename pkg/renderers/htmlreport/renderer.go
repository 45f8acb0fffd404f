// Package htmlreport renders an assembled scene as a standalone HTML page
// summarizing layers, shapes, style colors, and feature balloons for review
// in a browser.
package htmlreport

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-kmlscene/internal/scenedoc"
	"github.com/goliatone/go-kmlscene/pkg/balloon"
	"github.com/goliatone/go-kmlscene/pkg/render"
	rendertemplate "github.com/goliatone/go-kmlscene/pkg/render/template"
	gotemplate "github.com/goliatone/go-kmlscene/pkg/render/template/gotemplate"
	"github.com/goliatone/go-kmlscene/pkg/scene"
)

const defaultTemplate = "templates/report.tmpl"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.Selection
	expander         *balloon.Expander
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithThemeSelection colors the report with the tokens of a resolved theme
// selection. Tokens from the selected variant overlay the manifest's base
// tokens; templates read them under the "theme" context key.
func WithThemeSelection(selection *theme.Selection) Option {
	return func(cfg *config) {
		cfg.theme = selection
	}
}

// WithBalloonExpander substitutes the expander used for feature balloons.
func WithBalloonExpander(expander *balloon.Expander) Option {
	return func(cfg *config) {
		if expander != nil {
			cfg.expander = expander
		}
	}
}

// Renderer emits scenes as HTML report pages.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	themeTokens map[string]string
	expander    *balloon.Expander
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML report renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.expander == nil {
		cfg.expander = balloon.New()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("htmlreport: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:   renderer,
		themeTokens: selectionTokens(cfg.theme),
		expander:    cfg.expander,
	}, nil
}

func (r *Renderer) Name() string {
	return "htmlreport"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, sc *scene.Scene, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("htmlreport: template renderer is nil")
	}

	name := options.Template
	if name == "" {
		name = defaultTemplate
	}

	result, err := r.templates.RenderTemplate(name, map[string]any{
		"report":   scenedoc.Build(sc, options),
		"theme":    r.themeTokens,
		"features": r.featureSummaries(sc, options),
	})
	if err != nil {
		return nil, fmt.Errorf("htmlreport: render template: %w", err)
	}
	return []byte(result), nil
}

// featureSummaries lists the scene's feature bindings with their expanded
// balloons, honoring the layer selection.
func (r *Renderer) featureSummaries(sc *scene.Scene, options render.RenderOptions) []map[string]any {
	expander := r.expander
	if expander == nil {
		expander = balloon.New()
	}

	var out []map[string]any
	for _, b := range sc.Bindings() {
		if b.Layer != nil && !options.IncludesLayer(b.Layer.Name()) {
			continue
		}
		summary := map[string]any{
			"id":     b.ID,
			"name":   b.Name,
			"tag":    b.Tag,
			"styled": b.Style != nil,
		}
		if content := expander.ExpandFeature(b.Feature, b.Style); content != "" {
			summary["balloon"] = content
		}
		out = append(out, summary)
	}
	return out
}

// selectionTokens flattens a theme selection into one token map, the
// selected variant's tokens overriding the manifest's.
func selectionTokens(selection *theme.Selection) map[string]string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}

	tokens := map[string]string{}
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if name := strings.TrimSpace(selection.Variant); name != "" {
		if variant, ok := selection.Manifest.Variants[name]; ok {
			for key, value := range variant.Tokens {
				tokens[key] = value
			}
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}
