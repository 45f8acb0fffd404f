package kmlscene

import (
	"context"

	theme "github.com/goliatone/go-theme"

	pkgkml "github.com/goliatone/go-kmlscene/pkg/kml"
	"github.com/goliatone/go-kmlscene/pkg/orchestrator"
	"github.com/goliatone/go-kmlscene/pkg/preset"
	"github.com/goliatone/go-kmlscene/pkg/render"
)

// Request describes one render: where the KML document lives plus the
// renderer, preset, and feature selection; alias exported via the root
// package for convenience.
type Request = orchestrator.Request

// RenderOptions describes per-request overrides that renderers can use to
// label output or restrict it to named layers.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module so embedders configure the pipeline without importing subpackages.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateScene loads the KML source, assembles and passes the scene, and
// renders it with the named renderer. It is the simplest entry point for
// callers that just want output bytes.
func GenerateScene(ctx context.Context, source pkgkml.Source, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		Renderer: rendererName,
	})
}

// GenerateSceneFromDocument renders using a pre-loaded document, bypassing
// the loader stage while still delegating to the orchestrator.
func GenerateSceneFromDocument(ctx context.Context, doc pkgkml.Document, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Renderer: rendererName,
	})
}

// WithPresets supplies the preset store consulted when requests name a
// style preset.
func WithPresets(store *preset.Store) orchestrator.Option {
	return orchestrator.WithPresets(store)
}

// WithPreset names a preset applied to every scene whose request does not
// name its own.
func WithPreset(name string) orchestrator.Option {
	return orchestrator.WithPreset(name)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator
// so theme/variant choices can resolve to presets ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}
