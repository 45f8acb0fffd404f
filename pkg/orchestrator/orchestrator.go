package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"

	internalLoader "github.com/goliatone/go-kmlscene/internal/kml/loader"
	"github.com/goliatone/go-kmlscene/internal/metrics"
	"github.com/goliatone/go-kmlscene/pkg/adapters"
	"github.com/goliatone/go-kmlscene/pkg/kml"
	"github.com/goliatone/go-kmlscene/pkg/preset"
	"github.com/goliatone/go-kmlscene/pkg/render"
	"github.com/goliatone/go-kmlscene/pkg/renderers/geojson"
	"github.com/goliatone/go-kmlscene/pkg/renderers/htmlreport"
	"github.com/goliatone/go-kmlscene/pkg/renderers/scenejson"
	"github.com/goliatone/go-kmlscene/pkg/scene"
	"github.com/goliatone/go-kmlscene/pkg/style"
)

const (
	defaultRendererName = "scenejson"

	defaultHTTPTimeout = 15 * time.Second
)

// ErrPresetNotFound reports a preset name neither the store nor the theme
// selector could resolve.
var ErrPresetNotFound = errors.New("preset not found")

// ResolverFactory builds the style resolver used for one document. The
// default indexes the document's own shared styles.
type ResolverFactory func(doc kml.Document) scene.StyleResolver

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom KML document loader.
func WithLoader(loader kml.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithHTTPClient overrides the HTTP client the default loader uses for URL
// sources. Ignored when WithLoader supplies a loader.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Orchestrator) {
		o.httpClient = client
	}
}

// WithAdapters injects an adapter registry. The default registry carries the
// built-in geometry adapters.
func WithAdapters(registry *adapters.Registry) Option {
	return func(o *Orchestrator) {
		o.adapters = registry
	}
}

// WithResolver injects a style resolver factory invoked once per document.
func WithResolver(factory ResolverFactory) Option {
	return func(o *Orchestrator) {
		o.resolverFactory = factory
	}
}

// WithRenderers injects a renderer registry, replacing the built-in set.
func WithRenderers(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithRenderer registers an additional renderer on top of the configured
// registry.
func WithRenderer(renderer render.Renderer) Option {
	return func(o *Orchestrator) {
		if renderer != nil {
			o.extraRenderers = append(o.extraRenderers, renderer)
		}
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithPresets supplies the preset store consulted when requests name a
// preset.
func WithPresets(store *preset.Store) Option {
	return func(o *Orchestrator) {
		o.presets = store
	}
}

// WithPreset names a preset applied to every scene whose request does not
// name its own.
func WithPreset(name string) Option {
	return func(o *Orchestrator) {
		o.presetName = name
	}
}

// WithThemeSelector registers a go-theme selector consulted for preset names
// the store does not carry.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithSceneTransformer registers a Transformer that can mutate the built
// scene before render passes run.
func WithSceneTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// Orchestrator coordinates the full pipeline from KML document to rendered
// output. It applies sensible defaults (built-in adapters and renderers,
// document-local style resolution) while remaining open to dependency
// injection for advanced callers.
type Orchestrator struct {
	loader          kml.Loader
	httpClient      *http.Client
	adapters        *adapters.Registry
	resolverFactory ResolverFactory
	registry        *render.Registry
	extraRenderers  []render.Renderer
	presets         *preset.Store
	presetName      string
	themeSelector   theme.ThemeSelector
	transformer     Transformer
	defaultRenderer string
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a scene from a KML
// document.
type Request struct {
	// Source identifies where the KML document lives. Optional when Document
	// is supplied.
	Source kml.Source

	// Document allows callers to bypass the loader when they already have a
	// parsed document.
	Document *kml.Document

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// Preset names the style preset applied to bindings the document leaves
	// unstyled. Overrides the orchestrator's default preset for this request.
	Preset string

	// Title overrides the scene title handed to the renderer. When empty the
	// document's own name is used.
	Title string

	// FeatureIDs restricts rendering to the named features. Empty renders
	// every bound feature.
	FeatureIDs []string

	// RenderOptions carries per-request instructions (layer filter, pretty
	// output, extra metadata) that renderers can surface. When omitted,
	// renderers receive the zero-value struct apart from the title.
	RenderOptions render.RenderOptions
}

// Generate executes the loader → scene builder → render pass → renderer
// sequence and returns the rendered bytes (JSON for the default scenejson
// renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}

	started := time.Now()

	sc, doc, err := o.assemble(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := sc.Pass(scene.NewContext(nil)); err != nil {
		return nil, fmt.Errorf("orchestrator: render pass: %w", err)
	}
	metrics.RenderPassesTotal.Inc()
	metrics.RenderablesConstructedTotal.Add(float64(sc.RenderableCount()))

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.Title == "" {
		options.Title = req.Title
	}
	if options.Title == "" {
		options.Title = documentTitle(doc)
	}

	output, err := renderer.Render(ctx, sc, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}

	metrics.RendersTotal.WithLabelValues(renderer.Name()).Inc()
	metrics.RenderDurationMs.WithLabelValues(renderer.Name()).Observe(float64(time.Since(started).Milliseconds()))

	return output, nil
}

// Scene assembles the scene for a request without rendering it: document
// load, feature filter, preset fill, transformer. Hosts use it when they
// need the bindings themselves (balloon expansion, feature listings) rather
// than rendered bytes.
func (o *Orchestrator) Scene(ctx context.Context, req Request) (*scene.Scene, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	sc, _, err := o.assemble(ctx, req)
	return sc, err
}

// Renderers lists the names registered on the configured renderer registry,
// sorted. Hosts use it to offer renderer choices without reaching into the
// registry themselves.
func (o *Orchestrator) Renderers() []string {
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

// Renderer resolves the named renderer (or the default when name is empty)
// from the configured registry. Hosts use it to surface renderer metadata
// such as content types.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	return o.rendererFor(name)
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := o.initialiseErr; err != nil {
		return err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) assemble(ctx context.Context, req Request) (*scene.Scene, kml.Document, error) {
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, kml.Document{}, err
	}

	sc, err := o.buildScene(doc)
	if err != nil {
		return nil, kml.Document{}, err
	}
	metrics.ScenesBuiltTotal.Inc()

	sc = filterFeatures(sc, req.FeatureIDs)

	if err := o.applyPreset(req.Preset, sc); err != nil {
		return nil, kml.Document{}, err
	}
	if err := o.applyTransformer(ctx, sc); err != nil {
		return nil, kml.Document{}, err
	}
	return sc, doc, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (kml.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return kml.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return kml.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) buildScene(doc kml.Document) (*scene.Scene, error) {
	builder, err := scene.NewBuilder(o.adapters, o.resolverFactory(doc))
	if err != nil {
		return nil, fmt.Errorf("orchestrator: scene builder: %w", err)
	}
	sc, err := builder.Build(doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build scene: %w", err)
	}
	return sc, nil
}

func (o *Orchestrator) applyPreset(name string, sc *scene.Scene) error {
	target := strings.TrimSpace(name)
	if target == "" {
		target = strings.TrimSpace(o.presetName)
	}
	if target == "" {
		return nil
	}

	p, err := o.presetFor(target)
	if err != nil {
		return err
	}
	preset.Apply(sc, p)
	return nil
}

func (o *Orchestrator) presetFor(name string) (preset.Preset, error) {
	if o.presets != nil {
		if p, ok := o.presets.Preset(name); ok {
			return p, nil
		}
	}
	if o.themeSelector != nil {
		p, err := preset.SelectorPreset(o.themeSelector, name, "")
		if err != nil {
			return preset.Preset{}, fmt.Errorf("orchestrator: resolve preset %q: %w", name, err)
		}
		return p, nil
	}
	return preset.Preset{}, fmt.Errorf("orchestrator: preset %q: %w", name, ErrPresetNotFound)
}

func (o *Orchestrator) applyTransformer(ctx context.Context, sc *scene.Scene) error {
	if o.transformer == nil || sc == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, sc); err != nil {
		return fmt.Errorf("orchestrator: transform scene: %w", err)
	}
	return nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		options := []kml.LoaderOption{kml.WithHTTPFallback(defaultHTTPTimeout)}
		if o.httpClient != nil {
			options = append(options, kml.WithHTTPClient(o.httpClient))
		}
		o.loader = internalLoader.New(kml.NewLoaderOptions(options...))
	}
	if o.adapters == nil {
		o.adapters = adapters.NewDefaultRegistry()
	}
	if o.resolverFactory == nil {
		o.resolverFactory = func(doc kml.Document) scene.StyleResolver {
			return style.NewResolver(doc)
		}
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		o.registerBuiltins()
	}
	for _, renderer := range o.extraRenderers {
		if err := o.registry.Register(renderer); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: register renderer: %w", err)
			return
		}
	}
	o.extraRenderers = nil
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}

func (o *Orchestrator) registerBuiltins() {
	o.registry.MustRegister(scenejson.New())
	o.registry.MustRegister(geojson.New())

	reporter, err := htmlreport.New()
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: default report renderer: %w", err)
		return
	}
	o.registry.MustRegister(reporter)
}

func filterFeatures(sc *scene.Scene, ids []string) *scene.Scene {
	if sc == nil || len(ids) == 0 {
		return sc
	}

	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			want[id] = struct{}{}
		}
	}
	if len(want) == 0 {
		return sc
	}

	var kept []*scene.Binding
	for _, b := range sc.Bindings() {
		if _, ok := want[b.ID]; ok {
			kept = append(kept, b)
		}
	}
	return scene.NewScene(sc.Layers(), kept)
}

func documentTitle(doc kml.Document) string {
	root := doc.Root()
	if root == nil {
		return ""
	}
	if name, ok := kml.StringField(root, "name"); ok {
		return strings.TrimSpace(name)
	}
	return ""
}
