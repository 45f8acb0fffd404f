package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-kmlscene/pkg/kml"
	"github.com/goliatone/go-kmlscene/pkg/preset"
	"github.com/goliatone/go-kmlscene/pkg/render"
	"github.com/goliatone/go-kmlscene/pkg/scene"
	"github.com/goliatone/go-kmlscene/pkg/style"
)

const styledKML = `<kml>
  <Document>
    <name>Park Boundaries</name>
    <Style id="green"><LineStyle><color>ff00aa00</color><width>2</width></LineStyle></Style>
    <Placemark id="park">
      <name>Greenwood</name>
      <styleUrl>#green</styleUrl>
      <Polygon>
        <outerBoundaryIs><LinearRing><coordinates>0,0 0,10 10,10 10,0</coordinates></LinearRing></outerBoundaryIs>
      </Polygon>
    </Placemark>
  </Document>
</kml>`

const unstyledKML = `<kml>
  <Document>
    <name>Survey Tracks</name>
    <Placemark id="area">
      <Polygon>
        <outerBoundaryIs><LinearRing><coordinates>0,0 0,10 10,10 10,0</coordinates></LinearRing></outerBoundaryIs>
      </Polygon>
    </Placemark>
    <Placemark id="marker">
      <Point><coordinates>5,5</coordinates></Point>
    </Placemark>
  </Document>
</kml>`

func parseDocument(t *testing.T, src string) kml.Document {
	t.Helper()
	root, err := kml.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return kml.MustNewDocument(kml.SourceFromBytes("fixture.kml", nil), root)
}

type stubLoader struct {
	doc   kml.Document
	err   error
	calls int
}

func (s *stubLoader) Load(_ context.Context, _ kml.Source) (kml.Document, error) {
	s.calls++
	if s.err != nil {
		return kml.Document{}, s.err
	}
	return s.doc, nil
}

type captureRenderer struct {
	scene   *scene.Scene
	options render.RenderOptions
}

func (r *captureRenderer) Name() string        { return "capture" }
func (r *captureRenderer) ContentType() string { return "text/plain" }

func (r *captureRenderer) Render(_ context.Context, sc *scene.Scene, options render.RenderOptions) ([]byte, error) {
	r.scene = sc
	r.options = options
	return []byte("ok"), nil
}

func captureOrchestrator(renderer *captureRenderer, extra ...Option) *Orchestrator {
	registry := render.NewRegistry()
	registry.MustRegister(renderer)
	options := append([]Option{
		WithRenderers(registry),
		WithDefaultRenderer(renderer.Name()),
	}, extra...)
	return New(options...)
}

func TestOrchestrator_GenerateFromDocument(t *testing.T) {
	doc := parseDocument(t, styledKML)
	renderer := &captureRenderer{}
	orch := captureOrchestrator(renderer)

	output, err := orch.Generate(context.Background(), Request{Document: &doc})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(output) != "ok" {
		t.Fatalf("unexpected output: %q", output)
	}

	if renderer.scene == nil {
		t.Fatalf("expected scene passed to renderer")
	}
	if got := renderer.scene.RenderableCount(); got != 1 {
		t.Fatalf("expected 1 renderable, got %d", got)
	}
	if renderer.options.Title != "Park Boundaries" {
		t.Fatalf("expected document name as title, got %q", renderer.options.Title)
	}
}

func TestOrchestrator_GenerateUsesLoaderForSource(t *testing.T) {
	loader := &stubLoader{doc: parseDocument(t, styledKML)}
	renderer := &captureRenderer{}
	orch := captureOrchestrator(renderer, WithLoader(loader))

	if _, err := orch.Generate(context.Background(), Request{Source: kml.SourceFromFile("fixture.kml")}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
}

func TestOrchestrator_GenerateRequiresSourceOrDocument(t *testing.T) {
	orch := captureOrchestrator(&captureRenderer{})
	if _, err := orch.Generate(context.Background(), Request{}); err == nil {
		t.Fatalf("expected error without source or document")
	}
}

func TestOrchestrator_GenerateNilContext(t *testing.T) {
	doc := parseDocument(t, styledKML)
	orch := captureOrchestrator(&captureRenderer{})
	var missing context.Context
	if _, err := orch.Generate(missing, Request{Document: &doc}); err == nil {
		t.Fatalf("expected error for nil context")
	}
}

func TestOrchestrator_UnknownRenderer(t *testing.T) {
	doc := parseDocument(t, styledKML)
	orch := captureOrchestrator(&captureRenderer{})

	_, err := orch.Generate(context.Background(), Request{Document: &doc, Renderer: "nope"})
	if err == nil {
		t.Fatalf("expected unknown renderer error")
	}
	if !strings.Contains(err.Error(), `renderer "nope"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOrchestrator_LoaderErrorWrapped(t *testing.T) {
	loader := &stubLoader{err: errors.New("boom")}
	orch := captureOrchestrator(&captureRenderer{}, WithLoader(loader))

	_, err := orch.Generate(context.Background(), Request{Source: kml.SourceFromFile("missing.kml")})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected wrapped loader error, got %v", err)
	}
}

func TestOrchestrator_RequestPresetConstructsUnstyled(t *testing.T) {
	doc := parseDocument(t, unstyledKML)
	renderer := &captureRenderer{}
	store := mustStore(t, preset.Preset{
		Name:   "fallback",
		Normal: style.Presentation{LineColor: "ff123456", LineWidth: 1},
	})
	orch := captureOrchestrator(renderer, WithPresets(store))

	if _, err := orch.Generate(context.Background(), Request{Document: &doc, Preset: "fallback"}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if got := renderer.scene.RenderableCount(); got != 2 {
		t.Fatalf("expected both features constructed via preset, got %d", got)
	}
	for _, b := range renderer.scene.Bindings() {
		if b.Style == nil || b.Style.ID != "preset:fallback" {
			t.Fatalf("expected preset style on binding %s, got %+v", b.ID, b.Style)
		}
	}
}

func TestOrchestrator_RequestPresetOverridesDefault(t *testing.T) {
	doc := parseDocument(t, unstyledKML)
	renderer := &captureRenderer{}
	store := mustStore(t,
		preset.Preset{Name: "base", Normal: style.Presentation{LineWidth: 1}},
		preset.Preset{Name: "override", Normal: style.Presentation{LineWidth: 9}},
	)
	orch := captureOrchestrator(renderer, WithPresets(store), WithPreset("base"))

	if _, err := orch.Generate(context.Background(), Request{Document: &doc, Preset: "override"}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	b := renderer.scene.Bindings()[0]
	if b.Style == nil || b.Style.ID != "preset:override" {
		t.Fatalf("request preset should win, got %+v", b.Style)
	}
}

func TestOrchestrator_PresetNotFound(t *testing.T) {
	doc := parseDocument(t, unstyledKML)
	orch := captureOrchestrator(&captureRenderer{})

	_, err := orch.Generate(context.Background(), Request{Document: &doc, Preset: "missing"})
	if !errors.Is(err, ErrPresetNotFound) {
		t.Fatalf("expected ErrPresetNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), `"missing"`) {
		t.Fatalf("expected error to name the preset, got %v", err)
	}
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}

func TestOrchestrator_ThemeSelectorResolvesUnknownPreset(t *testing.T) {
	doc := parseDocument(t, unstyledKML)
	renderer := &captureRenderer{}

	source := preset.Preset{Name: "glow", Normal: style.Presentation{LineColor: "ffffff00"}}
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:    "glow",
		Manifest: source.Manifest(),
	}}
	orch := captureOrchestrator(renderer, WithThemeSelector(selector))

	if _, err := orch.Generate(context.Background(), Request{Document: &doc, Preset: "glow"}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(selector.calls) != 1 || selector.calls[0].name != "glow" {
		t.Fatalf("expected selector consulted for glow, got %+v", selector.calls)
	}
	b := renderer.scene.Bindings()[0]
	if b.Style == nil || b.Style.Normal.LineColor != "ffffff00" {
		t.Fatalf("expected selector preset applied, got %+v", b.Style)
	}
}

func TestOrchestrator_FeatureFilter(t *testing.T) {
	doc := parseDocument(t, unstyledKML)
	renderer := &captureRenderer{}
	store := mustStore(t, preset.Preset{Name: "fallback", Normal: style.Presentation{LineWidth: 1}})
	orch := captureOrchestrator(renderer, WithPresets(store), WithPreset("fallback"))

	if _, err := orch.Generate(context.Background(), Request{
		Document:   &doc,
		FeatureIDs: []string{"marker"},
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	bindings := renderer.scene.Bindings()
	if len(bindings) != 1 || bindings[0].ID != "marker" {
		t.Fatalf("expected only the marker binding, got %+v", bindings)
	}
	if got := renderer.scene.RenderableCount(); got != 1 {
		t.Fatalf("expected 1 renderable after filtering, got %d", got)
	}
}

func TestOrchestrator_SceneTransformerRuns(t *testing.T) {
	doc := parseDocument(t, styledKML)
	renderer := &captureRenderer{}

	var seen int
	orch := captureOrchestrator(renderer, WithSceneTransformer(TransformerFunc(func(_ context.Context, sc *scene.Scene) error {
		seen = len(sc.Bindings())
		return nil
	})))

	if _, err := orch.Generate(context.Background(), Request{Document: &doc}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if seen != 1 {
		t.Fatalf("expected transformer to observe 1 binding, got %d", seen)
	}
}

func TestOrchestrator_SceneTransformerErrorWrapped(t *testing.T) {
	doc := parseDocument(t, styledKML)
	orch := captureOrchestrator(&captureRenderer{}, WithSceneTransformer(TransformerFunc(func(context.Context, *scene.Scene) error {
		return errors.New("boom")
	})))

	_, err := orch.Generate(context.Background(), Request{Document: &doc})
	if err == nil || !strings.Contains(err.Error(), "transform scene") {
		t.Fatalf("expected wrapped transformer error, got %v", err)
	}
}

func TestOrchestrator_TitleOverride(t *testing.T) {
	doc := parseDocument(t, styledKML)
	renderer := &captureRenderer{}
	orch := captureOrchestrator(renderer)

	if _, err := orch.Generate(context.Background(), Request{Document: &doc, Title: "Custom"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if renderer.options.Title != "Custom" {
		t.Fatalf("expected request title, got %q", renderer.options.Title)
	}
}

func TestOrchestrator_BuiltinRenderers(t *testing.T) {
	doc := parseDocument(t, styledKML)
	orch := New()

	payload, err := orch.Generate(context.Background(), Request{Document: &doc})
	if err != nil {
		t.Fatalf("generate default: %v", err)
	}
	var report map[string]any
	if err := json.Unmarshal(payload, &report); err != nil {
		t.Fatalf("default output is not JSON: %v", err)
	}
	if report["title"] != "Park Boundaries" {
		t.Fatalf("unexpected title: %v", report["title"])
	}

	payload, err = orch.Generate(context.Background(), Request{Document: &doc, Renderer: "geojson"})
	if err != nil {
		t.Fatalf("generate geojson: %v", err)
	}
	var collection struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(payload, &collection); err != nil {
		t.Fatalf("geojson output is not JSON: %v", err)
	}
	if collection.Type != "FeatureCollection" || len(collection.Features) != 1 {
		t.Fatalf("unexpected collection: type=%q features=%d", collection.Type, len(collection.Features))
	}
}

func TestOrchestrator_ExtraRendererRegistered(t *testing.T) {
	doc := parseDocument(t, styledKML)
	renderer := &captureRenderer{}
	orch := New(WithRenderer(renderer))

	output, err := orch.Generate(context.Background(), Request{Document: &doc, Renderer: "capture"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(output) != "ok" {
		t.Fatalf("expected extra renderer to serve the request, got %q", output)
	}
}

func TestOrchestrator_SceneExposesBindings(t *testing.T) {
	doc := parseDocument(t, unstyledKML)
	store := mustStore(t, preset.Preset{
		Name:   "fallback",
		Normal: style.Presentation{LineColor: "ffffffff"},
	})
	orch := New(WithPresets(store), WithPreset("fallback"))

	sc, err := orch.Scene(context.Background(), Request{Document: &doc})
	if err != nil {
		t.Fatalf("scene: %v", err)
	}
	if got := len(sc.Bindings()); got != 2 {
		t.Fatalf("expected 2 bindings, got %d", got)
	}

	binding, ok := sc.FindBinding("area")
	if !ok {
		t.Fatalf("expected binding for feature area")
	}
	if binding.Style == nil || binding.Style.ID != "preset:fallback" {
		t.Fatalf("expected preset style on unstyled binding, got %+v", binding.Style)
	}
	if sc.RenderableCount() != 0 {
		t.Fatalf("expected no renderables before a render pass, got %d", sc.RenderableCount())
	}
}

func mustStore(t *testing.T, presets ...preset.Preset) *preset.Store {
	t.Helper()
	store, err := preset.NewStore(presets...)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}
