package scenejson

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goliatone/go-kmlscene/pkg/geom"
	"github.com/goliatone/go-kmlscene/pkg/render"
	"github.com/goliatone/go-kmlscene/pkg/scene"
)

func buildScene() *scene.Scene {
	layer := scene.NewLayer("default")
	polygon := scene.NewPolygonShape(
		[][]geom.Position{{{Lon: 10, Lat: 10}, {Lon: 10, Lat: 20}, {Lon: 20, Lat: 20}}},
		scene.NewShapeAttributes(map[string]any{"lineColor": "ff0000ff"}),
	)
	polygon.Extrude = true
	polygon.AltitudeMode = scene.AltitudeClampToGround
	layer.Add(polygon)
	return scene.NewScene([]*scene.Layer{layer}, nil)
}

func TestRendererMetadata(t *testing.T) {
	r := New()
	if r.Name() != "scenejson" {
		t.Errorf("expected scenejson, got %q", r.Name())
	}
	if r.ContentType() != "application/json" {
		t.Errorf("expected application/json, got %q", r.ContentType())
	}
}

func TestRenderProducesSceneDocument(t *testing.T) {
	payload, err := New().Render(context.Background(), buildScene(), render.RenderOptions{Title: "Parks"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(payload, &doc); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if doc["title"] != "Parks" {
		t.Errorf("expected title Parks, got %v", doc["title"])
	}
	if doc["renderableCount"] != float64(1) {
		t.Errorf("expected renderableCount 1, got %v", doc["renderableCount"])
	}

	layers, ok := doc["layers"].([]any)
	if !ok || len(layers) != 1 {
		t.Fatalf("expected 1 layer, got %v", doc["layers"])
	}
	layer := layers[0].(map[string]any)
	renderables := layer["renderables"].([]any)
	shape := renderables[0].(map[string]any)
	if shape["kind"] != "polygon" {
		t.Errorf("expected polygon kind, got %v", shape["kind"])
	}
	if shape["extrude"] != true {
		t.Errorf("expected extrude true, got %v", shape["extrude"])
	}
	if shape["altitudeMode"] != "clampToGround" {
		t.Errorf("expected clampToGround, got %v", shape["altitudeMode"])
	}
}

func TestRenderPrettyIndents(t *testing.T) {
	compact, err := New().Render(context.Background(), buildScene(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render compact: %v", err)
	}
	pretty, err := New().Render(context.Background(), buildScene(), render.RenderOptions{Pretty: true})
	if err != nil {
		t.Fatalf("render pretty: %v", err)
	}

	if strings.Contains(string(compact), "\n") {
		t.Error("expected compact output on one line")
	}
	if !strings.Contains(string(pretty), "\n  ") {
		t.Error("expected pretty output to be indented")
	}
}

func TestRenderNilScene(t *testing.T) {
	payload, err := New().Render(context.Background(), nil, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(payload, &doc); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if doc["renderableCount"] != float64(0) {
		t.Errorf("expected empty document, got %v", doc)
	}
}
