package scenedoc

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-kmlscene/pkg/geom"
	"github.com/goliatone/go-kmlscene/pkg/render"
	"github.com/goliatone/go-kmlscene/pkg/scene"
)

func sampleScene() *scene.Scene {
	parks := scene.NewLayer("parks")
	polygon := scene.NewPolygonShape(
		[][]geom.Position{{{Lon: 10, Lat: 10}, {Lon: 10, Lat: 20}, {Lon: 20, Lat: 20}}},
		scene.NewShapeAttributes(map[string]any{"lineColor": "ff0000ff", "lineWidth": 2.0}),
	)
	polygon.Extrude = true
	polygon.AltitudeMode = scene.AltitudeClampToGround
	parks.Add(polygon)

	roads := scene.NewLayer("roads")
	line := scene.NewPolylineShape(
		[]geom.Position{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 1, Alt: 50}},
		scene.NewShapeAttributes(nil),
	)
	line.FollowTerrain = true
	roads.Add(line)
	roads.Add(scene.NewPointShape(geom.Position{Lon: 5, Lat: 5}, scene.NewShapeAttributes(nil)))

	return scene.NewScene([]*scene.Layer{parks, roads}, nil)
}

func TestBuildFlattensLayers(t *testing.T) {
	doc := Build(sampleScene(), render.RenderOptions{Title: "Demo"})

	if doc.Title != "Demo" {
		t.Errorf("expected title Demo, got %q", doc.Title)
	}
	if doc.RenderableCount != 3 {
		t.Errorf("expected 3 renderables, got %d", doc.RenderableCount)
	}
	if len(doc.Layers) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(doc.Layers))
	}

	parks := doc.Layers[0]
	if parks.Name != "parks" {
		t.Errorf("expected parks layer first, got %q", parks.Name)
	}
	polygon := parks.Renderables[0]
	if polygon.Kind != "polygon" {
		t.Errorf("expected polygon kind, got %q", polygon.Kind)
	}
	if !polygon.Extrude {
		t.Error("expected extrude carried onto the flattened polygon")
	}
	wantLocations := [][]Position{{{Lat: 10, Lon: 10}, {Lat: 20, Lon: 10}, {Lat: 20, Lon: 20}}}
	if diff := cmp.Diff(wantLocations, polygon.Locations); diff != "" {
		t.Errorf("locations mismatch (-want +got):\n%s", diff)
	}
	if polygon.Attributes == nil || polygon.Attributes.LineColor != "ff0000ff" {
		t.Errorf("expected line color carried, got %+v", polygon.Attributes)
	}

	roads := doc.Layers[1]
	if got := roads.Renderables[0]; got.Kind != "polyline" || !got.FollowTerrain {
		t.Errorf("expected terrain-following polyline, got %+v", got)
	}
	if got := roads.Renderables[1]; got.Kind != "point" || got.Position == nil {
		t.Errorf("expected point with position, got %+v", got)
	}
}

func TestBuildFiltersLayers(t *testing.T) {
	doc := Build(sampleScene(), render.RenderOptions{Layers: []string{"roads"}})

	if len(doc.Layers) != 1 || doc.Layers[0].Name != "roads" {
		t.Fatalf("expected only the roads layer, got %+v", doc.Layers)
	}
	if doc.RenderableCount != 2 {
		t.Errorf("expected 2 renderables, got %d", doc.RenderableCount)
	}
}

func TestBuildNilScene(t *testing.T) {
	doc := Build(nil, render.RenderOptions{})

	if len(doc.Layers) != 0 {
		t.Errorf("expected no layers, got %d", len(doc.Layers))
	}
	if doc.RenderableCount != 0 {
		t.Errorf("expected zero count, got %d", doc.RenderableCount)
	}
}
