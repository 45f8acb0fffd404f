// Package geojson renders an assembled scene as a GeoJSON FeatureCollection
// with simplestyle properties, so scenes can be inspected in standard map
// tooling.
package geojson

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-kmlscene/pkg/geom"
	"github.com/goliatone/go-kmlscene/pkg/render"
	"github.com/goliatone/go-kmlscene/pkg/scene"
	"github.com/goliatone/go-kmlscene/pkg/style"
)

// Renderer emits scenes as GeoJSON.
type Renderer struct{}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the GeoJSON renderer.
func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Name() string {
	return "geojson"
}

func (r *Renderer) ContentType() string {
	return "application/geo+json"
}

func (r *Renderer) Render(_ context.Context, sc *scene.Scene, options render.RenderOptions) ([]byte, error) {
	fc := featureCollection{Type: "FeatureCollection", Features: []feature{}}

	if sc != nil {
		for _, layer := range sc.Layers() {
			if !options.IncludesLayer(layer.Name()) {
				continue
			}
			for _, renderable := range layer.Renderables() {
				if f, ok := convert(layer.Name(), renderable); ok {
					fc.Features = append(fc.Features, f)
				}
			}
		}
	}

	var (
		payload []byte
		err     error
	)
	if options.Pretty {
		payload, err = json.MarshalIndent(fc, "", "  ")
	} else {
		payload, err = json.Marshal(fc)
	}
	if err != nil {
		return nil, fmt.Errorf("geojson: marshal feature collection: %w", err)
	}
	return payload, nil
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string         `json:"type"`
	Geometry   geometry       `json:"geometry"`
	Properties map[string]any `json:"properties,omitempty"`
}

type geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

func convert(layerName string, r scene.Renderable) (feature, bool) {
	switch shape := r.(type) {
	case *scene.PolygonShape:
		return feature{
			Type:       "Feature",
			Geometry:   geometry{Type: "Polygon", Coordinates: polygonCoordinates(shape.Locations())},
			Properties: shapeProperties(layerName, shape.Attributes(), shape.Extrude, shape.AltitudeMode),
		}, true
	case *scene.PolylineShape:
		properties := shapeProperties(layerName, shape.Attributes(), shape.Extrude, shape.AltitudeMode)
		if shape.Closed {
			properties["closed"] = true
		}
		if shape.FollowTerrain {
			properties["followTerrain"] = true
		}
		return feature{
			Type:       "Feature",
			Geometry:   geometry{Type: "LineString", Coordinates: lineCoordinates(shape.Positions())},
			Properties: properties,
		}, true
	case *scene.PointShape:
		return feature{
			Type:       "Feature",
			Geometry:   geometry{Type: "Point", Coordinates: coordTuple(shape.Position())},
			Properties: shapeProperties(layerName, shape.Attributes(), shape.Extrude, shape.AltitudeMode),
		}, true
	default:
		return feature{}, false
	}
}

// polygonCoordinates reorders the scene's hole-first boundary convention
// into GeoJSON's exterior-first ring order and closes each ring.
func polygonCoordinates(locations [][]geom.Position) [][][]float64 {
	ordered := locations
	if len(locations) == 2 {
		ordered = [][]geom.Position{locations[1], locations[0]}
	}

	out := make([][][]float64, 0, len(ordered))
	for _, boundary := range ordered {
		out = append(out, closeRing(lineCoordinates(boundary)))
	}
	return out
}

func closeRing(ring [][]float64) [][]float64 {
	if len(ring) == 0 {
		return ring
	}
	first, last := ring[0], ring[len(ring)-1]
	if len(first) == len(last) {
		same := true
		for i := range first {
			if first[i] != last[i] {
				same = false
				break
			}
		}
		if same {
			return ring
		}
	}
	return append(ring, first)
}

func lineCoordinates(positions []geom.Position) [][]float64 {
	out := make([][]float64, 0, len(positions))
	for _, position := range positions {
		out = append(out, coordTuple(position))
	}
	return out
}

func coordTuple(position geom.Position) []float64 {
	if position.Alt != 0 {
		return []float64{position.Lon, position.Lat, position.Alt}
	}
	return []float64{position.Lon, position.Lat}
}

func shapeProperties(layerName string, attrs *scene.ShapeAttributes, extrude bool, altitudeMode string) map[string]any {
	properties := map[string]any{"layer": layerName}
	if extrude {
		properties["extrude"] = true
	}
	if altitudeMode != "" {
		properties["altitudeMode"] = altitudeMode
	}
	if attrs == nil {
		return properties
	}

	if hex, opacity, ok := style.HexRGB(attrs.LineColor); ok {
		properties["stroke"] = hex
		properties["stroke-opacity"] = opacity
	}
	if attrs.LineWidth > 0 {
		properties["stroke-width"] = attrs.LineWidth
	}
	if hex, opacity, ok := style.HexRGB(attrs.InteriorColor); ok {
		properties["fill"] = hex
		if !attrs.Fill {
			opacity = 0
		}
		properties["fill-opacity"] = opacity
	}
	return properties
}
