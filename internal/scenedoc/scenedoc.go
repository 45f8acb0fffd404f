// Package scenedoc flattens an assembled scene into the plain document
// structure the JSON and HTML renderers share. Shape internals stay in
// pkg/scene; this package owns the serialization-friendly view.
package scenedoc

import (
	"github.com/goliatone/go-kmlscene/pkg/geom"
	"github.com/goliatone/go-kmlscene/pkg/render"
	"github.com/goliatone/go-kmlscene/pkg/scene"
)

// Document is the serializable view of a scene.
type Document struct {
	Title           string         `json:"title,omitempty"`
	Layers          []Layer        `json:"layers"`
	RenderableCount int            `json:"renderableCount"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// Layer groups the renderables drawn together.
type Layer struct {
	Name        string       `json:"name"`
	Renderables []Renderable `json:"renderables"`
}

// Renderable is the flattened form of one shape. Exactly one of Locations,
// Positions, or Position is set depending on Kind.
type Renderable struct {
	Kind          string       `json:"kind"`
	Locations     [][]Position `json:"locations,omitempty"`
	Positions     []Position   `json:"positions,omitempty"`
	Position      *Position    `json:"position,omitempty"`
	Extrude       bool         `json:"extrude"`
	FollowTerrain bool         `json:"followTerrain,omitempty"`
	Closed        bool         `json:"closed,omitempty"`
	AltitudeMode  string       `json:"altitudeMode,omitempty"`
	Attributes    *Attributes  `json:"attributes,omitempty"`
}

// Position mirrors geom.Position with serialization tags.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Alt float64 `json:"alt,omitempty"`
}

// Attributes mirrors the shape attribute set with serialization tags.
type Attributes struct {
	LineColor     string  `json:"lineColor,omitempty"`
	LineWidth     float64 `json:"lineWidth,omitempty"`
	InteriorColor string  `json:"interiorColor,omitempty"`
	Fill          bool    `json:"fill"`
	Outline       bool    `json:"outline"`
	DrawVerticals bool    `json:"drawVerticals,omitempty"`
	Lighting      bool    `json:"lighting,omitempty"`
	DepthTest     bool    `json:"depthTest,omitempty"`
}

// Build flattens sc honoring the options' layer filter and labeling. A nil
// scene yields an empty document.
func Build(sc *scene.Scene, options render.RenderOptions) Document {
	doc := Document{
		Title:    options.Title,
		Layers:   []Layer{},
		Metadata: options.Metadata,
	}
	if sc == nil {
		return doc
	}

	for _, layer := range sc.Layers() {
		if !options.IncludesLayer(layer.Name()) {
			continue
		}

		out := Layer{Name: layer.Name(), Renderables: []Renderable{}}
		for _, renderable := range layer.Renderables() {
			out.Renderables = append(out.Renderables, flatten(renderable))
		}
		doc.RenderableCount += len(out.Renderables)
		doc.Layers = append(doc.Layers, out)
	}
	return doc
}

func flatten(r scene.Renderable) Renderable {
	switch shape := r.(type) {
	case *scene.PolygonShape:
		return Renderable{
			Kind:         shape.Kind(),
			Locations:    convertLocations(shape.Locations()),
			Extrude:      shape.Extrude,
			AltitudeMode: shape.AltitudeMode,
			Attributes:   convertAttributes(shape.Attributes()),
		}
	case *scene.PolylineShape:
		return Renderable{
			Kind:          shape.Kind(),
			Positions:     convertPositions(shape.Positions()),
			Extrude:       shape.Extrude,
			FollowTerrain: shape.FollowTerrain,
			Closed:        shape.Closed,
			AltitudeMode:  shape.AltitudeMode,
			Attributes:    convertAttributes(shape.Attributes()),
		}
	case *scene.PointShape:
		position := convertPosition(shape.Position())
		return Renderable{
			Kind:         shape.Kind(),
			Position:     &position,
			Extrude:      shape.Extrude,
			AltitudeMode: shape.AltitudeMode,
			Attributes:   convertAttributes(shape.Attributes()),
		}
	default:
		return Renderable{Kind: r.Kind()}
	}
}

func convertLocations(locations [][]geom.Position) [][]Position {
	out := make([][]Position, 0, len(locations))
	for _, boundary := range locations {
		out = append(out, convertPositions(boundary))
	}
	return out
}

func convertPositions(positions []geom.Position) []Position {
	out := make([]Position, 0, len(positions))
	for _, position := range positions {
		out = append(out, convertPosition(position))
	}
	return out
}

func convertPosition(position geom.Position) Position {
	return Position{Lat: position.Lat, Lon: position.Lon, Alt: position.Alt}
}

func convertAttributes(attrs *scene.ShapeAttributes) *Attributes {
	if attrs == nil {
		return nil
	}
	return &Attributes{
		LineColor:     attrs.LineColor,
		LineWidth:     attrs.LineWidth,
		InteriorColor: attrs.InteriorColor,
		Fill:          attrs.Fill,
		Outline:       attrs.Outline,
		DrawVerticals: attrs.DrawVerticals,
		Lighting:      attrs.Lighting,
		DepthTest:     attrs.DepthTest,
	}
}
