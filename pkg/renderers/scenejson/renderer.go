// Package scenejson renders an assembled scene as a JSON document suitable
// for feeding a globe client or diffing in tests.
package scenejson

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-kmlscene/internal/scenedoc"
	"github.com/goliatone/go-kmlscene/pkg/render"
	"github.com/goliatone/go-kmlscene/pkg/scene"
)

// Renderer emits the flattened scene document as JSON.
type Renderer struct{}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the scene JSON renderer.
func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Name() string {
	return "scenejson"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(_ context.Context, sc *scene.Scene, options render.RenderOptions) ([]byte, error) {
	doc := scenedoc.Build(sc, options)

	var (
		payload []byte
		err     error
	)
	if options.Pretty {
		payload, err = json.MarshalIndent(doc, "", "  ")
	} else {
		payload, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("scenejson: marshal scene: %w", err)
	}
	return payload, nil
}
