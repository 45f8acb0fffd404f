package render

import (
	"context"

	"github.com/goliatone/go-kmlscene/pkg/scene"
)

// Renderer converts an assembled scene into a byte representation (scene
// JSON, GeoJSON, an HTML report, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, sc *scene.Scene, options RenderOptions) ([]byte, error)
}
