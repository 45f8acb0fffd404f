package orchestrator

import (
	"context"

	"github.com/goliatone/go-kmlscene/pkg/scene"
)

// Transformer mutates a built scene before render passes run. Implementations
// can inject layers, rebind features, or override styles programmatically.
type Transformer interface {
	Transform(ctx context.Context, sc *scene.Scene) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, sc *scene.Scene) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, sc *scene.Scene) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, sc)
}
