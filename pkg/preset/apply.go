package preset

import (
	"github.com/goliatone/go-kmlscene/pkg/scene"
)

// Apply fills every unstyled binding in the scene with the preset's style
// and reports how many bindings were updated. Bindings that already carry a
// style keep it. A follow-up render pass constructs the renderables whose
// construction was deferred while the binding had no style.
func Apply(sc *scene.Scene, p Preset) int {
	if sc == nil {
		return 0
	}

	st := p.Style()
	updated := 0
	for _, b := range sc.Bindings() {
		if b == nil || b.Style != nil {
			continue
		}
		b.Style = st
		updated++
	}
	return updated
}
