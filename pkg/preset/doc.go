// Package preset loads named style presets from JSON/YAML documents and
// applies them to built scenes. Presets stand in for styles a document does
// not carry itself: applying one fills the unstyled bindings so the next
// render pass constructs their deferred renderables. The package also
// bridges preset stores to go-theme so hosts with theme registries can
// resolve presets through theme selection.
package preset
