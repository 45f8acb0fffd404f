// Package adapters binds parsed KML geometry elements to renderable scene
// shapes. Each adapter type handles one family of tags, reads its element
// lazily through typed accessors, and constructs its renderable at most once,
// the first render pass that carries a resolved style. Registration is
// explicit: startup wiring calls RegisterDefaults (or Register directly) on a
// Registry instance; nothing registers itself at import time.
package adapters
