package kmlscene

import (
	"io/fs"

	htmlreport "github.com/goliatone/go-kmlscene/pkg/renderers/htmlreport"
)

// EmbeddedTemplates exposes the built-in report templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return htmlreport.TemplatesFS()
}
