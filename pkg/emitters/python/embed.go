package python

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

// TemplatesFS exposes the embedded template set rooted at the template names
// the emitter renders.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
