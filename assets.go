package formvalidator

import (
	"io/fs"

	"github.com/goliatone/go-formvalidator/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in HTML renderer templates so callers
// can copy or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// AssetsFS exposes the default stylesheet.
//
//	mux.Handle("/formvalidator/",
//	  http.StripPrefix("/formvalidator/",
//	    http.FileServerFS(formvalidator.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}
