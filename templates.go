package formstate

import (
	"io/fs"

	"github.com/goliatone/go-formstate/pkg/renderers/vanilla"
)

// EmbeddedTemplates returns the vanilla renderer's template bundle, e.g. as a
// base for a theme's partial overrides.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
