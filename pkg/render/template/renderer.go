// Package template is the seam between HTML renderers and a template engine.
// The pongo subpackage implements it.
package template

import "io"

// TemplateRenderer executes templates. Every render method returns the output
// and also writes it to each writer in out.
type TemplateRenderer interface {
	// Render runs source inline when it contains template tags and as a
	// template name otherwise.
	Render(source string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(content string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	// GlobalContext merges data into the values every template can read.
	GlobalContext(data any) error
}
