package render

import "context"

// Renderer turns a View into markup or data. ContentType is the MIME type of
// the output, e.g. for an HTTP response.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view View) ([]byte, error)
}
