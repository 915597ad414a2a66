// Package formstate wires the field registry, form state engine and renderer
// adapters behind a few convenience constructors.
package formstate

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/registry"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/renderers/vanilla"
)

// FieldSpec aliases registry.FieldSpec for callers that only import the root.
type FieldSpec = registry.FieldSpec

// Rules aliases registry.Rules.
type Rules = registry.Rules

// Definition aliases registry.Definition.
type Definition = registry.Definition

// ChangeEvent aliases form.ChangeEvent.
type ChangeEvent = form.ChangeEvent

// NewForm initializes a form from a definition. The definition's defaults are
// applied first so later form.WithDefaults options replace them.
func NewForm(def Definition, options ...form.Option) (*form.Form, error) {
	if def.Registry == nil {
		return nil, form.ErrNilRegistry
	}
	opts := make([]form.Option, 0, len(options)+1)
	if len(def.Defaults) > 0 {
		opts = append(opts, form.WithDefaults(def.Defaults))
	}
	opts = append(opts, options...)
	return form.New(def.Registry, opts...)
}

// LoadForm reads a registry document from path and initializes a form.
func LoadForm(path string, options ...form.Option) (*form.Form, error) {
	def, err := registry.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewForm(def, options...)
}

// NewRendererRegistry returns a render.Registry holding the built-in HTML and
// JSON renderers.
func NewRendererRegistry(options ...vanilla.Option) (*render.Registry, error) {
	html, err := vanilla.New(options...)
	if err != nil {
		return nil, err
	}
	reg := render.NewRegistry()
	if err := reg.Register(html); err != nil {
		return nil, err
	}
	if err := reg.Register(render.JSONRenderer{}); err != nil {
		return nil, err
	}
	return reg, nil
}

// Render projects f into a view and renders it with the named renderer.
func Render(ctx context.Context, renderers *render.Registry, name string, f *form.Form, options ...render.ViewOption) ([]byte, error) {
	if renderers == nil {
		return nil, fmt.Errorf("formstate: renderer registry is nil")
	}
	renderer, err := renderers.Get(name)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, render.Build(f, options...))
}
