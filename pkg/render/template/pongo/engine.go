// Package pongo implements template.TemplateRenderer with pongo2. Templates
// use Django syntax and output is autoescaped.
package pongo

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formstate/pkg/render/template"
)

const setName = "formstate"

var errNilEngine = errors.New("pongo: engine is nil")

// Engine renders named templates from its loaders and inline template
// strings. Parsed named templates are cached for the life of the Engine.
type Engine struct {
	set       *pongo2.TemplateSet
	extension string

	// mu guards set.Globals; cache holds *pongo2.Template by resolved name.
	mu    sync.RWMutex
	cache sync.Map
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine. WithBaseDir or WithFS is required.
func New(options ...Option) (*Engine, error) {
	cfg := config{extension: ".tpl"}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	loaders, err := cfg.loaders()
	if err != nil {
		return nil, err
	}

	installFilters()
	engine := &Engine{
		set:       pongo2.NewSet(setName, loaders...),
		extension: cfg.extension,
	}
	if err := engine.GlobalContext(cfg.globals); err != nil {
		return nil, fmt.Errorf("pongo: global data: %w", err)
	}
	return engine, nil
}

func (cfg config) loaders() ([]pongo2.TemplateLoader, error) {
	var loaders []pongo2.TemplateLoader
	if cfg.dir != "" {
		local, err := pongo2.NewLocalFileSystemLoader(cfg.dir)
		if err != nil {
			return nil, fmt.Errorf("pongo: template dir %s: %w", cfg.dir, err)
		}
		loaders = append(loaders, local)
	}
	if cfg.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.files))
	}
	if len(loaders) == 0 {
		return nil, errors.New("pongo: a template dir or fs.FS is required")
	}
	return loaders, nil
}

// Render treats source containing template tags as an inline template and
// anything else as a template name.
func (e *Engine) Render(source string, data any, out ...io.Writer) (string, error) {
	if isInline(source) {
		return e.RenderString(source, data, out...)
	}
	return e.RenderTemplate(source, data, out...)
}

// RenderTemplate executes the named template.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errNilEngine
	}
	tmpl, err := e.lookup(e.resolve(name))
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, data, out)
}

// RenderString parses and executes content. Inline templates are not cached.
func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errNilEngine
	}
	tmpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("pongo: parse inline template: %w", err)
	}
	return e.execute(tmpl, data, out)
}

// GlobalContext merges data into the globals of the template set.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errNilEngine
	}
	values, err := toContext(data)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = pongo2.Context{}
	}
	e.set.Globals.Update(values)
	return nil
}

func (e *Engine) resolve(name string) string {
	if strings.HasSuffix(name, e.extension) {
		return name
	}
	return name + e.extension
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	if cached, ok := e.cache.Load(name); ok {
		return cached.(*pongo2.Template), nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("pongo: load %q: %w", name, err)
	}
	actual, _ := e.cache.LoadOrStore(name, tmpl)
	return actual.(*pongo2.Template), nil
}

func (e *Engine) execute(tmpl *pongo2.Template, data any, out []io.Writer) (string, error) {
	values, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("pongo: template data: %w", err)
	}

	e.mu.RLock()
	rendered, err := tmpl.Execute(values)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("pongo: execute: %w", err)
	}

	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func isInline(source string) bool {
	return strings.Contains(source, "{{") || strings.Contains(source, "{%")
}
