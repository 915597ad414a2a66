package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formstate/pkg/render"
	rendertemplate "github.com/goliatone/go-formstate/pkg/render/template"
	"github.com/goliatone/go-formstate/pkg/render/template/pongo"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	submitLabel      string
	idPrefix         string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme applies a resolved go-theme configuration: partial overrides,
// class tokens, CSS variables and the stylesheet asset.
func WithTheme(themeCfg *theme.RendererConfig) Option {
	return func(cfg *config) {
		cfg.theme = themeCfg
	}
}

// WithSubmitLabel overrides the submit button text.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.submitLabel = trimmed
		}
	}
}

// WithIDPrefix prefixes generated element ids, for pages hosting more than
// one form.
func WithIDPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.idPrefix = strings.TrimSpace(prefix)
	}
}

// Renderer produces sanitized HTML form markup from a render.View.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	theme       *theme.RendererConfig
	submitLabel string
	idPrefix    string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), submitLabel: "Submit"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:   renderer,
		theme:       cfg.theme,
		submitLabel: cfg.submitLabel,
		idPrefix:    cfg.idPrefix,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render executes one partial per field, wraps them in the form template and
// sanitizes the result. The theme head (stylesheet link and CSS variables) is
// prepended after sanitizing.
func (r *Renderer) Render(ctx context.Context, view render.View) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	classes := classContext(r.theme)
	fields := make([]string, 0, len(view.Fields))
	for _, field := range view.Fields {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		html, err := r.templates.RenderTemplate(partialFor(r.theme, field.Control), map[string]any{
			"field":   fieldContext(field, r.idPrefix),
			"classes": classes,
		})
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: render field %q: %w", field.Name, err)
		}
		fields = append(fields, strings.TrimSpace(html))
	}

	themeCtx := themeContext(r.theme, classes["form"])
	body, err := r.templates.RenderTemplate(TemplateForm, map[string]any{
		"form":        formContext(view),
		"fields":      fields,
		"classes":     classes,
		"theme":       themeCtx,
		"submitLabel": r.submitLabel,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}

	head, err := r.templates.RenderTemplate(TemplateTheme, themeCtx)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render theme: %w", err)
	}

	var out strings.Builder
	out.WriteString(strings.TrimLeft(head, "\n"))
	out.WriteString(formSanitizer().Sanitize(body))
	return []byte(out.String()), nil
}
