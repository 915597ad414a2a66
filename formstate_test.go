package formstate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formstate/pkg/form"
	pkgopenapi "github.com/goliatone/go-formstate/pkg/openapi"
	"github.com/goliatone/go-formstate/pkg/registry"
	"github.com/goliatone/go-formstate/pkg/renderers/vanilla"
)

const registryDoc = `fields:
  - name: email
    label: Email
    attrs:
      type: email
    rules:
      required: true
      pattern: "^.+@.+$"
  - name: plan
    attrs:
      options: free,pro
defaults:
  plan: free
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadForm(t *testing.T) {
	f, err := LoadForm(writeFile(t, "signup.yaml", registryDoc))
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	if diff := cmp.Diff(form.Values{"plan": "free"}, f.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if f.Status("plan") != form.Touched {
		t.Fatalf("default should seed plan as touched")
	}

	override, err := LoadForm(writeFile(t, "signup.yaml", registryDoc), form.WithDefaults(map[string]string{"email": "a@b"}))
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	if diff := cmp.Diff(form.Values{"email": "a@b"}, override.Values()); diff != "" {
		t.Fatalf("override mismatch (-want +got):\n%s", diff)
	}

	if _, err := NewForm(Definition{}); !errors.Is(err, form.ErrNilRegistry) {
		t.Fatalf("expected ErrNilRegistry, got %v", err)
	}
}

func TestRender(t *testing.T) {
	f, err := LoadForm(writeFile(t, "signup.yaml", registryDoc))
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	renderers, err := NewRendererRegistry(vanilla.WithSubmitLabel("Sign up"))
	if err != nil {
		t.Fatalf("renderers: %v", err)
	}

	html, err := Render(context.Background(), renderers, "vanilla", f)
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	if !strings.Contains(string(html), `name="email"`) || !strings.Contains(string(html), "Sign up") {
		t.Fatalf("unexpected html:\n%s", html)
	}

	payload, err := Render(context.Background(), renderers, "json", f)
	if err != nil {
		t.Fatalf("render json: %v", err)
	}
	if !strings.Contains(string(payload), `"submitDisabled": true`) {
		t.Fatalf("unexpected json: %s", payload)
	}

	if _, err := Render(context.Background(), renderers, "pdf", f); err == nil {
		t.Fatalf("expected unknown renderer error")
	}
}

const openAPIDoc = `openapi: 3.0.3
info:
  title: Signup
  version: 1.0.0
paths:
  /signup:
    post:
      operationId: createSignup
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [email]
              properties:
                email:
                  type: string
                  format: email
                  x-order: 1
                plan:
                  type: string
                  enum: [free, pro]
                  default: pro
      responses:
        "201":
          description: created
`

func TestLoadOpenAPI(t *testing.T) {
	path := writeFile(t, "openapi.yaml", openAPIDoc)

	def, err := LoadOpenAPI(context.Background(), pkgopenapi.SourceFromFile(path), "createSignup")
	if err != nil {
		t.Fatalf("load openapi: %v", err)
	}
	if diff := cmp.Diff([]string{"email", "plan"}, def.Registry.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	f, err := NewForm(def)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	if err := f.Change(ChangeEvent{Field: "email", Value: "ada@example.com"}); err != nil {
		t.Fatalf("change: %v", err)
	}
	if f.Errors(false) != nil {
		t.Fatalf("expected no errors, got %v", f.Errors(false))
	}

	spec, _ := def.Registry.Spec("plan")
	if spec.Control != registry.ControlSelect {
		t.Fatalf("expected select control, got %s", spec.Control)
	}
}

func TestThemeConfig(t *testing.T) {
	themes, err := NewThemeRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	selector := theme.Selector{Registry: themes}

	selection, err := SelectTheme(selector, DefaultThemeName, "dark")
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	cfg := ThemeConfig(selection, nil)
	if cfg.Theme != DefaultThemeName || cfg.Variant != "dark" {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.Tokens["surface"] != "#111827" || cfg.Tokens["brand"] != "#2563eb" {
		t.Fatalf("variant tokens not merged: %v", cfg.Tokens)
	}
	if cfg.CSSVars["--surface"] != "#111827" {
		t.Fatalf("css vars not derived from tokens: %v", cfg.CSSVars)
	}
	if _, ok := cfg.CSSVars["--class.form"]; ok {
		t.Fatalf("class tokens must not become css vars")
	}
	if diff := cmp.Diff(vanilla.DefaultPartials(), cfg.Partials); diff != "" {
		t.Fatalf("partials mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.AssetURL("vanilla.stylesheet"); got != "/assets/formstate/formstate-dark.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %q", got)
	}

	if _, err := SelectTheme(selector, DefaultThemeName, "sepia"); err == nil {
		t.Fatalf("expected unknown variant error")
	}
	if _, err := SelectTheme(selector, "missing", ""); !errors.Is(err, theme.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
	if ThemeConfig(nil, nil) != nil {
		t.Fatalf("expected nil config for nil selection")
	}
}

func TestLoadThemeDir(t *testing.T) {
	dir := t.TempDir()
	manifest := `name: acme
version: 1.0.0
tokens:
  brand: "#123456"
  class.form: acme-form
templates:
  forms.checkbox: themes/acme/checkbox.tmpl
`
	if err := os.WriteFile(filepath.Join(dir, "theme.yaml"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	loaded, err := LoadThemeDir(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	themes, err := NewThemeRegistry(loaded)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	selection, err := SelectTheme(theme.Selector{Registry: themes}, "acme", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	cfg := ThemeConfig(selection, nil)
	if cfg.Partials["forms.checkbox"] != "themes/acme/checkbox.tmpl" {
		t.Fatalf("manifest partial not applied: %v", cfg.Partials)
	}
	if cfg.Partials["forms.input"] != vanilla.TemplateInput {
		t.Fatalf("fallback partial missing: %v", cfg.Partials)
	}
	if diff := cmp.Diff(map[string]string{"--brand": "#123456"}, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}

	if _, err := LoadThemeDir(t.TempDir()); err == nil {
		t.Fatalf("expected error for a directory without a manifest")
	}
}
