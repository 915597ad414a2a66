package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testRegistry = `fields:
  - name: email
    attrs:
      type: email
    rules:
      required: true
      pattern: "^.+@.+$"
  - name: password
    attrs:
      type: password
    rules:
      minLength: 8
  - name: plan
    attrs:
      options: free, pro
defaults:
  plan: free
`

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FORMSTATE_THEME", "")
	t.Setenv("FORMSTATE_THEME_DIR", "")
	t.Setenv("FORMSTATE_OUTPUT", "json")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "--log-level", "error"}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestValidate_ReportsErrors(t *testing.T) {
	dir := t.TempDir()
	reg := writeFile(t, dir, "registry.yaml", testRegistry)
	values := writeFile(t, dir, "values.yaml", "password: short\n")

	out, err := execute(t, "validate", "--registry", reg, "--values", values)
	if !errors.Is(err, errValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	want := map[string]string{
		"email":    "Required.",
		"password": "Must be at least 8 characters.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_TouchedOnlyText(t *testing.T) {
	dir := t.TempDir()
	reg := writeFile(t, dir, "registry.yaml", testRegistry)
	values := writeFile(t, dir, "values.json", `{"password": "short"}`)

	out, err := execute(t, "validate", "--registry", reg, "--values", values, "--touched-only", "-o", "text")
	if !errors.Is(err, errValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}
	if got, want := out, "password: Must be at least 8 characters.\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestValidate_Passes(t *testing.T) {
	dir := t.TempDir()
	reg := writeFile(t, dir, "registry.yaml", testRegistry)
	values := writeFile(t, dir, "values.yaml", "email: ada@example.com\npassword: longenough\n")

	out, err := execute(t, "validate", "--registry", reg, "--values", values)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if strings.TrimSpace(out) != "{}" {
		t.Fatalf("expected empty error map, got %q", out)
	}
}

func TestValidate_RequiresSource(t *testing.T) {
	if _, err := execute(t, "validate"); err == nil {
		t.Fatalf("expected error without a registry source")
	}
}

func TestRender_HTMLWithTheme(t *testing.T) {
	dir := t.TempDir()
	reg := writeFile(t, dir, "registry.yaml", testRegistry)

	out, err := execute(t, "render", "--registry", reg, "--theme", "formstate:dark", "--action", "/signup")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{`<form`, `action="/signup"`, `name="email"`, `<select`, `<style`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_UnknownTheme(t *testing.T) {
	dir := t.TempDir()
	reg := writeFile(t, dir, "registry.yaml", testRegistry)

	if _, err := execute(t, "render", "--registry", reg, "--theme", "other"); err == nil {
		t.Fatalf("expected unknown theme error")
	}
}

func TestRender_WatchRequiresRegistry(t *testing.T) {
	_, err := execute(t, "render", "--watch", "--openapi", "api.yaml", "--operation", "signup")
	if err == nil || !strings.Contains(err.Error(), "--watch requires --registry") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestRender_ThemeDir(t *testing.T) {
	dir := t.TempDir()
	reg := writeFile(t, dir, "registry.yaml", testRegistry)
	themeDir := t.TempDir()
	writeFile(t, themeDir, "theme.yaml", "name: acme\nversion: 1.0.0\ntokens:\n  brand: \"#123456\"\n  class.form: acme-form\n")

	out, err := execute(t, "render", "--registry", reg, "--theme", "acme", "--theme-dir", themeDir)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{`class="acme-form"`, `--brand:#123456;`, `data-theme="acme"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTemplates_ExportAndOverride(t *testing.T) {
	dir := t.TempDir()
	reg := writeFile(t, dir, "registry.yaml", testRegistry)
	templates := filepath.Join(t.TempDir(), "html")

	if _, err := execute(t, "templates", templates); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(filepath.Join(templates, "templates", "fields", "error.tmpl")); err != nil {
		t.Fatalf("error partial not exported: %v", err)
	}
	if _, err := execute(t, "templates", templates); err == nil {
		t.Fatalf("expected export to refuse overwriting without --force")
	}

	writeFile(t, filepath.Join(templates, "templates", "fields"), "input.tmpl", `<p class="custom" data-field="{{ field.name }}"></p>`)
	out, err := execute(t, "render", "--registry", reg, "--templates-dir", templates)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<p class="custom" data-field="email">`) {
		t.Fatalf("custom input template not used:\n%s", out)
	}
}
