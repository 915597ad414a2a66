package registry

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func TestLoadFile_YAML(t *testing.T) {
	def, err := LoadFile(filepath.Join("testdata", "signup.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if diff := cmp.Diff([]string{"email", "password", "newsletter", "plan"}, def.Registry.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"plan": "free"}, def.Defaults); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}

	email, _ := def.Registry.Spec("email")
	if email.Rules == nil || !email.Rules.Required || email.Rules.PatternMessage != "Enter a valid email address." {
		t.Fatalf("email rules not parsed: %#v", email.Rules)
	}
	password, _ := def.Registry.Spec("password")
	if password.Rules.MinLength != 8 || password.Rules.MaxLength != 64 {
		t.Fatalf("password bounds not parsed: %#v", password.Rules)
	}
	newsletter, _ := def.Registry.Spec("newsletter")
	if newsletter.Control != ControlCheckbox {
		t.Fatalf("expected checkbox control, got %q", newsletter.Control)
	}
	plan, _ := def.Registry.Spec("plan")
	if plan.Control != ControlSelect {
		t.Fatalf("expected select control, got %q", plan.Control)
	}
}

func TestLoadFS_JSON(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "signup.json"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	fsys := fstest.MapFS{"forms/signup.json": {Data: data}}

	def, err := LoadFS(fsys, "forms/signup.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if def.Source != "forms/signup.json" {
		t.Fatalf("unexpected source %q", def.Source)
	}
	country, ok := def.Registry.Spec("country")
	if !ok || country.Control != ControlComposite {
		t.Fatalf("country spec not parsed: %#v", country)
	}
	if def.Defaults["country"] != "PT" {
		t.Fatalf("defaults not parsed: %#v", def.Defaults)
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse([]byte("   "), "empty.yaml"); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := Parse([]byte("fields: [\n"), "broken.yaml"); err == nil {
		t.Fatalf("expected error for malformed document")
	}

	_, err := Parse([]byte(`fields: [{name: code, rules: {pattern: "(["}}]`), "bad.yaml")
	if !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("expected invalid pattern error, got %v", err)
	}
}

func TestParse_ReportsDecoderPosition(t *testing.T) {
	_, err := Parse([]byte("{\"fields\": [}"), "broken.json")
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected wrapped *json.SyntaxError, got %v", err)
	}
	if syntaxErr.Offset == 0 {
		t.Fatalf("expected a byte offset in %v", err)
	}

	_, err = Parse([]byte("fields:\n  - name: [email\n"), "broken.yaml")
	if err == nil || !strings.Contains(err.Error(), "line") {
		t.Fatalf("expected yaml error with a line number, got %v", err)
	}
}

func TestLoadValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "values.yaml")
	if err := os.WriteFile(path, []byte("email: a@b.com\nnewsletter: true\nage: 42\nempty: null\n"), 0o644); err != nil {
		t.Fatalf("write values: %v", err)
	}

	got, err := LoadValues(path)
	if err != nil {
		t.Fatalf("load values: %v", err)
	}
	want := map[string]string{"email": "a@b.com", "newsletter": "true", "age": "42"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestHolder_ReloadKeepsPreviousOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.yaml")
	writeFile(t, path, "fields:\n  - name: email\n")

	holder, err := NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("new holder: %v", err)
	}

	var notified []int
	holder.OnChange(func(def Definition) {
		notified = append(notified, def.Registry.Len())
	})

	writeFile(t, path, "fields:\n  - name: email\n  - name: name\n")
	if err := holder.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if holder.Get().Registry.Len() != 2 {
		t.Fatalf("expected reloaded registry with 2 fields")
	}

	writeFile(t, path, "fields:\n  - name: email\n  - name: email\n")
	if err := holder.Reload(); !errors.Is(err, ErrDuplicateField) {
		t.Fatalf("expected duplicate field error, got %v", err)
	}
	if holder.Get().Registry.Len() != 2 {
		t.Fatalf("failed reload should keep previous definition")
	}

	if diff := cmp.Diff([]int{2}, notified); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestHolder_ListenersRunOutsideLock(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.yaml")
	writeFile(t, path, "fields:\n  - name: email\n")

	holder, err := NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("new holder: %v", err)
	}

	var calls []string
	holder.OnChange(func(def Definition) {
		calls = append(calls, "first")
		// Get and OnChange take the holder lock.
		if !holder.Get().Registry.Has("phone") {
			t.Errorf("listener saw a stale definition")
		}
		holder.OnChange(func(Definition) {
			calls = append(calls, "late")
		})
	})

	writeFile(t, path, "fields:\n  - name: email\n  - name: phone\n")
	if err := holder.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if diff := cmp.Diff([]string{"first"}, calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}

	calls = nil
	if err := holder.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if diff := cmp.Diff([]string{"first", "late"}, calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestHolder_WatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.yaml")
	writeFile(t, path, "fields:\n  - name: email\n")

	holder, err := NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("new holder: %v", err)
	}
	reloaded := make(chan Definition, 4)
	holder.OnChange(func(def Definition) {
		reloaded <- def
	})
	if err := holder.Watch(); err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer holder.Stop()

	writeFile(t, path, "fields:\n  - name: email\n  - name: phone\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case def := <-reloaded:
			if def.Registry.Has("phone") {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for reload")
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
