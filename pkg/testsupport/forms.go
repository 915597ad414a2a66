package testsupport

import (
	"sync"
	"testing"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/registry"
)

// SignupSpecs returns the field specs shared by package tests: a required
// email with a pattern, a password with a minimum length, a checkbox and a
// select.
func SignupSpecs() []registry.FieldSpec {
	return []registry.FieldSpec{
		{
			Name:  "email",
			Label: "Email",
			Attrs: map[string]string{"type": "email"},
			Rules: &registry.Rules{Required: true, Pattern: "^.+@.+$", MaxLength: 120},
		},
		{
			Name:  "password",
			Label: "Password",
			Attrs: map[string]string{"type": "password"},
			Rules: &registry.Rules{MinLength: 8},
		},
		{Name: "newsletter", Label: "Newsletter", Attrs: map[string]string{"type": "checkbox"}},
		{Name: "plan", Label: "Plan", Attrs: map[string]string{"options": "free,pro"}},
	}
}

// SignupRegistry builds a registry from SignupSpecs.
func SignupRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New(SignupSpecs())
	if err != nil {
		t.Fatalf("signup registry: %v", err)
	}
	return reg
}

// MustForm initializes a form or fails the test.
func MustForm(t *testing.T, reg *registry.Registry, options ...form.Option) *form.Form {
	t.Helper()
	f, err := form.New(reg, options...)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return f
}

// Recorder captures change notifications for assertions.
type Recorder struct {
	mu    sync.Mutex
	calls []form.Notification
}

// Notify satisfies form.NotifyFunc.
func (r *Recorder) Notify(_ form.Query, n form.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, n)
}

// Calls returns a copy of the recorded notifications.
func (r *Recorder) Calls() []form.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]form.Notification(nil), r.calls...)
}

// Reset clears recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
