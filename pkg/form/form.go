package form

import (
	"fmt"

	"github.com/goliatone/go-formstate/pkg/registry"
)

// Query is the read side exposed to owners and renderer adapters.
type Query interface {
	IsDirty() bool
	Errors(touchedOnly bool) Errors
	Values() Values
	Revalidate()
}

// ChangeEvent carries a value change for a registered field. Checked is only
// read for checkbox controls; Value is their associated value when set.
type ChangeEvent struct {
	Field   string
	Value   string
	Checked bool
}

// Form owns the state of one form instance.
type Form struct {
	registry *registry.Registry
	defaults Values
	state    State
	onChange NotifyFunc
	onSubmit SubmitFunc
}

var _ Query = (*Form)(nil)

// New initializes a form from the registry and options. The change notifier,
// when configured, fires once with CauseInit before New returns so the owner
// can keep a handle before any event occurs.
func New(reg *registry.Registry, options ...Option) (*Form, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}

	f := &Form{registry: reg}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.defaults == nil {
		f.defaults = Values{}
	}

	f.state = initialState(f.defaults, reg)
	f.notify(Notification{Cause: CauseInit})
	return f, nil
}

// Registry returns the registry the form was built with.
func (f *Form) Registry() *registry.Registry {
	return f.registry
}

// Defaults returns a copy of the values supplied at construction.
func (f *Form) Defaults() Values {
	return f.defaults.Clone()
}

// Change applies a value change to a registered field.
func (f *Form) Change(ev ChangeEvent) error {
	spec, ok := f.registry.Spec(ev.Field)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, ev.Field)
	}

	f.commit(f.state.withValue(spec.Name, candidateValue(spec, ev), f.registry),
		Notification{Cause: CauseChange, Field: spec.Name})
	return nil
}

// Blur marks a field touched when it was already edited, or when its control
// is composite and cannot report edits. Blurring a pristine native field, or
// one that is already touched, is a no-op and does not notify.
func (f *Form) Blur(name string) error {
	spec, ok := f.registry.Spec(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	status := f.state.Status(name)
	if status == Touched {
		return nil
	}
	if status == Untouched && spec.Control.Native() {
		return nil
	}

	f.commit(f.state.withStatus(name, Touched), Notification{Cause: CauseBlur, Field: name})
	return nil
}

// Revalidate recomputes errors from the current values.
func (f *Form) Revalidate() {
	f.commit(f.state.revalidated(f.registry), Notification{Cause: CauseRevalidate})
}

// Reset discards all edits and re-initializes from the construction defaults.
func (f *Form) Reset() {
	f.commit(initialState(f.defaults, f.registry), Notification{Cause: CauseReset})
}

// Submit invokes the submit callback with the current values and dirty flag.
// It does not gate on errors; adapters decide whether to allow submission.
func (f *Form) Submit() {
	if f.onSubmit == nil {
		return
	}
	f.onSubmit(f.Values(), f.IsDirty())
}

// IsDirty reports whether any value currently present differs from its
// default. Fields cleared back to empty are absent from the values and are
// not considered.
func (f *Form) IsDirty() bool {
	for name, value := range f.state.Values {
		if f.defaults[name] != value {
			return true
		}
	}
	return false
}

// Errors returns the current errors. With touchedOnly, only errors of fields
// whose status is Touched are returned. The result is nil when empty.
func (f *Form) Errors(touchedOnly bool) Errors {
	if !touchedOnly || f.state.Errors == nil {
		return f.state.Errors.Clone()
	}

	var out Errors
	for name, status := range f.state.Touched {
		if status != Touched {
			continue
		}
		message, ok := f.state.Errors[name]
		if !ok {
			continue
		}
		if out == nil {
			out = make(Errors)
		}
		out[name] = message
	}
	return out
}

// Values returns a copy of the current values.
func (f *Form) Values() Values {
	return f.state.Values.Clone()
}

// Status returns the touched status of name.
func (f *Form) Status(name string) Status {
	return f.state.Status(name)
}

// Snapshot returns a deep copy of the committed state.
func (f *Form) Snapshot() State {
	return f.state.clone()
}

func (f *Form) commit(next State, n Notification) {
	f.state = next
	f.notify(n)
}

func (f *Form) notify(n Notification) {
	if f.onChange == nil {
		return
	}
	f.onChange(f, n)
}

func candidateValue(spec registry.FieldSpec, ev ChangeEvent) string {
	if spec.Control != registry.ControlCheckbox {
		return ev.Value
	}
	if !ev.Checked {
		return ""
	}
	if ev.Value != "" {
		return ev.Value
	}
	if value := spec.Attr("value"); value != "" {
		return value
	}
	return "true"
}
