package form

// Cause identifies the transition that produced a notification.
type Cause string

const (
	CauseInit       Cause = "init"
	CauseChange     Cause = "change"
	CauseBlur       Cause = "blur"
	CauseRevalidate Cause = "revalidate"
	CauseReset      Cause = "reset"
)

// Notification describes a committed transition. Field carries the name of
// the field whose event caused it and is empty for form-wide transitions
// (init, revalidate, reset).
type Notification struct {
	Cause Cause
	Field string
}

// NotifyFunc receives the query handle after every committed transition.
type NotifyFunc func(q Query, n Notification)

// SubmitFunc receives the current values and dirty flag on submit.
type SubmitFunc func(values Values, dirty bool)

// Option configures a Form.
type Option func(*Form)

// WithDefaults seeds the form's initial values. Dirty checks compare against
// these values for the lifetime of the form.
func WithDefaults(defaults map[string]string) Option {
	return func(f *Form) {
		if len(defaults) == 0 {
			return
		}
		f.defaults = Values(defaults).Clone()
	}
}

// WithOnChange registers the change notifier.
func WithOnChange(fn NotifyFunc) Option {
	return func(f *Form) {
		f.onChange = fn
	}
}

// WithOnSubmit registers the submit callback.
func WithOnSubmit(fn SubmitFunc) Option {
	return func(f *Form) {
		f.onSubmit = fn
	}
}
