package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/registry"
)

// FieldView is the per-field projection handed to renderers.
type FieldView struct {
	Name    string            `json:"name"`
	Label   string            `json:"label"`
	Control registry.Control  `json:"control"`
	Value   string            `json:"value"`
	Error   string            `json:"error,omitempty"`
	Checked bool              `json:"checked,omitempty"`
	Options []string          `json:"options,omitempty"`
	Status  form.Status       `json:"status"`
	Attrs   map[string]string `json:"attrs,omitempty"`
}

// View is a render pass over a form.
type View struct {
	Action         string        `json:"action,omitempty"`
	Method         string        `json:"method,omitempty"`
	Fields         []FieldView   `json:"fields"`
	Hidden         []HiddenField `json:"hidden,omitempty"`
	Dirty          bool          `json:"dirty"`
	HasErrors      bool          `json:"hasErrors"`
	SubmitDisabled bool          `json:"submitDisabled"`
}

// ViewOption customises Build.
type ViewOption func(*viewConfig)

type viewConfig struct {
	action     string
	method     string
	hidden     hiddenSet
	subset     map[string]struct{}
	showErrors bool
}

// WithAction sets the form action and method.
func WithAction(action, method string) ViewOption {
	return func(cfg *viewConfig) {
		cfg.action = strings.TrimSpace(action)
		cfg.method = strings.ToUpper(strings.TrimSpace(method))
	}
}

// WithHidden adds hidden fields to the view. Blank names are ignored and a
// later field replaces an earlier one with the same name.
func WithHidden(fields ...HiddenField) ViewOption {
	return func(cfg *viewConfig) {
		cfg.hidden = cfg.hidden.with(fields...)
	}
}

// WithFieldSubset limits the view to the named fields, keeping registry order.
// An empty subset renders every field.
func WithFieldSubset(names ...string) ViewOption {
	return func(cfg *viewConfig) {
		for _, name := range names {
			trimmed := strings.TrimSpace(name)
			if trimmed == "" {
				continue
			}
			if cfg.subset == nil {
				cfg.subset = make(map[string]struct{})
			}
			cfg.subset[trimmed] = struct{}{}
		}
	}
}

// WithAllErrors shows errors regardless of touched status, as after a failed
// submit attempt.
func WithAllErrors() ViewOption {
	return func(cfg *viewConfig) {
		cfg.showErrors = true
	}
}

// Build projects the form's committed state into a View.
func Build(f *form.Form, options ...ViewOption) View {
	cfg := viewConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if f == nil {
		return View{Action: cfg.action, Method: cfg.method, Hidden: cfg.hidden.list(nil)}
	}

	state := f.Snapshot()
	reg := f.Registry()

	view := View{
		Action:         cfg.action,
		Method:         cfg.method,
		Fields:         make([]FieldView, 0, reg.Len()),
		Hidden:         cfg.hidden.list(reg.Has),
		Dirty:          f.IsDirty(),
		HasErrors:      state.Errors != nil,
		SubmitDisabled: state.Errors != nil,
	}

	reg.Each(func(spec registry.FieldSpec) {
		if cfg.subset != nil {
			if _, ok := cfg.subset[spec.Name]; !ok {
				return
			}
		}
		view.Fields = append(view.Fields, buildField(spec, state, cfg.showErrors))
	})
	return view
}

func buildField(spec registry.FieldSpec, state form.State, showErrors bool) FieldView {
	status := state.Status(spec.Name)
	value := state.Values[spec.Name]

	field := FieldView{
		Name:    spec.Name,
		Label:   spec.DisplayLabel(),
		Control: spec.Control,
		Value:   value,
		Status:  status,
		Attrs:   mergeAttrs(spec),
	}
	if status == form.Touched || showErrors {
		field.Error = state.Errors[spec.Name]
	}

	switch spec.Control {
	case registry.ControlCheckbox:
		field.Checked = value != ""
	case registry.ControlRadio, registry.ControlSelect:
		field.Options = registry.SplitOptions(spec.Attr("options"))
	}
	return field
}

func mergeAttrs(spec registry.FieldSpec) map[string]string {
	attrs := make(map[string]string, len(spec.Attrs)+2)
	for key, value := range spec.Attrs {
		attrs[key] = value
	}
	if spec.HasRules() {
		if spec.Rules.MaxLength > 0 {
			attrs["maxlength"] = strconv.Itoa(spec.Rules.MaxLength)
		}
		if spec.Rules.Required {
			attrs["required"] = "required"
		}
	}
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}
