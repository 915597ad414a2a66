package form

import (
	"github.com/goliatone/go-formstate/pkg/registry"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Values maps field names to non-empty values.
type Values = validation.Values

// Errors maps violating field names to messages; nil means no errors.
type Errors = validation.Errors

// State is one committed snapshot of a form. The engine never mutates a State
// after committing it; transitions build a replacement.
type State struct {
	Values  Values            `json:"values"`
	Errors  Errors            `json:"errors"`
	Touched map[string]Status `json:"touched"`
}

// Status returns the touched status of name.
func (s State) Status(name string) Status {
	return s.Touched[name]
}

func (s State) clone() State {
	return State{
		Values:  s.Values.Clone(),
		Errors:  s.Errors.Clone(),
		Touched: cloneTouched(s.Touched),
	}
}

func initialState(defaults Values, reg *registry.Registry) State {
	values := make(Values, len(defaults))
	touched := make(map[string]Status)
	for name, value := range defaults {
		if value == "" {
			continue
		}
		values[name] = value
		if reg.Has(name) {
			touched[name] = Touched
		}
	}
	return State{
		Values:  values,
		Errors:  validation.Evaluate(values, reg),
		Touched: touched,
	}
}

// withValue returns the state after name received value.
func (s State) withValue(name, value string, reg *registry.Registry) State {
	values := s.Values.Clone()
	if value == "" {
		delete(values, name)
	} else {
		values[name] = value
	}

	touched := cloneTouched(s.Touched)
	touched[name] = touched[name].advance()

	return State{
		Values:  values,
		Errors:  validation.Evaluate(values, reg),
		Touched: touched,
	}
}

// withStatus returns the state with name's status replaced.
func (s State) withStatus(name string, status Status) State {
	touched := cloneTouched(s.Touched)
	touched[name] = status
	return State{
		Values:  s.Values,
		Errors:  s.Errors,
		Touched: touched,
	}
}

// revalidated returns the state with errors recomputed from its values.
func (s State) revalidated(reg *registry.Registry) State {
	return State{
		Values:  s.Values,
		Errors:  validation.Evaluate(s.Values, reg),
		Touched: s.Touched,
	}
}

func cloneTouched(in map[string]Status) map[string]Status {
	out := make(map[string]Status, len(in)+1)
	for key, value := range in {
		out[key] = value
	}
	return out
}
