package validation

import (
	"fmt"
	"unicode/utf8"

	"github.com/goliatone/go-formstate/pkg/registry"
)

// Default messages used when a rule does not configure an override.
const (
	MessageRequired  = "Required."
	MessagePattern   = "Input is not valid."
	messageMinLength = "Must be at least %d characters."
)

// Values maps field names to non-empty values. An absent key means no value.
type Values map[string]string

// Errors maps violating field names to their message. The nil map is the
// "no errors" value; Evaluate never returns an empty non-nil map.
type Errors map[string]string

// Clone returns a copy of v.
func (v Values) Clone() Values {
	if v == nil {
		return Values{}
	}
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// Clone returns a copy of e, preserving nil.
func (e Errors) Clone() Errors {
	if e == nil {
		return nil
	}
	out := make(Errors, len(e))
	for key, value := range e {
		out[key] = value
	}
	return out
}

// Evaluate checks every registered field that declares rules against values.
func Evaluate(values Values, reg *registry.Registry) Errors {
	var errs Errors
	reg.Each(func(spec registry.FieldSpec) {
		message, failed := EvaluateField(spec, values[spec.Name])
		if !failed {
			return
		}
		if errs == nil {
			errs = make(Errors)
		}
		errs[spec.Name] = message
	})
	return errs
}

// EvaluateField checks a single value against spec's rules and returns the
// first failing rule's message.
func EvaluateField(spec registry.FieldSpec, value string) (string, bool) {
	rules := spec.Rules
	if rules == nil {
		return "", false
	}

	switch {
	case rules.Required && value == "":
		return messageOr(rules.RequiredMessage, MessageRequired), true
	case rules.Pattern != "" && value != "" && !spec.MatchPattern(value):
		return messageOr(rules.PatternMessage, MessagePattern), true
	case rules.MinLength > 0 && value != "" && utf8.RuneCountInString(value) < rules.MinLength:
		return fmt.Sprintf(messageMinLength, rules.MinLength), true
	}
	return "", false
}

func messageOr(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}
