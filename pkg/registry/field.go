package registry

import (
	"fmt"
	"regexp"
	"strings"
)

// Control identifies how a field's input is read and how blur is interpreted.
type Control string

const (
	// ControlText reads the raw input text.
	ControlText Control = "text"
	// ControlCheckbox reads the checked flag; unchecked clears the value.
	ControlCheckbox Control = "checkbox"
	// ControlRadio reads the selected option value.
	ControlRadio Control = "radio"
	// ControlSelect reads the selected option value.
	ControlSelect Control = "select"
	// ControlComposite marks an opaque wrapped widget with no native tag. Such
	// widgets cannot report interim edits, so blur alone marks them touched.
	ControlComposite Control = "composite"
)

// Valid reports whether c is one of the known control kinds.
func (c Control) Valid() bool {
	switch c {
	case ControlText, ControlCheckbox, ControlRadio, ControlSelect, ControlComposite:
		return true
	default:
		return false
	}
}

// Native reports whether the control has a native identifiable tag.
func (c Control) Native() bool {
	return c != ControlComposite
}

// Rules declares the constraints evaluated against a field value. Zero values
// mean the rule is not configured.
type Rules struct {
	Required        bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Pattern         string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MinLength       int    `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength       int    `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	RequiredMessage string `json:"requiredMessage,omitempty" yaml:"requiredMessage,omitempty"`
	PatternMessage  string `json:"patternMessage,omitempty" yaml:"patternMessage,omitempty"`
}

// FieldSpec is the registry entry for a single field.
type FieldSpec struct {
	Name    string            `json:"name" yaml:"name"`
	Label   string            `json:"label,omitempty" yaml:"label,omitempty"`
	Control Control           `json:"control,omitempty" yaml:"control,omitempty"`
	Attrs   map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Rules   *Rules            `json:"rules,omitempty" yaml:"rules,omitempty"`

	pattern *regexp.Regexp
}

// HasRules reports whether the spec declares a rule set.
func (s FieldSpec) HasRules() bool {
	return s.Rules != nil
}

// MatchPattern evaluates the compiled pattern against value. Specs without a
// pattern match everything.
func (s FieldSpec) MatchPattern(value string) bool {
	if s.pattern == nil {
		return true
	}
	return s.pattern.MatchString(value)
}

// Attr returns a passthrough attribute value.
func (s FieldSpec) Attr(key string) string {
	if s.Attrs == nil {
		return ""
	}
	return s.Attrs[key]
}

// DisplayLabel returns the label, falling back to the field name.
func (s FieldSpec) DisplayLabel() string {
	if label := strings.TrimSpace(s.Label); label != "" {
		return label
	}
	return s.Name
}

func (s FieldSpec) clone() FieldSpec {
	out := s
	if s.Attrs != nil {
		out.Attrs = make(map[string]string, len(s.Attrs))
		for k, v := range s.Attrs {
			out.Attrs[k] = v
		}
	}
	if s.Rules != nil {
		rules := *s.Rules
		out.Rules = &rules
	}
	return out
}

func (s *FieldSpec) compile() error {
	if s.Rules == nil || s.Rules.Pattern == "" {
		return nil
	}
	re, err := regexp.Compile(s.Rules.Pattern)
	if err != nil {
		return fmt.Errorf("%w: field %q: %v", ErrInvalidPattern, s.Name, err)
	}
	s.pattern = re
	return nil
}
