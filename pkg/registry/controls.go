package registry

import (
	"sort"
	"strings"
	"sync"
)

// Matcher decides whether a control kind applies to the supplied spec.
type Matcher func(spec FieldSpec) bool

type controlRule struct {
	control  Control
	priority int
	match    Matcher
	order    int
}

// ControlResolver picks a control kind for specs that do not declare one.
// Higher priority wins; ties fall back to registration order. Specs no matcher
// accepts resolve to ControlText.
type ControlResolver struct {
	mu    sync.RWMutex
	rules []controlRule
}

// NewControlResolver constructs a resolver with the built-in matchers
// registered.
func NewControlResolver() *ControlResolver {
	res := &ControlResolver{}
	res.registerBuiltins()
	return res
}

// Register adds a matcher for control with the provided priority.
func (r *ControlResolver) Register(control Control, priority int, matcher Matcher) {
	if r == nil || matcher == nil || !control.Valid() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, controlRule{
		control:  control,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the control for spec. An explicitly declared control is
// returned as-is.
func (r *ControlResolver) Resolve(spec FieldSpec) Control {
	if spec.Control != "" {
		return spec.Control
	}
	if r == nil {
		return ControlText
	}
	r.mu.RLock()
	rules := append([]controlRule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(spec) {
			return entry.control
		}
	}
	return ControlText
}

func (r *ControlResolver) registerBuiltins() {
	r.Register(ControlComposite, 90, func(spec FieldSpec) bool {
		return strings.TrimSpace(spec.Attr("widget")) != ""
	})

	r.Register(ControlCheckbox, 80, func(spec FieldSpec) bool {
		return strings.EqualFold(strings.TrimSpace(spec.Attr("type")), "checkbox")
	})

	r.Register(ControlRadio, 70, func(spec FieldSpec) bool {
		return strings.EqualFold(strings.TrimSpace(spec.Attr("type")), "radio")
	})

	r.Register(ControlSelect, 60, func(spec FieldSpec) bool {
		return len(SplitOptions(spec.Attr("options"))) > 0
	})
}

// SplitOptions parses a comma separated `options` attribute.
func SplitOptions(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
