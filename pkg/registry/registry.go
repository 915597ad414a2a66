package registry

import (
	"fmt"
	"strings"
)

// Option configures registry construction.
type Option func(*config)

type config struct {
	controls *ControlResolver
}

// WithControlResolver overrides the resolver used for specs that do not
// declare a control kind.
func WithControlResolver(resolver *ControlResolver) Option {
	return func(cfg *config) {
		if resolver != nil {
			cfg.controls = resolver
		}
	}
}

// Registry is an immutable, ordered mapping of field name to FieldSpec.
type Registry struct {
	order []string
	specs map[string]FieldSpec
}

// New validates the specs, resolves control kinds, compiles patterns, and
// returns the registry. Specs are copied; later mutation by the caller has no
// effect.
func New(specs []FieldSpec, options ...Option) (*Registry, error) {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.controls == nil {
		cfg.controls = NewControlResolver()
	}

	reg := &Registry{
		order: make([]string, 0, len(specs)),
		specs: make(map[string]FieldSpec, len(specs)),
	}
	for idx, raw := range specs {
		spec := raw.clone()
		spec.Name = strings.TrimSpace(spec.Name)
		if spec.Name == "" {
			return nil, fmt.Errorf("%w (index %d)", ErrEmptyName, idx)
		}
		if _, exists := reg.specs[spec.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, spec.Name)
		}
		spec.Control = cfg.controls.Resolve(spec)
		if !spec.Control.Valid() {
			return nil, fmt.Errorf("%w: field %q: %q", ErrInvalidControl, spec.Name, spec.Control)
		}
		if err := spec.compile(); err != nil {
			return nil, err
		}
		reg.order = append(reg.order, spec.Name)
		reg.specs[spec.Name] = spec
	}
	return reg, nil
}

// MustNew panics on construction failure. Useful for init-time wiring.
func MustNew(specs []FieldSpec, options ...Option) *Registry {
	reg, err := New(specs, options...)
	if err != nil {
		panic(err)
	}
	return reg
}

// Spec returns the spec registered under name.
func (r *Registry) Spec(name string) (FieldSpec, bool) {
	if r == nil {
		return FieldSpec{}, false
	}
	spec, ok := r.specs[name]
	if !ok {
		return FieldSpec{}, false
	}
	return spec.clone(), true
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.specs[name]
	return ok
}

// Names returns the registered names in declaration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.order...)
}

// Len reports the number of registered fields.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Each calls fn for every spec in declaration order. The spec passed to fn
// shares the registry's compiled pattern but its maps are copies.
func (r *Registry) Each(fn func(FieldSpec)) {
	if r == nil || fn == nil {
		return
	}
	for _, name := range r.order {
		fn(r.specs[name].clone())
	}
}
