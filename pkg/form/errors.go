package form

import "errors"

var (
	// ErrNilRegistry is returned when New is called without a registry.
	ErrNilRegistry = errors.New("form: registry is required")
	// ErrUnknownField is returned when an event targets a name that is not
	// registered.
	ErrUnknownField = errors.New("form: unknown field")
)
