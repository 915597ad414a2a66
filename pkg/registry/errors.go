package registry

import "errors"

var (
	// ErrEmptyName is returned when a field spec has no name.
	ErrEmptyName = errors.New("registry: field name is required")
	// ErrDuplicateField is returned when two specs share a name.
	ErrDuplicateField = errors.New("registry: duplicate field")
	// ErrInvalidPattern wraps regular expression compile failures.
	ErrInvalidPattern = errors.New("registry: invalid pattern")
	// ErrInvalidControl is returned for control kinds outside the known set.
	ErrInvalidControl = errors.New("registry: invalid control")
)
