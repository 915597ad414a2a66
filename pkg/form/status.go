package form

import "fmt"

// Status is a field's interaction status.
type Status uint8

const (
	// Untouched is the zero value; the field has not been edited.
	Untouched Status = iota
	// Modified means the field was edited but has not lost focus since.
	Modified
	// Touched means the field lost focus after an edit, or was seeded from a
	// non-empty default. It is absorbing.
	Touched
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Untouched:
		return "untouched"
	case Modified:
		return "modified"
	case Touched:
		return "touched"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "untouched":
		*s = Untouched
	case "modified":
		*s = Modified
	case "touched":
		*s = Touched
	default:
		return fmt.Errorf("form: unknown status %q", text)
	}
	return nil
}

// advance returns the status after an edit.
func (s Status) advance() Status {
	if s != Untouched {
		return s
	}
	return Modified
}
