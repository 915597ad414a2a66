// Package validation evaluates registry rules against a set of field values.
//
// Evaluate is pure: it reads the values and the registry and returns the
// violating fields keyed by name, or nil when nothing is violated. Rules are
// checked per field in a fixed order (required, pattern, minLength) and
// evaluation stops at the first failure for that field. maxLength is not
// enforced here; it is a render constraint passed through to adapters.
package validation
