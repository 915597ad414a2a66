package openapi

import (
	"errors"
	"fmt"
)

// ErrInvalidOperation is returned by NewOperation when a required attribute
// is missing.
var ErrInvalidOperation = errors.New("openapi: invalid operation")

// Document is a raw OpenAPI payload tagged with its Source.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument copies raw into a Document. Both arguments are required.
func NewDocument(src Source, raw []byte) (Document, error) {
	switch {
	case src == nil:
		return Document{}, errors.New("openapi: document source is required")
	case len(raw) == 0:
		return Document{}, fmt.Errorf("openapi: document %s is empty", describeSource(src))
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// MustNewDocument is NewDocument for fixtures.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

func (d Document) Source() Source { return d.source }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte { return append([]byte(nil), d.raw...) }

// Location is the source location, or "" for the zero Document.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Operation is an API operation reduced to what a form needs: its identity
// and the schema of its request body.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	RequestBody Schema
}

// NewOperation builds an Operation. id, method and path are required.
func NewOperation(id, method, path string, request Schema) (Operation, error) {
	for attr, value := range map[string]string{"id": id, "method": method, "path": path} {
		if value == "" {
			return Operation{}, fmt.Errorf("%w: %s is required", ErrInvalidOperation, attr)
		}
	}
	return Operation{ID: id, Method: method, Path: path, RequestBody: request}, nil
}

// MustNewOperation is NewOperation for fixtures.
func MustNewOperation(id, method, path string, request Schema) Operation {
	op, err := NewOperation(id, method, path, request)
	if err != nil {
		panic(err)
	}
	return op
}

// Schema holds the JSON schema keywords that map onto a field spec. Only the
// request body and its direct properties are populated; nested levels keep
// their type and drop their properties.
type Schema struct {
	Ref         string
	Type        string
	Format      string
	Title       string
	Description string
	Required    []string
	Properties  map[string]Schema
	Enum        []any
	Default     any
	Pattern     string
	MinLength   int
	MaxLength   int
	// Order is the x-order extension, zero when absent.
	Order int
}
