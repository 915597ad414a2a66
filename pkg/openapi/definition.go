package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/registry"
)

var (
	// ErrOperationNotFound is returned when the document has no operation with
	// the requested id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoFields is returned when the operation's request body declares no
	// properties.
	ErrNoFields = errors.New("openapi: request body has no properties")
)

var formatInputTypes = map[string]string{
	"email":     "email",
	"password":  "password",
	"date":      "date",
	"date-time": "datetime-local",
	"time":      "time",
	"uri":       "url",
	"url":       "url",
}

// LoadDefinition loads the document at src and builds a registry definition
// from the request body of operationID.
func LoadDefinition(ctx context.Context, loader Loader, parser Parser, src Source, operationID string, options ...registry.Option) (registry.Definition, error) {
	if loader == nil || parser == nil {
		return registry.Definition{}, errors.New("openapi: loader and parser are required")
	}

	doc, err := loader.Load(ctx, src)
	if err != nil {
		return registry.Definition{}, fmt.Errorf("openapi: load %s: %w", describeSource(src), err)
	}
	operations, err := parser.Operations(ctx, doc)
	if err != nil {
		return registry.Definition{}, err
	}

	op, ok := operations[operationID]
	if !ok {
		return registry.Definition{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	def, err := BuildDefinition(op, options...)
	if err != nil {
		return registry.Definition{}, err
	}
	def.Source = doc.Location() + "#" + op.ID
	return def, nil
}

// BuildDefinition maps the top-level request body properties of op to field
// specs. Properties are ordered by their x-order extension, then by name.
func BuildDefinition(op Operation, options ...registry.Option) (registry.Definition, error) {
	body := op.RequestBody
	if len(body.Properties) == 0 {
		return registry.Definition{}, fmt.Errorf("%w: %q", ErrNoFields, op.ID)
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		oi, oj := orderKey(body.Properties[names[i]]), orderKey(body.Properties[names[j]])
		if oi != oj {
			return oi < oj
		}
		return names[i] < names[j]
	})

	specs := make([]registry.FieldSpec, 0, len(names))
	defaults := make(map[string]string)
	for _, name := range names {
		prop := body.Properties[name]
		specs = append(specs, fieldSpec(name, prop, required[name]))
		if value := defaultValue(prop); value != "" {
			defaults[name] = value
		}
	}

	reg, err := registry.New(specs, options...)
	if err != nil {
		return registry.Definition{}, fmt.Errorf("openapi: operation %q: %w", op.ID, err)
	}
	if len(defaults) == 0 {
		defaults = nil
	}
	return registry.Definition{Registry: reg, Defaults: defaults, Source: op.ID}, nil
}

func fieldSpec(name string, prop Schema, required bool) registry.FieldSpec {
	spec := registry.FieldSpec{
		Name:  name,
		Label: strings.TrimSpace(prop.Title),
		Attrs: map[string]string{},
	}
	if desc := strings.TrimSpace(prop.Description); desc != "" {
		spec.Attrs["title"] = desc
	}

	switch {
	case prop.Type == "boolean":
		spec.Control = registry.ControlCheckbox
		spec.Attrs["type"] = "checkbox"
	case len(prop.Enum) > 0:
		spec.Control = registry.ControlSelect
		spec.Attrs["options"] = joinEnum(prop.Enum)
	case prop.Type == "object" || prop.Type == "array":
		spec.Control = registry.ControlComposite
		spec.Attrs["widget"] = prop.Type
	default:
		spec.Control = registry.ControlText
		if kind, ok := formatInputTypes[prop.Format]; ok {
			spec.Attrs["type"] = kind
		} else if prop.Type == "integer" || prop.Type == "number" {
			spec.Attrs["type"] = "number"
		}
	}

	rules := registry.Rules{
		Required:  required,
		Pattern:   prop.Pattern,
		MinLength: prop.MinLength,
		MaxLength: prop.MaxLength,
	}
	if rules != (registry.Rules{}) {
		spec.Rules = &rules
	}
	if len(spec.Attrs) == 0 {
		spec.Attrs = nil
	}
	return spec
}

func orderKey(prop Schema) int {
	if prop.Order <= 0 {
		return int(^uint(0) >> 1)
	}
	return prop.Order
}

func joinEnum(values []any) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		if value == nil {
			continue
		}
		parts = append(parts, fmt.Sprint(value))
	}
	return strings.Join(parts, ",")
}

func defaultValue(prop Schema) string {
	switch v := prop.Default.(type) {
	case nil:
		return ""
	case bool:
		if v {
			return "true"
		}
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	default:
		if prop.Type == "object" || prop.Type == "array" {
			return ""
		}
		return fmt.Sprint(v)
	}
}
