// Package parser extracts operations and request body schemas from OpenAPI 3
// documents with kin-openapi.
package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-formstate/pkg/openapi"
)

const orderExtension = "x-order"

// formMediaTypes lists request body media types in order of preference.
// Any other media type is used only when none of these is declared.
var formMediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

var (
	errNoPaths      = errors.New("openapi parser: document does not contain any paths")
	errNoOperations = errors.New("openapi parser: no operations extracted")
)

type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return &Parser{options: options}
}

// Operations loads doc and returns its operations. Operations that cannot be
// described (missing method or path) are left out.
func (p *Parser) Operations(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Operation, error) {
	spec, err := p.load(ctx, doc)
	if err != nil {
		return nil, err
	}

	operations := map[string]pkgopenapi.Operation{}
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for method, operation := range item.Operations() {
				if operation == nil {
					continue
				}
				if op, err := convertOperation(strings.ToUpper(method), path, operation); err == nil {
					operations[op.ID] = op
				}
			}
		}
	}

	if len(operations) == 0 && !p.options.AllowPartialDocuments {
		return nil, errNoOperations
	}
	return operations, nil
}

func (p *Parser) load(ctx context.Context, doc pkgopenapi.Document) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = p.options.ResolveReferences

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load %s: %w", doc.Location(), err)
	}
	if (spec.Paths == nil || spec.Paths.Len() == 0) && !p.options.AllowPartialDocuments {
		return nil, errNoPaths
	}
	if p.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate %s: %w", doc.Location(), err)
		}
	}
	return spec, nil
}

func convertOperation(method, path string, operation *openapi3.Operation) (pkgopenapi.Operation, error) {
	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	op, err := pkgopenapi.NewOperation(id, method, path, requestSchema(operation.RequestBody))
	if err != nil {
		return pkgopenapi.Operation{}, err
	}
	op.Summary = operation.Summary
	op.Description = operation.Description
	return op, nil
}

func requestSchema(body *openapi3.RequestBodyRef) pkgopenapi.Schema {
	switch {
	case body == nil:
		return pkgopenapi.Schema{}
	case body.Value == nil:
		return pkgopenapi.Schema{Ref: body.Ref}
	}

	content := body.Value.Content
	for _, mediaType := range formMediaTypes {
		if media := content.Get(mediaType); media != nil {
			return convertSchema(media.Schema, true)
		}
	}
	for _, media := range content {
		return convertSchema(media.Schema, true)
	}
	return pkgopenapi.Schema{}
}

// convertSchema copies the keywords a field spec needs. Properties are kept
// only for the top level; nested objects and arrays become composite fields.
func convertSchema(ref *openapi3.SchemaRef, topLevel bool) pkgopenapi.Schema {
	switch {
	case ref == nil:
		return pkgopenapi.Schema{}
	case ref.Value == nil:
		return pkgopenapi.Schema{Ref: ref.Ref}
	}

	src := ref.Value
	out := pkgopenapi.Schema{
		Ref:         ref.Ref,
		Type:        schemaType(src.Type),
		Format:      src.Format,
		Title:       src.Title,
		Description: src.Description,
		Default:     src.Default,
		Pattern:     src.Pattern,
		MinLength:   int(src.MinLength),
		Order:       order(src.Extensions),
	}
	if src.MaxLength != nil {
		out.MaxLength = int(*src.MaxLength)
	}
	if len(src.Required) > 0 {
		out.Required = append([]string(nil), src.Required...)
	}
	if len(src.Enum) > 0 {
		out.Enum = append([]any(nil), src.Enum...)
	}
	if topLevel && len(src.Properties) > 0 {
		out.Properties = make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, property := range src.Properties {
			out.Properties[name] = convertSchema(property, false)
		}
	}
	return out
}

// schemaType joins 3.1 type arrays with commas, e.g. "string,null".
func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	return strings.Join(types.Slice(), ",")
}

func order(extensions map[string]any) int {
	switch v := extensions[orderExtension].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
