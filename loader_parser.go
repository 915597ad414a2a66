package formstate

import (
	"context"

	"github.com/goliatone/go-formstate/internal/openapi/loader"
	"github.com/goliatone/go-formstate/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-formstate/pkg/openapi"
	"github.com/goliatone/go-formstate/pkg/registry"
)

// NewLoader returns the default OpenAPI document loader. HTTP sources need
// WithHTTPClient or WithHTTPFallback.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	return loader.New(pkgopenapi.NewLoaderOptions(options...))
}

// NewParser returns the kin-openapi backed parser.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return parser.New(pkgopenapi.NewParserOptions(options...))
}

// LoadOpenAPI reads the document at src and turns the request body of
// operationID into a registry definition.
func LoadOpenAPI(ctx context.Context, src pkgopenapi.Source, operationID string, options ...pkgopenapi.LoaderOption) (registry.Definition, error) {
	return pkgopenapi.LoadDefinition(ctx, NewLoader(options...), NewParser(), src, operationID)
}
