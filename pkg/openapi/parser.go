package openapi

import "context"

// Parser extracts the operations of a Document, keyed by operationId.
// Operations without an id are keyed "method:path" with a lowercase method.
type Parser interface {
	Operations(ctx context.Context, doc Document) (map[string]Operation, error)
}

type ParserOptions struct {
	// ResolveReferences validates the document and resolves $ref pointers,
	// including external ones. On by default.
	ResolveReferences bool

	// AllowPartialDocuments accepts documents that declare no paths.
	AllowPartialDocuments bool
}

type ParserOption func(*ParserOptions)

func WithReferenceResolution(enabled bool) ParserOption {
	return func(opts *ParserOptions) { opts.ResolveReferences = enabled }
}

func WithPartialDocuments(enabled bool) ParserOption {
	return func(opts *ParserOptions) { opts.AllowPartialDocuments = enabled }
}

// NewParserOptions returns the defaults with options applied.
func NewParserOptions(options ...ParserOption) ParserOptions {
	opts := ParserOptions{ResolveReferences: true}
	for _, apply := range options {
		if apply != nil {
			apply(&opts)
		}
	}
	return opts
}
