package openapi

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader reads the document a Source points at.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions select the strategies a Loader may use. URL sources are
// rejected unless HTTPClient is set or AllowHTTPFallback is true.
type LoaderOptions struct {
	FileSystem        fs.FS
	HTTPClient        *http.Client
	AllowHTTPFallback bool
	// RequestTimeout bounds each remote fetch. Zero means no limit.
	RequestTimeout time.Duration
}

type LoaderOption func(*LoaderOptions)

// WithFileSystem serves SourceFromFS sources from files.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) { opts.FileSystem = files }
}

func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) { opts.HTTPClient = client }
}

// WithHTTPFallback allows URL sources through a default client with the
// given timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	var opts LoaderOptions
	for _, apply := range options {
		if apply != nil {
			apply(&opts)
		}
	}
	return opts
}
