// Package loader reads OpenAPI documents from disk, an fs.FS, or HTTP.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	pkgopenapi "github.com/goliatone/go-formstate/pkg/openapi"
)

var errHTTPDisabled = errors.New("openapi loader: http support disabled")

// Loader dispatches each Source to the strategy registered for its kind.
type Loader struct {
	files   fs.FS
	client  *http.Client
	timeout time.Duration
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New builds a Loader. HTTP sources are rejected unless options carry a client
// or enable the fallback client.
func New(options pkgopenapi.LoaderOptions) pkgopenapi.Loader {
	l := &Loader{files: options.FileSystem, timeout: options.RequestTimeout}
	switch {
	case options.HTTPClient != nil:
		client := *options.HTTPClient
		if client.Timeout == 0 {
			client.Timeout = l.timeout
		}
		l.client = &client
	case options.AllowHTTPFallback:
		l.client = &http.Client{Timeout: l.timeout}
	}
	return l
}

// Load reads src and wraps the payload in a Document.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, errors.New("openapi loader: source is nil")
	}

	data, err := l.read(ctx, src)
	if err != nil {
		return pkgopenapi.Document{}, err
	}
	return pkgopenapi.NewDocument(src, data)
}

func (l *Loader) read(ctx context.Context, src pkgopenapi.Source) ([]byte, error) {
	switch src.Kind() {
	case pkgopenapi.SourceKindFile:
		return loadFile(ctx, src.Location())
	case pkgopenapi.SourceKindFS:
		return loadFromFS(ctx, l.files, src.Location())
	case pkgopenapi.SourceKindURL:
		if l.client == nil {
			return nil, errHTTPDisabled
		}
		return loadHTTP(ctx, l.client, src.Location(), l.timeout)
	default:
		return nil, fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind())
	}
}
