package pongo

import (
	"io/fs"
	"strings"
)

// Option configures an Engine.
type Option func(*config)

type config struct {
	dir       string
	files     fs.FS
	extension string
	globals   map[string]any
}

// WithBaseDir resolves template names against a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.dir = strings.TrimSpace(dir)
	}
}

// WithFS resolves template names inside files. It is consulted after the
// base dir when both are set.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithExtension sets the suffix added to names passed without one. The
// default is ".tpl".
func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		cfg.extension = "." + strings.TrimPrefix(ext, ".")
	}
}

// WithGlobalData adds values readable from every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if cfg.globals == nil {
			cfg.globals = map[string]any{}
		}
		for key, value := range data {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}
