package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate"
	"github.com/goliatone/go-formstate/internal/config"
	"github.com/goliatone/go-formstate/internal/logging"
	"github.com/goliatone/go-formstate/pkg/form"
	pkgopenapi "github.com/goliatone/go-formstate/pkg/openapi"
	"github.com/goliatone/go-formstate/pkg/registry"
)

var errValidationFailed = errors.New("validation failed")

type globalFlags struct {
	logLevel  string
	logFormat string
	envFile   string
}

// sourceFlags selects where the registry comes from.
type sourceFlags struct {
	registry  string
	openapi   string
	operation string
	values    string
}

type app struct {
	flags  globalFlags
	cfg    config.Config
	logger zerolog.Logger
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.flags.envFile)
	if err != nil {
		return err
	}
	if a.flags.logLevel != "" {
		cfg.LogLevel = a.flags.logLevel
	}
	if a.flags.logFormat != "" {
		cfg.LogFormat = a.flags.logFormat
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (s *sourceFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.registry, "registry", "", "registry document (YAML or JSON)")
	cmd.Flags().StringVar(&s.openapi, "openapi", "", "OpenAPI document path or URL")
	cmd.Flags().StringVar(&s.operation, "operation", "", "operationId whose request body defines the fields")
	cmd.Flags().StringVar(&s.values, "values", "", "flat YAML or JSON map of field values")
	cmd.MarkFlagsMutuallyExclusive("registry", "openapi")
	cmd.MarkFlagsRequiredTogether("openapi", "operation")
}

// definition loads the registry selected by the flags.
func (a *app) definition(ctx context.Context, s sourceFlags) (registry.Definition, error) {
	switch {
	case s.registry != "":
		a.logger.Debug().Str("path", s.registry).Msg("loading registry")
		return registry.LoadFile(s.registry)
	case s.openapi != "":
		src, err := pkgopenapi.ParseSource(s.openapi)
		if err != nil {
			return registry.Definition{}, err
		}
		a.logger.Debug().Str("source", s.openapi).Str("operation", s.operation).Msg("loading openapi operation")
		return formstate.LoadOpenAPI(ctx, src, s.operation, pkgopenapi.WithHTTPFallback(a.cfg.HTTPTimeout))
	default:
		return registry.Definition{}, errors.New("one of --registry or --openapi is required")
	}
}

// newForm builds a form from def, with values from --values layered over the
// definition defaults.
func (a *app) newForm(def registry.Definition, s sourceFlags, options ...form.Option) (*form.Form, error) {
	defaults := make(map[string]string, len(def.Defaults))
	for key, value := range def.Defaults {
		defaults[key] = value
	}
	if s.values != "" {
		values, err := registry.LoadValues(s.values)
		if err != nil {
			return nil, err
		}
		for key, value := range values {
			if !def.Registry.Has(key) {
				a.logger.Warn().Str("field", key).Msg("ignoring value for unregistered field")
				continue
			}
			defaults[key] = value
		}
	}

	opts := append([]form.Option{form.WithDefaults(defaults)}, options...)
	return form.New(def.Registry, opts...)
}

func writeStructured(w io.Writer, format string, value any) error {
	switch strings.ToLower(format) {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	}
}
