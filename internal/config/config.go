// Package config loads CLI settings from the environment and optional .env
// files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig is returned when a setting holds an unsupported value.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds settings shared by every command. Flags override these values.
type Config struct {
	LogLevel    string        `env:"FORMSTATE_LOG_LEVEL" envDefault:"info"`
	LogFormat   string        `env:"FORMSTATE_LOG_FORMAT" envDefault:"console"`
	Output      string        `env:"FORMSTATE_OUTPUT" envDefault:"json"`
	Theme       string        `env:"FORMSTATE_THEME"`
	ThemeDir    string        `env:"FORMSTATE_THEME_DIR"`
	HTTPTimeout time.Duration `env:"FORMSTATE_HTTP_TIMEOUT" envDefault:"10s"`
}

// Load reads envFiles (default ".env") and the process environment into a
// Config. Process variables win over file values; missing files are ignored.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	environment := make(map[string]string)
	for _, file := range envFiles {
		values, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("config: read %s: %w", file, err)
		}
		for key, value := range values {
			environment[key] = value
		}
	}
	for key, value := range env.ToMap(os.Environ()) {
		environment[key] = value
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.LogFormat)
	}
	switch strings.ToLower(c.Output) {
	case "json", "yaml":
	default:
		return fmt.Errorf("%w: output %q", ErrInvalidConfig, c.Output)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("%w: negative http timeout", ErrInvalidConfig)
	}
	return nil
}

// ThemeSelection splits Theme into a theme name and variant ("name:variant").
func (c Config) ThemeSelection() (name, variant string) {
	name, variant, _ = strings.Cut(strings.TrimSpace(c.Theme), ":")
	return strings.TrimSpace(name), strings.TrimSpace(variant)
}
