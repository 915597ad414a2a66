package tui

import "github.com/rs/zerolog"

// Theme styles the messages a Session prints between prompts.
type Theme struct {
	// ErrorPrefix precedes a field's error message. Defaults to "✗ ".
	ErrorPrefix string
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithLogger sets the logger used for per-field diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithMaxAttempts bounds how many times a failing field is re-prompted.
// Zero or negative values keep the default.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithTheme replaces the default Theme.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}
