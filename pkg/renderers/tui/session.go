package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/registry"
)

const (
	defaultMaxAttempts = 5
	noneOption         = "(none)"
)

// Session fills a form from terminal prompts. Each answer is routed through
// the form as a change followed by a blur, so the terminal sees exactly the
// error gating an HTML adapter would.
type Session struct {
	driver      PromptDriver
	logger      zerolog.Logger
	theme       Theme
	maxAttempts int
}

// New constructs a Session. Without WithPromptDriver it prompts through survey.
func New(options ...Option) *Session {
	s := &Session{
		logger:      zerolog.Nop(),
		maxAttempts: defaultMaxAttempts,
		theme:       Theme{ErrorPrefix: "✗ "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver()
	}
	return s
}

// Run prompts every field in registry order, then submits the form and
// returns the submitted values.
func (s *Session) Run(ctx context.Context, f *form.Form) (form.Values, error) {
	if f == nil {
		return nil, ErrNilForm
	}

	for _, name := range f.Registry().Names() {
		spec, _ := f.Registry().Spec(name)
		if err := s.fillField(ctx, f, spec); err != nil {
			return nil, err
		}
	}

	if errs := f.Errors(false); errs != nil {
		s.logger.Debug().Int("errors", len(errs)).Msg("submitting form with pending errors")
	}
	f.Submit()
	return f.Values(), nil
}

func (s *Session) fillField(ctx context.Context, f *form.Form, spec registry.FieldSpec) error {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		ev, err := s.ask(ctx, spec, f.Values()[spec.Name])
		if err != nil {
			return err
		}
		if err := f.Change(ev); err != nil {
			return err
		}
		if err := f.Blur(spec.Name); err != nil {
			return err
		}

		message, failed := f.Errors(true)[spec.Name]
		s.logger.Debug().
			Str("field", spec.Name).
			Int("attempt", attempt).
			Str("status", f.Status(spec.Name).String()).
			Bool("valid", !failed).
			Msg("field answered")
		if !failed {
			return nil
		}
		if err := s.driver.Info(ctx, s.theme.ErrorPrefix+message); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %q", ErrTooManyAttempts, spec.Name)
}

func (s *Session) ask(ctx context.Context, spec registry.FieldSpec, current string) (form.ChangeEvent, error) {
	ev := form.ChangeEvent{Field: spec.Name}
	message := spec.DisplayLabel()
	help := spec.Attr("title")
	if help == "" {
		help = spec.Attr("placeholder")
	}

	switch spec.Control {
	case registry.ControlCheckbox:
		checked, err := s.driver.Confirm(ctx, ConfirmConfig{Message: message, Help: help, Default: current != ""})
		if err != nil {
			return ev, err
		}
		ev.Checked = checked
		return ev, nil

	case registry.ControlSelect, registry.ControlRadio:
		options := registry.SplitOptions(spec.Attr("options"))
		if len(options) > 0 {
			value, err := s.choose(ctx, spec, message, help, options, current)
			if err != nil {
				return ev, err
			}
			ev.Value = value
			return ev, nil
		}
	}

	cfg := InputConfig{Message: message, Help: help, Default: current}
	var (
		value string
		err   error
	)
	switch strings.ToLower(spec.Attr("type")) {
	case "password":
		value, err = s.driver.Password(ctx, cfg)
	case "textarea":
		value, err = s.driver.TextArea(ctx, TextAreaConfig{Message: message, Help: help, Default: current})
	default:
		value, err = s.driver.Input(ctx, cfg)
	}
	if err != nil {
		return ev, err
	}
	ev.Value = strings.TrimSpace(value)
	return ev, nil
}

// choose offers the options, with a leading "(none)" entry for fields that
// are not required so an answer can clear the value.
func (s *Session) choose(ctx context.Context, spec registry.FieldSpec, message, help string, options []string, current string) (string, error) {
	optional := !spec.HasRules() || !spec.Rules.Required
	choices := options
	if optional {
		choices = append([]string{noneOption}, options...)
	}

	defaultIndex := indexOf(choices, current)
	if defaultIndex < 0 {
		defaultIndex = 0
	}

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      message,
		Help:         help,
		Options:      choices,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(choices) {
		return "", fmt.Errorf("tui: select index %d out of range for %q", idx, spec.Name)
	}
	if optional && idx == 0 {
		return "", nil
	}
	return choices[idx], nil
}
