package tui

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-accountform/pkg/model"
	"github.com/goliatone/go-accountform/pkg/registration"
)

const helpTextHintKey = "helpText"

const (
	retryMessage   = "Try submitting again?"
	anotherMessage = "Create another account?"
)

// Runner drives a registration session from the terminal. Every field is
// prompted with its current value as the default; after a local rejection only
// the failing fields are asked again.
type Runner struct {
	form   model.FormModel
	driver PromptDriver
	theme  Theme
	logger *zap.SugaredLogger
}

var _ registration.Notifier = (*Runner)(nil)

// New builds a Runner for form. Without WithPromptDriver the interactive
// survey driver writing to stdout is used.
func New(form model.FormModel, options ...Option) (*Runner, error) {
	if len(form.Fields) == 0 {
		return nil, errors.New("tui: form has no fields")
	}
	r := &Runner{
		form:   form,
		theme:  DefaultTheme,
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	for _, field := range form.Fields {
		if _, err := registration.ParseField(field.Name); err != nil {
			return nil, fmt.Errorf("tui: form field %q: %w", field.Name, err)
		}
	}
	return r, nil
}

// Run resets session and loops until the user stops: a success followed by
// declining another account, or a failure followed by declining to retry. The
// last submission result is returned. Ctrl+C yields ErrAborted.
func (r *Runner) Run(ctx context.Context, session *registration.Session) (registration.Result, error) {
	if ctx == nil {
		return registration.Result{}, errors.New("tui: context is required")
	}
	if session == nil {
		return registration.Result{}, errors.New("tui: session is required")
	}

	session.Reset()
	if r.form.Title != "" {
		if err := r.info(ctx, r.theme.InfoPrefix+r.form.Title); err != nil {
			return registration.Result{}, err
		}
	}

	pending := r.allFields()
	for {
		if err := r.promptFields(ctx, session, pending); err != nil {
			return registration.Result{}, err
		}

		result := session.Submit(ctx)
		r.logger.Debugw("terminal submission settled", "session", session.ID(), "phase", result.Phase.String())

		switch result.Phase {
		case registration.PhaseRejectedLocally:
			if err := r.printErrors(ctx, result.Errors); err != nil {
				return result, err
			}
			pending = result.Errors.Fields()

		case registration.PhaseSucceeded:
			r.notify(ctx, result.Notice)
			again, err := r.driver.Confirm(ctx, ConfirmConfig{Message: anotherMessage, Default: false})
			if err != nil {
				return result, err
			}
			if !again {
				return result, nil
			}
			pending = r.allFields()

		case registration.PhaseFailed:
			r.notify(ctx, result.Notice)
			retry, err := r.driver.Confirm(ctx, ConfirmConfig{Message: retryMessage, Default: true})
			if err != nil {
				return result, err
			}
			if !retry {
				return result, nil
			}
			pending = r.allFields()

		default:
			if result.Err != nil {
				return result, result.Err
			}
			return result, fmt.Errorf("tui: unexpected phase %s", result.Phase)
		}
	}
}

// Notify prints a submission notice with the themed prefix.
func (r *Runner) Notify(ctx context.Context, notice registration.Notice) {
	prefix := r.theme.ErrorPrefix
	if notice.Kind == registration.NoticeSuccess {
		prefix = r.theme.SuccessPrefix
	}
	if err := r.info(ctx, prefix+notice.Message); err != nil {
		r.logger.Warnw("print notice failed", "err", err)
	}
}

func (r *Runner) notify(ctx context.Context, notice *registration.Notice) {
	if notice != nil {
		r.Notify(ctx, *notice)
	}
}

func (r *Runner) allFields() []registration.Field {
	out := make([]registration.Field, 0, len(r.form.Fields))
	for _, field := range r.form.Fields {
		out = append(out, registration.Field(field.Name))
	}
	return out
}

func (r *Runner) promptFields(ctx context.Context, session *registration.Session, fields []registration.Field) error {
	for _, name := range fields {
		field, ok := r.form.Field(name.String())
		if !ok {
			continue
		}
		current := session.Data().Get(name)

		var (
			value string
			err   error
		)
		switch field.Type {
		case model.FieldTypeSelect:
			value, err = r.promptSelect(ctx, field, current)
		default:
			value, err = r.driver.Input(ctx, InputConfig{
				Message: field.Label,
				Default: current,
				Help:    plainHelp(field.UIHints[helpTextHintKey]),
			})
		}
		if err != nil {
			return err
		}
		if err := session.Change(name, value); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) promptSelect(ctx context.Context, field model.Field, current string) (string, error) {
	labels := make([]string, 0, len(field.Options))
	defaultIndex := 0
	for i, option := range field.Options {
		labels = append(labels, option.Label)
		if option.Value == current {
			defaultIndex = i
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      field.Label,
		Options:      labels,
		DefaultIndex: defaultIndex,
		Help:         plainHelp(field.UIHints[helpTextHintKey]),
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(field.Options) {
		return "", nil
	}
	return field.Options[idx].Value, nil
}

func (r *Runner) printErrors(ctx context.Context, errs registration.ErrorMap) error {
	for _, field := range errs.Fields() {
		if err := r.info(ctx, r.theme.ErrorPrefix+errs.Message(field)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, msg)
}

var (
	plainPolicyOnce sync.Once
	plainPolicy     *bluemonday.Policy
)

// plainHelp reduces sanitized help markup to terminal text.
func plainHelp(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}
	plainPolicyOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(plainPolicy.Sanitize(markup)))
}
