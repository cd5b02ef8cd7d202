package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/selimozcann/RedirectToolkit/internal/probe"
)

func newValidator() *validator.Validate {
	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "debug", "info", "warn", "error":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("probebackend", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", probe.BackendFFUF, probe.BackendNative, probe.BackendNone:
			return true
		default:
			return false
		}
	})

	return validate
}

// Validate checks cfg and joins every failing field into one error wrapping
// ErrInvalidConfig.
func Validate(cfg *Config) error {
	err := newValidator().Struct(cfg)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := fmt.Sprintf("'%s': rule '%s'", strings.TrimPrefix(e.Namespace(), "Config."), e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if v := e.Value(); v != nil && v != "" {
			msg += fmt.Sprintf(", actual: '%v'", v)
		}
		msgs = append(msgs, msg)
	}
	return fmt.Errorf("%w:\n  %s", ErrInvalidConfig, strings.Join(msgs, "\n  "))
}
