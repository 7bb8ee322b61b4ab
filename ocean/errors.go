package ocean

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks a parameter set the pipeline cannot run with.
	ErrConfiguration = errors.New("ocean: invalid configuration")

	// ErrResourceExhausted marks a grid too large for the configured budget.
	ErrResourceExhausted = errors.New("ocean: grid exceeds resource budget")
)

// ConfigError names the offending parameter. It matches ErrConfiguration
// under errors.Is.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("ocean: invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

func configErr(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
