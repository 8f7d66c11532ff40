package project

import (
	"errors"
	"fmt"
)

// Sentinel errors used for simple equality-style checks.
var (
	// ErrTargetNotFound indicates a requested target alias was not found.
	ErrTargetNotFound = errors.New("project: target not found")

	// ErrInvalidConfig indicates the configuration is invalid or fails
	// validation.
	ErrInvalidConfig = errors.New("project: invalid config")
)

// TargetNotFoundError carries the missing alias for callers that need
// richer diagnostic information.
type TargetNotFoundError struct {
	Alias string
}

func (e *TargetNotFoundError) Error() string {
	if e.Alias == "" {
		return "no target alias given and no defaultTarget configured"
	}
	return fmt.Sprintf("target not found: %q", e.Alias)
}

func (e *TargetNotFoundError) Is(target error) bool {
	return target == ErrTargetNotFound
}

func (e *TargetNotFoundError) Unwrap() error { return ErrTargetNotFound }

// NewTargetNotFoundError constructs a typed TargetNotFoundError.
func NewTargetNotFoundError(alias string) error {
	return &TargetNotFoundError{Alias: alias}
}

// IsTargetNotFound reports whether err is (or wraps) a target-not-found
// condition.
func IsTargetNotFound(err error) bool {
	return errors.Is(err, ErrTargetNotFound)
}

// InvalidConfigError represents a validation or parse failure for
// splice.yaml.
type InvalidConfigError struct {
	Msg string
}

func (e *InvalidConfigError) Error() string {
	if e.Msg == "" {
		return "invalid splice config"
	}
	return fmt.Sprintf("invalid splice config: %s", e.Msg)
}

func (e *InvalidConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// NewInvalidConfigError creates an InvalidConfigError with a human message.
func NewInvalidConfigError(msg string) error {
	return &InvalidConfigError{Msg: msg}
}

// IsInvalidConfig reports whether err is (or wraps) an invalid-config
// condition.
func IsInvalidConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}
