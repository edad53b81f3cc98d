// Package eval holds the configuration errors shared by the accuracy and
// performance evaluators.
//
// Every configuration error wraps ErrConfig, so callers can separate invalid
// input from other failures with a single errors.Is check:
//
//	if errors.Is(err, eval.ErrConfig) { ... }
package eval

import (
	"errors"
	"fmt"
)

// ErrConfig is the parent of every evaluator configuration error.
var ErrConfig = errors.New("eval: invalid configuration")

// Configuration errors returned before any sample is taken.
var (
	ErrNoReference        = configError("no reference implementation")
	ErrNoVariants         = configError("no variants to evaluate")
	ErrInvalidPointCount  = configError("point count must be positive")
	ErrInvalidIterations  = configError("iteration count must be positive")
	ErrInvalidPoolSize    = configError("pool size must be positive")
	ErrInvalidRange       = configError("range bounds must be finite")
	ErrInvalidVariantImpl = configError("variant has no function")
)

type wrappedConfigError struct {
	msg string
}

func configError(msg string) error {
	return &wrappedConfigError{msg: msg}
}

func (e *wrappedConfigError) Error() string { return "eval: " + e.msg }

func (e *wrappedConfigError) Unwrap() error { return ErrConfig }

// Errorf wraps a configuration sentinel with context, keeping it
// reachable through errors.Is.
func Errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}
