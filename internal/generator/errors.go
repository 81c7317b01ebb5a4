package generator

import (
	"context"
	"errors"
)

// ConfigurationError means the provider credential is missing.
type ConfigurationError struct {
	Variable string
}

func (e *ConfigurationError) Error() string {
	return "Missing " + e.Variable
}

// GenerationError wraps a failed or timed-out provider call.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return e.Provider + " request failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func (e *GenerationError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// MalformedOutputError describes a reply that is not a JSON business idea.
// It never leaves the service; Generate substitutes the fallback idea.
type MalformedOutputError struct {
	Raw string
	Err error
}

func (e *MalformedOutputError) Error() string {
	return "malformed idea output: " + e.Err.Error()
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Err
}
