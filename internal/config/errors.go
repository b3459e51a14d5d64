package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrValidationFailed indicates a setting holds an unusable value.
	ErrValidationFailed = errors.New("validation failed")

	// ErrNoConfigDir indicates no user configuration directory could be found.
	ErrNoConfigDir = errors.New("no configuration directory")
)

// ValidationError describes a setting that failed validation.
type ValidationError struct {
	// Key is the dotted setting path (e.g. "editor.tab_width").
	Key string
	// Value is the rejected value.
	Value any
	// Message describes the constraint.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Key, e.Value, e.Message)
}

// Is reports whether the error matches ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
