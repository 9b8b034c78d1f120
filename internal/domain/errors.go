// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidScope is returned when a pattern analysis type is not recognized.
	ErrInvalidScope = errors.New("invalid analysis type")

	// ErrInvalidComplexity is returned when a strategy complexity is not recognized.
	ErrInvalidComplexity = errors.New("invalid strategy complexity")

	// ErrInvalidCategory is returned when a strategy category is not recognized.
	ErrInvalidCategory = errors.New("invalid strategy category")

	// ErrInvalidRating is returned when a feedback rating falls outside 1-5.
	ErrInvalidRating = errors.New("effectiveness rating must be between 1 and 5")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError describes a single invalid field. It wraps one of the
// sentinel errors above so callers can keep using errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
// A nil err defaults to ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}
