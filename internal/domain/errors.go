package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound             = errors.New("not found")
	ErrAlreadyExists        = errors.New("already exists")
	ErrValidation           = errors.New("validation error")
	ErrConflict             = errors.New("conflict")
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrTransientIntegration = errors.New("transient integration failure")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// NumberTakenError reports that a formatted reference number is already used
// within its scope. It is the only error the sequence allocator retries on.
type NumberTakenError struct {
	Scope  string
	Number string
}

func (e *NumberTakenError) Error() string {
	return fmt.Sprintf("number %s in scope %s: %s", e.Number, e.Scope, ErrAlreadyExists)
}

func (e *NumberTakenError) Unwrap() error { return ErrAlreadyExists }

// IntegrationError wraps a failure of an external best-effort collaborator
// such as the real-time transport.
type IntegrationError struct {
	Transport string
	Err       error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Transport, e.Err)
}

// Unwrap exposes both the transient marker and the underlying cause.
func (e *IntegrationError) Unwrap() []error {
	return []error{ErrTransientIntegration, e.Err}
}
