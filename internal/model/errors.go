package model

import (
	"errors"
	"strings"
)

// Error kinds surfaced by the store. Callers match them with errors.Is.
var (
	ErrValidation       = errors.New("validation failed")
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrMissingReference = errors.New("missing reference")
	ErrNotFound         = errors.New("not found")
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError reports malformed or out-of-range input. It matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Message
	}
	return strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidation) succeed for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Describe turns a store or report error into a message fit for the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return "Invalid input: " + verr.Error()
	case errors.Is(err, ErrDuplicateKey):
		return "Subject code already exists"
	case errors.Is(err, ErrMissingReference):
		return "Subject does not exist"
	case errors.Is(err, ErrNotFound):
		return "Record no longer exists"
	default:
		return "Error: " + err.Error()
	}
}
