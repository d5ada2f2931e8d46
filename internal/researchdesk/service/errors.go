package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoText             = errors.New("no text content")
	ErrUnsupportedFile    = errors.New("unsupported file type")
	ErrStorageDisabled    = errors.New("paper storage is not configured")
)

// These all match ErrNotFound. The HTTP layer picks its message by which one it got.
var (
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrProjectNotFound = fmt.Errorf("project %w", ErrNotFound)
	ErrPaperNotFound   = fmt.Errorf("paper %w", ErrNotFound)
)

// ForbiddenError is an ownership failure on a specific action.
type ForbiddenError struct {
	Action string // "update", "delete", ...
}

func (e *ForbiddenError) Error() string {
	return "not authorized to " + e.Action + " this project"
}

func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }

// FieldError points at one invalid input field by its JSON path.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// orNil returns e when it holds at least one field error.
func (e *ValidationError) orNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ExternalServiceError is a failure of a downstream dependency (LLM, PDF
// parsing, object storage). Message is safe to show to callers; Err is not.
type ExternalServiceError struct {
	Message string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }
