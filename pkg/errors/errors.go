package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// Common application errors
var (
	ErrNotFound     = NewNotFoundError("resource", "resource not found")
	ErrUnauthorized = NewUnauthorizedError()
	ErrDuplicate    = NewDuplicateIdentityError()
)

// HTTPStatuser is implemented by errors that map to a single HTTP status code
type HTTPStatuser interface {
	HTTPStatus() int
}

// MissingFieldError reports required input fields that were absent or empty
type MissingFieldError struct {
	Fields []string
}

// NewMissingFieldError creates a new missing field error
func NewMissingFieldError(fields ...string) *MissingFieldError {
	return &MissingFieldError{Fields: fields}
}

// Error implements the error interface
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing input(s): %s", strings.Join(e.Fields, ", "))
}

// HTTPStatus returns the HTTP status for this error
func (e *MissingFieldError) HTTPStatus() int {
	return http.StatusBadRequest
}

// DuplicateIdentityError is returned when a username or email is already taken.
// It intentionally does not say which of the two collided.
type DuplicateIdentityError struct{}

// NewDuplicateIdentityError creates a new duplicate identity error
func NewDuplicateIdentityError() *DuplicateIdentityError {
	return &DuplicateIdentityError{}
}

// Error implements the error interface
func (e *DuplicateIdentityError) Error() string {
	return "duplicate username or email"
}

// HTTPStatus returns the HTTP status for this error
func (e *DuplicateIdentityError) HTTPStatus() int {
	return http.StatusConflict
}

// ValidationError represents a validation failure with field-level details
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// HTTPStatus returns the HTTP status for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the HTTP status for this error
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// UnauthorizedError is returned when the session identity does not own the resource.
// The message carries no detail about why.
type UnauthorizedError struct{}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError() *UnauthorizedError {
	return &UnauthorizedError{}
}

// Error implements the error interface
func (e *UnauthorizedError) Error() string {
	return "unauthorized"
}

// HTTPStatus returns the HTTP status for this error
func (e *UnauthorizedError) HTTPStatus() int {
	return http.StatusUnauthorized
}

// InternalError represents an internal server error with context
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *InternalError) HTTPStatus() int {
	return http.StatusInternalServerError
}
