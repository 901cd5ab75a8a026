// Package apperror provides structured error handling following RFC 7807 Problem Details.
// All business errors must use AppError for consistent API responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Infrastructure errors (5xx)
	CodeInternal = "INTERNAL_ERROR"

	// Field-level format or range rule failed (400)
	CodeValidation = "VALIDATION_ERROR"

	// Entity-specific uniqueness constraint violated among live rows (409)
	CodeAlreadyExists = "ALREADY_EXISTS"

	// Referenced id does not resolve to a live entity (404)
	CodeNotFound = "NOT_FOUND"

	// Deletion blocked by a live dependent in another collection (409)
	CodeNotDeletable = "NOT_DELETABLE"

	// Operation forbidden for the entity type (405)
	CodeUnsupportedOperation = "UNSUPPORTED_OPERATION"

	// Authorization errors (401, 403)
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
)

// AppError is the standard error type for the platform.
// It implements error interface and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field, entity, id, ...)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewFieldValidation creates a validation error bound to a single field.
func NewFieldValidation(field, message string) *AppError {
	return NewValidation(message).WithDetail("field", field)
}

// NewAlreadyExists creates a uniqueness violation error (409)
func NewAlreadyExists(entity string, fields ...string) *AppError {
	e := &AppError{
		Code:       CodeAlreadyExists,
		Message:    fmt.Sprintf("%s already exists", entity),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"entity": entity},
	}
	if len(fields) > 0 {
		e.Details["fields"] = fields
	}
	return e
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewNotDeletable creates a dependency guard error (409).
// dependent names the collection still referencing the entity.
func NewNotDeletable(entity string, id any, dependent string) *AppError {
	return &AppError{
		Code:       CodeNotDeletable,
		Message:    fmt.Sprintf("%s is still referenced by %s", entity, dependent),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"entity": entity, "id": id, "dependent": dependent},
	}
}

// NewUnsupportedOperation creates an error for operations an entity type forbids (405)
func NewUnsupportedOperation(entity, operation string) *AppError {
	return &AppError{
		Code:       CodeUnsupportedOperation,
		Message:    fmt.Sprintf("%s does not support %s", entity, operation),
		HTTPStatus: http.StatusMethodNotAllowed,
		Details:    map[string]any{"entity": entity, "operation": operation},
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewUnauthorized creates an authentication error (401)
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbidden creates an authorization error (403)
func NewForbidden(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

func IsValidation(err error) bool           { return HasCode(err, CodeValidation) }
func IsAlreadyExists(err error) bool        { return HasCode(err, CodeAlreadyExists) }
func IsNotFound(err error) bool             { return HasCode(err, CodeNotFound) }
func IsNotDeletable(err error) bool         { return HasCode(err, CodeNotDeletable) }
func IsUnsupportedOperation(err error) bool { return HasCode(err, CodeUnsupportedOperation) }
