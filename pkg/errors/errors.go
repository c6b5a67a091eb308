package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"financial-doc-classifier/internal/domain"
)

// ErrorType is the machine-readable "kind" returned to API clients.
type ErrorType string

const (
	ErrorTypeValidation      ErrorType = "validation"
	ErrorTypePayloadTooLarge ErrorType = "payload_too_large"
	ErrorTypeUnauthorized    ErrorType = "unauthorized"
	ErrorTypeInternal        ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"kind"`
	Message    string    `json:"error"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewPayloadTooLargeError is returned when an upload exceeds the size limit
func NewPayloadTooLargeError(limit int64) *AppError {
	return &AppError{
		Type:       ErrorTypePayloadTooLarge,
		Message:    fmt.Sprintf("file exceeds the maximum upload size of %d bytes", limit),
		StatusCode: http.StatusRequestEntityTooLarge,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// StatusForKind maps a classification failure onto an HTTP status.
func StatusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindUnsupportedFormat:
		return http.StatusUnsupportedMediaType
	case domain.KindExtraction, domain.KindContentBlocked:
		return http.StatusUnprocessableEntity
	case domain.KindMalformedResponse, domain.KindTransport:
		return http.StatusBadGateway
	case domain.KindAuth:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FromError converts any error into an AppError. Classification errors keep
// their kind and message; anything unrecognised becomes an internal error.
func FromError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	var ce *domain.ClassificationError
	if stderrors.As(err, &ce) {
		return &AppError{
			Type:       ErrorType(ce.Kind),
			Message:    ce.Message,
			StatusCode: StatusForKind(ce.Kind),
			Cause:      ce.Cause,
		}
	}

	return NewInternalError("internal server error", err)
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	return FromError(err).StatusCode
}
