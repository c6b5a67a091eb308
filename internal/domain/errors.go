package domain

import (
	"errors"
	"fmt"
)

// ErrorKind identifies why a classification attempt failed.
type ErrorKind string

const (
	KindUnsupportedFormat ErrorKind = "unsupported_format"
	KindExtraction        ErrorKind = "extraction_error"
	KindAuth              ErrorKind = "auth_error"
	KindContentBlocked    ErrorKind = "content_blocked"
	KindMalformedResponse ErrorKind = "malformed_response"
	KindTransport         ErrorKind = "transport_error"
)

// Domain errors
var (
	ErrInvalidContent = errors.New("extracted content has neither text nor image")
	ErrEmptyResponse  = errors.New("model returned an empty response")
)

// ClassificationError is the single error type returned by the extractor
// and the classifier. Every attempt ends with a result or exactly one of these.
type ClassificationError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// NewClassificationError creates a ClassificationError.
func NewClassificationError(kind ErrorKind, message string, cause error) *ClassificationError {
	return &ClassificationError{Kind: kind, Message: message, Cause: cause}
}

func (e *ClassificationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ClassificationError) Unwrap() error {
	return e.Cause
}

// KindOf returns the kind of the first ClassificationError in err's chain,
// or an empty kind when there is none.
func KindOf(err error) ErrorKind {
	var ce *ClassificationError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
