// Package apperrors defines the error taxonomy surfaced by the API and its
// mapping onto HTTP status codes.
package apperrors

import (
	"errors"
	"net/http"
)

// Kind is a machine-readable error class.
type Kind int

const (
	// KindValidation marks malformed input or a malformed identifier. The
	// caller can correct the request; no retry will help.
	KindValidation Kind = iota
	// KindConflict marks a duplicate value for a unique field.
	KindConflict
	// KindAuthentication marks missing or invalid credentials or token.
	KindAuthentication
	// KindAuthorization marks an authenticated caller acting on a resource
	// it does not own.
	KindAuthorization
	// KindNotFound marks a referenced entity that does not exist.
	KindNotFound
	// KindInternal marks everything else; store and collaborator failures
	// propagate here unclassified.
	KindInternal
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the application error type carried from services to handlers.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "internal error"
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error of the given kind around an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NewValidation builds a validation Error carrying field-level detail.
func NewValidation(message string, fields []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// KindOf extracts the Kind from err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error to the status code it is surfaced with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
