// Package apperr defines the error kinds surfaced by the analytics pipeline and
// their mapping to HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the stable category of an error, reported to clients verbatim.
type Kind string

const (
	// KindNotFound indicates the resource is absent upstream (HTTP 404)
	KindNotFound Kind = "not_found"
	// KindUpstream indicates a transport, quota or rate-limit failure of the data source (HTTP 500)
	KindUpstream Kind = "upstream"
	// KindValidation indicates bad input or a guarded division by zero (HTTP 400)
	KindValidation Kind = "validation"
	// KindClassification indicates the sentiment model could not be invoked (HTTP 500)
	KindClassification Kind = "classification"
	// KindInternal is everything else (HTTP 500)
	KindInternal Kind = "internal"
)

// Error is a structured error with a kind, a human-readable message and an
// optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
	Context map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the status code the boundary reports for this error.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WithContext attaches a field that is logged alongside the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Upstream(message string, cause error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Cause: cause}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Classification(message string, cause error) *Error {
	return &Error{Kind: KindClassification, Message: message, Cause: cause}
}

func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Cause: cause}
}

// As converts any error into an *Error. Unstructured errors become internal.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("internal server error", err)
}

// KindOf reports the kind of err, or KindInternal for unstructured errors.
func KindOf(err error) Kind {
	return As(err).Kind
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
