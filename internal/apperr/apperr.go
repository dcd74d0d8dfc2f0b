// Package apperr defines the classified failure type that flows from the
// validators and services to the HTTP layer. Each failure carries its kind and
// a client-safe message explicitly, so handlers never have to attach a status
// to an error after the fact.
package apperr

import (
	"errors"
	"net/http"
)

// Kind is the failure category of an Error.
type Kind int

const (
	// KindValidation marks malformed or missing input (400).
	KindValidation Kind = iota + 1
	// KindNotFound marks a well-formed reference to a missing entity (404).
	KindNotFound
	// KindStorage marks any failure of the underlying store (500).
	KindStorage
)

// InternalMessage is the only message ever sent to clients for storage
// failures and unclassified errors.
const InternalMessage = "Internal Server Error"

// String returns a stable lowercase label, used for logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Status maps the kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure. Message is safe to show to clients for
// validation and not-found kinds; Err keeps the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation returns a KindValidation error with the given message.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NotFound returns a KindNotFound error with the given message.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Storage wraps a store failure. The client-facing message is always
// InternalMessage regardless of the cause.
func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Message: InternalMessage, Err: err}
}

// Classify resolves any error into (kind, client message). Errors that are
// not *Error are treated as storage failures.
func Classify(err error) (Kind, string) {
	var ae *Error
	if errors.As(err, &ae) {
		if ae.Kind == KindValidation || ae.Kind == KindNotFound {
			return ae.Kind, ae.Message
		}
		return KindStorage, InternalMessage
	}
	return KindStorage, InternalMessage
}
