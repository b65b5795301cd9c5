// Package apperr defines the error taxonomy shared by the HTTP handlers.
//
// Every failure a handler reports is one of three kinds. The Message is the
// fixed, caller-facing text; the wrapped Err carries provider detail that is
// logged but never written to the response.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure by who is responsible for it.
type Kind string

const (
	KindValidation Kind = "validation"
	KindUpstream   Kind = "upstream"
	KindDelivery   Kind = "delivery"
)

// Error is a classified, caller-safe failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the kind to an HTTP status code.
func (e *Error) Status() int {
	if e.Kind == KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Validation reports a missing or empty required field.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Upstream reports a model-provider failure.
func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// Delivery reports a notification-provider failure.
func Delivery(message string, err error) *Error {
	return &Error{Kind: KindDelivery, Message: message, Err: err}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, or "" when err is not classified.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return ""
}
