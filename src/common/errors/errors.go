// Package errors provides the structured error type shared by the jobly
// service and its command line tooling. Every error carries a domain, a code
// and the HTTP status the API answers with.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a unique error code within a domain
type Code string

// Domain represents an error domain (e.g., "company", "job", "auth")
type Domain string

// Error domains
const (
	DomainAuth       Domain = "auth"
	DomainUser       Domain = "user"
	DomainCompany    Domain = "company"
	DomainJob        Domain = "job"
	DomainStorage    Domain = "storage"
	DomainDatabase   Domain = "database"
	DomainValidation Domain = "validation"
	DomainInternal   Domain = "internal"
)

// Error represents a structured error with domain, code, and HTTP status
type Error struct {
	Domain Domain `json:"domain"`
	Code   Code   `json:"code"`

	// Message is safe to show to API clients
	Message string `json:"message"`

	HTTPStatus int `json:"-"`

	cause error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is and errors.As support
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches on domain and code so that a sentinel still matches after
// WithMessage or WithCause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Domain == t.Domain && e.Code == t.Code
}

// WithCause returns a copy of the error with the underlying cause attached
func (e *Error) WithCause(cause error) *Error {
	c := *e
	c.cause = cause
	return &c
}

// WithMessage returns a copy of the error with a custom message
func (e *Error) WithMessage(message string) *Error {
	c := *e
	c.Message = message
	return &c
}

// WithMessagef returns a copy of the error with a formatted custom message
func (e *Error) WithMessagef(format string, args ...interface{}) *Error {
	return e.WithMessage(fmt.Sprintf(format, args...))
}

// New creates a new Error with the given parameters
func New(domain Domain, code Code, httpStatus int, message string) *Error {
	return &Error{
		Domain:     domain,
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// GetHTTPStatus returns the HTTP status code for an error.
// If the error is not an *Error, it returns 500 (Internal Server Error).
func GetHTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsBadRequest reports whether err maps to a 400 response
func IsBadRequest(err error) bool {
	return err != nil && GetHTTPStatus(err) == http.StatusBadRequest
}

// IsNotFound reports whether err maps to a 404 response
func IsNotFound(err error) bool {
	return err != nil && GetHTTPStatus(err) == http.StatusNotFound
}

// IsUnauthorized reports whether err maps to a 401 response
func IsUnauthorized(err error) bool {
	return err != nil && GetHTTPStatus(err) == http.StatusUnauthorized
}

// Is checks if an error matches a target error (delegates to errors.Is)
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target (delegates to errors.As)
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
