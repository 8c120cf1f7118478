// Package types defines error types
package types

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Predefined errors
var (
	// ErrTimeout indicates a request timed out before completing
	ErrTimeout = errors.New("request timeout")

	// ErrConnectionRefused indicates the remote endpoint refused the connection
	ErrConnectionRefused = errors.New("connection refused")

	// ErrConnectionReset indicates the connection was reset by the peer
	ErrConnectionReset = errors.New("connection reset")

	// ErrDNSFailure indicates a hostname could not be resolved
	ErrDNSFailure = errors.New("dns resolution failed")
)

// HTTPError represents a non-success HTTP response from an upstream service
type HTTPError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int

	// Status is the status line text, e.g. "503 Service Unavailable"
	Status string

	// Cause is the underlying error, if any
	Cause error
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("http %d: %v", e.StatusCode, e.Cause)
	}
	if e.Status != "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Status)
	}
	return fmt.Sprintf("http %d", e.StatusCode)
}

// Unwrap returns the underlying error
func (e *HTTPError) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the response status code
func (e *HTTPError) HTTPStatus() int {
	return e.StatusCode
}

// NewHTTPError creates an HTTPError from a status code
func NewHTTPError(statusCode int) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
	}
}

// HTTPStatusOf extracts an HTTP status code from an error chain.
// It recognizes any error exposing an HTTPStatus() int method.
func HTTPStatusOf(err error) (int, bool) {
	var sc interface{ HTTPStatus() int }
	if errors.As(err, &sc) {
		return sc.HTTPStatus(), true
	}
	return 0, false
}

// RetryableError marks an error with an explicit retry decision,
// overriding the default classification.
type RetryableError struct {
	// Err is the underlying error
	Err error

	// Retryable indicates whether the error is retryable
	Retryable bool

	// RetryAfter is the suggested retry delay, e.g. from a Retry-After header
	RetryAfter time.Duration
}

// Error implements the error interface
func (e *RetryableError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *RetryableError) Unwrap() error {
	return e.Err
}

// MarkRetryable wraps err with an explicit retryable decision
func MarkRetryable(err error, retryable bool) *RetryableError {
	return &RetryableError{Err: err, Retryable: retryable}
}

// IsMarkedRetryable reports the explicit retry decision carried by err,
// if any. ok is false when the chain carries no RetryableError.
func IsMarkedRetryable(err error) (retryable, ok bool) {
	var re *RetryableError
	if errors.As(err, &re) {
		return re.Retryable, true
	}
	return false, false
}

// RetryDelay returns the suggested retry delay carried by err, or 0
func RetryDelay(err error) time.Duration {
	var re *RetryableError
	if errors.As(err, &re) {
		return re.RetryAfter
	}
	return 0
}
