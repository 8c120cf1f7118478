// Package retry provides named retry-eligibility predicates
package retry

import (
	"context"
	"errors"
	"net"
	"syscall"

	"github.com/remotehive/resilience/pkg/types"
)

// DefaultCondition is the default retry-eligibility predicate. An error
// qualifies for retry iff it is a network-level failure, a request timeout,
// or a 5xx server response. An explicit types.RetryableError marking
// overrides the classification in either direction.
func DefaultCondition(err error) bool {
	if err == nil {
		return false
	}

	if retryable, ok := types.IsMarkedRetryable(err); ok {
		return retryable
	}

	return IsNetworkError(err) || IsTimeout(err) || IsServerError(err)
}

// IsNetworkError reports whether err is a network-level connectivity
// failure: connection refused/reset, DNS failure or a non-timeout net error.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, types.ErrConnectionRefused) ||
		errors.Is(err, types.ErrConnectionReset) ||
		errors.Is(err, types.ErrDNSFailure) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// IsTimeout reports whether err is a request timeout. Context cancellation
// and deadline errors are excluded: they carry the caller's decision to stop
// and must not trigger another attempt.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if errors.Is(err, types.ErrTimeout) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsServerError reports whether err carries an HTTP status in the
// 500-599 server-error range.
func IsServerError(err error) bool {
	status, ok := types.HTTPStatusOf(err)
	return ok && status >= 500 && status <= 599
}

// IsRateLimited reports whether err carries HTTP status 429. Not part of
// DefaultCondition; combine it in explicitly where rate-limit retries are
// wanted:
//
//	retry.WithCondition(retry.AnyOf(retry.DefaultCondition, retry.IsRateLimited))
func IsRateLimited(err error) bool {
	status, ok := types.HTTPStatusOf(err)
	return ok && status == 429
}

// AnyOf combines conditions; the result is true if any condition accepts
func AnyOf(conditions ...Condition) Condition {
	return func(err error) bool {
		for _, cond := range conditions {
			if cond(err) {
				return true
			}
		}
		return false
	}
}

// AllOf combines conditions; the result is true only if every condition accepts
func AllOf(conditions ...Condition) Condition {
	return func(err error) bool {
		for _, cond := range conditions {
			if !cond(err) {
				return false
			}
		}
		return len(conditions) > 0
	}
}
