package retry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/remotehive/resilience/pkg/types"
)

// timeoutError implements net.Error with Timeout() == true
type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestDefaultCondition(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"timeout sentinel", types.ErrTimeout, true},
		{"connection refused", types.ErrConnectionRefused, true},
		{"connection reset", types.ErrConnectionReset, true},
		{"dns failure sentinel", types.ErrDNSFailure, true},
		{"dns error", &net.DNSError{Err: "no such host", Name: "api.invalid"}, true},
		{"net timeout", timeoutError{}, true},
		{"http 500", types.NewHTTPError(500), true},
		{"http 503", types.NewHTTPError(503), true},
		{"http 599", types.NewHTTPError(599), true},
		{"http 404", types.NewHTTPError(404), false},
		{"http 400", types.NewHTTPError(400), false},
		{"http 429 not in default set", types.NewHTTPError(429), false},
		{"validation error", errors.New("validation: title is required"), false},
		{"context canceled", context.Canceled, false},
		{"context deadline", context.DeadlineExceeded, false},
		{"wrapped retryable", fmt.Errorf("fetch jobs: %w", types.ErrTimeout), true},
		{"wrapped terminal", fmt.Errorf("fetch jobs: %w", types.NewHTTPError(404)), false},
		{"marked retryable", types.MarkRetryable(errors.New("custom"), true), true},
		{"marked non-retryable overrides 500", types.MarkRetryable(types.NewHTTPError(500), false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultCondition(tt.err); got != tt.want {
				t.Errorf("DefaultCondition(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsRateLimited(t *testing.T) {
	if !IsRateLimited(types.NewHTTPError(429)) {
		t.Error("IsRateLimited(429) = false, want true")
	}
	if IsRateLimited(types.NewHTTPError(404)) {
		t.Error("IsRateLimited(404) = true, want false")
	}
	if IsRateLimited(errors.New("not http")) {
		t.Error("IsRateLimited(non-http) = true, want false")
	}
}

func TestIsNetworkError_OpError(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	if !IsNetworkError(opErr) {
		t.Error("IsNetworkError(*net.OpError) = false, want true")
	}
	if IsNetworkError(errors.New("plain")) {
		t.Error("IsNetworkError(plain error) = true, want false")
	}
}

func TestIsTimeout_ExcludesContextErrors(t *testing.T) {
	if IsTimeout(context.DeadlineExceeded) {
		t.Error("IsTimeout(context.DeadlineExceeded) = true, want false")
	}
	if IsTimeout(context.Canceled) {
		t.Error("IsTimeout(context.Canceled) = true, want false")
	}
	if !IsTimeout(timeoutError{}) {
		t.Error("IsTimeout(net timeout) = false, want true")
	}
}

func TestAnyOf(t *testing.T) {
	cond := AnyOf(DefaultCondition, IsRateLimited)

	if !cond(types.NewHTTPError(429)) {
		t.Error("AnyOf with rate limit: 429 should be retryable")
	}
	if !cond(types.NewHTTPError(503)) {
		t.Error("AnyOf with rate limit: 503 should be retryable")
	}
	if cond(types.NewHTTPError(404)) {
		t.Error("AnyOf with rate limit: 404 should not be retryable")
	}
}

func TestAllOf(t *testing.T) {
	isHTTP := func(err error) bool {
		_, ok := types.HTTPStatusOf(err)
		return ok
	}

	cond := AllOf(isHTTP, IsServerError)

	if !cond(types.NewHTTPError(502)) {
		t.Error("AllOf: 502 should pass both conditions")
	}
	if cond(types.ErrTimeout) {
		t.Error("AllOf: non-http error should fail")
	}

	empty := AllOf()
	if empty(types.ErrTimeout) {
		t.Error("AllOf() with no conditions should reject")
	}
}
