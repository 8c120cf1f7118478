package types

import "time"

// Result carries the outcome of an asynchronous execution
type Result[T any] struct {
	// Value is the operation result, zero on failure
	Value T

	// Error is the terminal error, nil on success
	Error error

	// Duration is the total wall time including backoff delays
	Duration time.Duration
}
