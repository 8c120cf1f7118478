// Package retry provides delay and jitter helpers for retry policies
package retry

import (
	"math/rand"
	"time"
)

// JitterFunc randomizes a computed delay to avoid thundering herds
type JitterFunc func(time.Duration) time.Duration

// FullJitter returns a random delay in [0, delay)
func FullJitter(delay time.Duration) time.Duration {
	if delay <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(delay)))
}

// EqualJitter returns delay/2 plus a random delay in [0, delay/2)
func EqualJitter(delay time.Duration) time.Duration {
	if delay <= 0 {
		return 0
	}
	half := delay / 2
	if half <= 0 {
		return delay
	}
	return half + time.Duration(rand.Int63n(int64(half)))
}

// FixedDelay returns a DelayFunc that waits the same duration before
// every retry
func FixedDelay(delay time.Duration) DelayFunc {
	return func(attempt int) time.Duration {
		return delay
	}
}

// LinearDelay returns a DelayFunc growing by increment per retry,
// clamped at maxDelay
func LinearDelay(initialDelay, increment, maxDelay time.Duration) DelayFunc {
	return func(attempt int) time.Duration {
		if attempt <= 0 {
			attempt = 1
		}
		delay := initialDelay + time.Duration(attempt-1)*increment
		if delay > maxDelay {
			delay = maxDelay
		}
		return delay
	}
}
