package retry

import (
	"sync"
	"time"

	"github.com/remotehive/resilience/pkg/types"
)

// BreakerState represents the circuit breaker state.
type BreakerState int

const (
	// Closed means the circuit is healthy; attempts flow normally.
	Closed BreakerState = iota
	// Open means too many failures have occurred; attempts are rejected.
	Open
	// HalfOpen means the circuit is testing whether the downstream has recovered.
	HalfOpen
)

// Breaker prevents hammering a failing downstream by tracking consecutive
// failures and temporarily rejecting attempts once they exceed a threshold.
type Breaker struct {
	mu           sync.Mutex
	state        BreakerState
	failures     int
	threshold    int
	resetTimeout time.Duration
	lastFailure  time.Time
	clock        types.Clock
}

// NewBreaker creates a circuit breaker that opens after threshold
// consecutive failures and probes again after resetTimeout.
func NewBreaker(threshold int, resetTimeout time.Duration, opts ...BreakerOption) *Breaker {
	breaker := &Breaker{
		threshold:    threshold,
		resetTimeout: resetTimeout,
		clock:        types.NewRealClock(),
	}

	for _, opt := range opts {
		opt(breaker)
	}

	return breaker
}

// Allow reports whether an attempt is permitted.
// In Closed state it always allows. In Open state it checks whether the
// reset timeout has elapsed, transitioning to HalfOpen. In HalfOpen state
// it allows a probe attempt.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Closed:
		return true
	case Open:
		if b.clock.Since(b.lastFailure) > b.resetTimeout {
			b.state = HalfOpen
			return true
		}
		return false
	case HalfOpen:
		return true
	default:
		return false
	}
}

// RecordSuccess records a successful attempt, resetting the breaker to Closed.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.state = Closed
}

// RecordFailure records a failed attempt. If failures reach the threshold,
// the breaker transitions to Open.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures++
	b.lastFailure = b.clock.Now()
	if b.failures >= b.threshold {
		b.state = Open
	}
}

// CurrentState returns the current state of the circuit breaker.
func (b *Breaker) CurrentState() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// BreakerOption is a configuration option for the circuit breaker
type BreakerOption func(*Breaker)

// WithBreakerClock sets the clock used for the reset timeout
func WithBreakerClock(clock types.Clock) BreakerOption {
	return func(b *Breaker) {
		b.clock = clock
	}
}
