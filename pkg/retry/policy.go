// Package retry provides retry policies and an executor for fallible operations
package retry

import (
	"math"
	"time"
)

// Default policy values
const (
	DefaultMaxAttempts   = 3
	DefaultInitialDelay  = 1 * time.Second
	DefaultMaxDelay      = 10 * time.Second
	DefaultBackoffFactor = 2.0
)

// Condition is a function that determines whether an error is retryable
type Condition func(error) bool

// DelayFunc is a custom delay calculation function
type DelayFunc func(attempt int) time.Duration

// AttemptCallback is invoked with the attempt number and its error before
// each retry delay
type AttemptCallback func(attempt int, err error)

// ExhaustedCallback is invoked with the final error once no further retries
// are permitted
type ExhaustedCallback func(err error)

// Policy is an immutable retry configuration. The delay before retry n is
// min(initialDelay * backoffFactor^(n-1), maxDelay) unless a custom DelayFunc
// overrides it.
type Policy struct {
	maxAttempts    int
	initialDelay   time.Duration
	maxDelay       time.Duration
	backoffFactor  float64
	condition      Condition
	delayFunc      DelayFunc
	jitter         JitterFunc
	onRetryAttempt AttemptCallback
	onExhausted    ExhaustedCallback
}

// NewPolicy creates a retry policy with the given options applied over
// the defaults (3 attempts, 1s initial delay, 10s ceiling, factor 2).
func NewPolicy(opts ...PolicyOption) *Policy {
	policy := &Policy{
		maxAttempts:   DefaultMaxAttempts,
		initialDelay:  DefaultInitialDelay,
		maxDelay:      DefaultMaxDelay,
		backoffFactor: DefaultBackoffFactor,
		condition:     DefaultCondition,
	}

	for _, opt := range opts {
		opt(policy)
	}

	// maxAttempts below 1 makes the executor a no-op; clamp instead
	if policy.maxAttempts < 1 {
		policy.maxAttempts = 1
	}
	if policy.initialDelay < 0 {
		policy.initialDelay = 0
	}
	if policy.maxDelay < 0 {
		policy.maxDelay = 0
	}

	return policy
}

// MaxAttempts returns the total attempt cap, including the first attempt
func (p *Policy) MaxAttempts() int {
	return p.maxAttempts
}

// ShouldRetry determines whether another attempt is permitted after err
// on the given 1-based attempt
func (p *Policy) ShouldRetry(err error, attempt int) bool {
	if attempt >= p.maxAttempts {
		return false
	}
	return p.condition(err)
}

// NextDelay returns the backoff delay after the given 1-based attempt
func (p *Policy) NextDelay(attempt int) time.Duration {
	if attempt <= 0 {
		attempt = 1
	}

	var delay time.Duration
	if p.delayFunc != nil {
		delay = p.delayFunc(attempt)
	} else {
		delay = time.Duration(float64(p.initialDelay) * math.Pow(p.backoffFactor, float64(attempt-1)))
		if delay > p.maxDelay {
			delay = p.maxDelay
		}
	}

	if p.jitter != nil {
		delay = p.jitter(delay)
	}
	if delay < 0 {
		delay = 0
	}

	return delay
}

// PolicyOption is a configuration option for retry policies
type PolicyOption func(*Policy)

// WithMaxAttempts sets the total attempt cap, including the first attempt
func WithMaxAttempts(n int) PolicyOption {
	return func(p *Policy) {
		p.maxAttempts = n
	}
}

// WithInitialDelay sets the delay before the first retry
func WithInitialDelay(d time.Duration) PolicyOption {
	return func(p *Policy) {
		p.initialDelay = d
	}
}

// WithMaxDelay sets the upper clamp on computed delays
func WithMaxDelay(d time.Duration) PolicyOption {
	return func(p *Policy) {
		p.maxDelay = d
	}
}

// WithBackoffFactor sets the per-retry delay multiplier.
// Factors below 1 are accepted and produce a decreasing delay.
func WithBackoffFactor(factor float64) PolicyOption {
	return func(p *Policy) {
		p.backoffFactor = factor
	}
}

// WithCondition sets the retry-eligibility predicate
func WithCondition(condition Condition) PolicyOption {
	return func(p *Policy) {
		p.condition = condition
	}
}

// WithDelayFunc replaces the exponential formula with a custom delay function
func WithDelayFunc(fn DelayFunc) PolicyOption {
	return func(p *Policy) {
		p.delayFunc = fn
	}
}

// WithJitter applies a jitter function to every computed delay
func WithJitter(jitter JitterFunc) PolicyOption {
	return func(p *Policy) {
		p.jitter = jitter
	}
}

// WithOnRetryAttempt sets the callback invoked before each retry delay
func WithOnRetryAttempt(cb AttemptCallback) PolicyOption {
	return func(p *Policy) {
		p.onRetryAttempt = cb
	}
}

// WithOnExhausted sets the callback invoked with the final error
func WithOnExhausted(cb ExhaustedCallback) PolicyOption {
	return func(p *Policy) {
		p.onExhausted = cb
	}
}
