// Package retry provides the retry executor implementation
package retry

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/remotehive/resilience/pkg/types"
)

// Executor errors
var (
	// ErrBusy is returned when Do is called while another execution is in
	// flight on the same executor. One executor services one logical
	// operation at a time; use separate executors for unrelated operations.
	ErrBusy = errors.New("executor already running")

	// ErrBreakerOpen is returned without invoking the operation while the
	// attached circuit breaker is open.
	ErrBreakerOpen = errors.New("circuit breaker is open")
)

// Func is the operation type to retry
type Func[T any] func(ctx context.Context) (T, error)

// Logger is the leveled printf-style logging interface accepted by the
// executor. A nil logger disables logging.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Executor runs an operation under a retry Policy, re-invoking eligible
// failures with exponential backoff. Attempts are strictly sequential.
//
// Cancel and Reset stop a scheduled-but-unfired retry; an attempt already
// in flight cannot be aborted from the outside. Callers needing in-flight
// cancellation must wire it through the operation's own context.
type Executor struct {
	policy  *Policy
	clock   types.Clock
	logger  Logger
	breaker *Breaker

	state stateTracker
	stats Stats

	running  atomic.Bool
	cancelMu sync.Mutex
	cancelCh chan struct{}
}

// New creates an executor for the given policy. A nil policy uses the
// defaults.
func New(policy *Policy, opts ...ExecutorOption) *Executor {
	if policy == nil {
		policy = NewPolicy()
	}

	executor := &Executor{
		policy: policy,
		clock:  types.NewRealClock(),
	}

	for _, opt := range opts {
		opt(executor)
	}

	return executor
}

// Do executes fn under the executor's policy. On success of any attempt it
// returns the result and performs no further invocations. On a terminal
// failure it returns the final attempt's error unmodified, never wrapped,
// so callers branch on the same error shape they would see without retry.
//
// Context cancellation during an attempt or a backoff delay returns
// ctx.Err(). An explicit Cancel during a backoff delay returns the last
// attempt's error.
func Do[T any](e *Executor, ctx context.Context, fn Func[T]) (T, error) {
	var zero T

	if !e.running.CompareAndSwap(false, true) {
		return zero, ErrBusy
	}
	defer e.running.Store(false)

	e.cancelMu.Lock()
	e.cancelCh = make(chan struct{})
	cancelCh := e.cancelCh
	e.cancelMu.Unlock()

	e.state.reset()

	attempt := 0
	for {
		attempt++
		e.state.beginAttempt(attempt)

		e.updateStats(func(s *Stats) {
			s.TotalAttempts++
		})

		select {
		case <-ctx.Done():
			e.state.reset()
			return zero, ctx.Err()
		default:
		}

		if e.breaker != nil && !e.breaker.Allow() {
			e.recordOutcome(attempt, false)
			e.state.reset()
			return zero, ErrBreakerOpen
		}

		result, err := fn(ctx)

		if err == nil {
			if e.breaker != nil {
				e.breaker.RecordSuccess()
			}
			if e.logger != nil && attempt > 1 {
				e.logger.Infof("operation succeeded on attempt %d", attempt)
			}
			e.recordOutcome(attempt, true)
			e.state.reset()
			return result, nil
		}

		if e.breaker != nil {
			e.breaker.RecordFailure()
		}

		canRetry := e.policy.ShouldRetry(err, attempt)
		e.state.recordFailure(err, canRetry)

		if !canRetry {
			if e.logger != nil {
				if attempt >= e.policy.MaxAttempts() {
					e.logger.Errorf("giving up after %d attempts: %v", attempt, err)
				} else {
					e.logger.Warnf("non-retryable error on attempt %d: %v", attempt, err)
				}
			}
			if e.policy.onExhausted != nil {
				e.policy.onExhausted(err)
			}
			e.recordOutcome(attempt, false)
			e.state.reset()
			return zero, err
		}

		if e.policy.onRetryAttempt != nil {
			e.policy.onRetryAttempt(attempt, err)
		}

		delay := e.policy.NextDelay(attempt)
		if hint := types.RetryDelay(err); hint > delay {
			delay = hint
		}

		if e.logger != nil {
			e.logger.Debugf("attempt %d failed, retrying in %v: %v", attempt, delay, err)
		}

		e.updateStats(func(s *Stats) {
			s.LastRetryTime = e.clock.Now()
			s.TotalBackoff += delay
		})

		if delay > 0 {
			timer := e.clock.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				e.state.reset()
				return zero, ctx.Err()
			case <-cancelCh:
				timer.Stop()
				e.state.reset()
				return zero, err
			case <-timer.C():
			}
		} else {
			select {
			case <-cancelCh:
				e.state.reset()
				return zero, err
			default:
			}
		}
	}
}

// DoAsync executes fn under the executor's policy in a new goroutine and
// delivers the outcome on the returned channel.
func DoAsync[T any](e *Executor, ctx context.Context, fn Func[T]) <-chan types.Result[T] {
	resultChan := make(chan types.Result[T], 1)

	go func() {
		defer close(resultChan)

		start := e.clock.Now()
		value, err := Do(e, ctx, fn)

		resultChan <- types.Result[T]{
			Value:    value,
			Error:    err,
			Duration: e.clock.Since(start),
		}
	}()

	return resultChan
}

// State returns a read-only snapshot of the in-flight execution
func (e *Executor) State() State {
	return e.state.snapshot()
}

// Cancel stops any pending delayed retry so a scheduled-but-unfired attempt
// never runs, and marks the state non-retryable. It does not abort an
// attempt already in flight.
func (e *Executor) Cancel() {
	e.state.disableRetry()
	e.fireCancel()
}

// Reset stops any pending delayed retry and restores the state to its
// initial values. It has no effect on an execution that already returned.
func (e *Executor) Reset() {
	e.fireCancel()
	e.state.reset()
}

func (e *Executor) fireCancel() {
	e.cancelMu.Lock()
	defer e.cancelMu.Unlock()

	if e.cancelCh == nil {
		return
	}
	select {
	case <-e.cancelCh:
	default:
		close(e.cancelCh)
	}
}

// recordOutcome updates the terminal counters for one Do call
func (e *Executor) recordOutcome(attempts int, success bool) {
	e.updateStats(func(s *Stats) {
		if success {
			s.TotalSuccesses++
		} else {
			s.TotalFailures++
		}
		if attempts > 1 {
			s.TotalRetries++
		}
		total := s.TotalSuccesses + s.TotalFailures
		if total > 0 {
			s.AverageAttempts = float64(s.TotalAttempts) / float64(total)
		}
	})
}

// ExecutorOption is a configuration option for the executor
type ExecutorOption func(*Executor)

// WithClock sets the clock for time operations
func WithClock(clock types.Clock) ExecutorOption {
	return func(e *Executor) {
		e.clock = clock
	}
}

// WithLogger sets the logger for retry progress
func WithLogger(logger Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithBreaker attaches a circuit breaker consulted before each attempt
func WithBreaker(breaker *Breaker) ExecutorOption {
	return func(e *Executor) {
		e.breaker = breaker
	}
}
