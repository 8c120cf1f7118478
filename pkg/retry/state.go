package retry

import "sync"

// State is a read-only snapshot of an in-flight execution. It exists so a
// caller (e.g. a progress indicator) can reflect retry progress; it must not
// be fed back into the executor.
type State struct {
	// IsRetrying is true once a second or later attempt has begun
	IsRetrying bool

	// CurrentAttempt is the 1-based count of attempts made so far
	CurrentAttempt int

	// LastError is the most recent failure, nil if none yet
	LastError error

	// CanRetry is true iff another attempt is still permitted for LastError
	CanRetry bool
}

// stateTracker owns the mutable state for one in-flight execution.
// It returns to initial values on success, terminal failure, Reset or Cancel.
type stateTracker struct {
	mu  sync.Mutex
	cur State
}

func (t *stateTracker) snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cur
}

func (t *stateTracker) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cur = State{}
}

func (t *stateTracker) beginAttempt(attempt int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cur.CurrentAttempt = attempt
	t.cur.IsRetrying = attempt > 1
}

func (t *stateTracker) recordFailure(err error, canRetry bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cur.LastError = err
	t.cur.CanRetry = canRetry
}

func (t *stateTracker) disableRetry() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cur.CanRetry = false
}
