package retry

import (
	"sync"
	"time"
)

// Stats contains cumulative retry statistics for an executor
type Stats struct {
	TotalAttempts   int64         // total attempt count
	TotalRetries    int64         // executions that needed more than one attempt
	TotalSuccesses  int64         // executions that returned a result
	TotalFailures   int64         // executions that returned an error
	AverageAttempts float64       // attempts per execution
	LastRetryTime   time.Time     // when the last retry was scheduled
	TotalBackoff    time.Duration // total backoff delay scheduled

	mu sync.RWMutex
}

// Stats returns a snapshot of the executor's cumulative statistics
func (e *Executor) Stats() Stats {
	e.stats.mu.RLock()
	defer e.stats.mu.RUnlock()
	return Stats{
		TotalAttempts:   e.stats.TotalAttempts,
		TotalRetries:    e.stats.TotalRetries,
		TotalSuccesses:  e.stats.TotalSuccesses,
		TotalFailures:   e.stats.TotalFailures,
		AverageAttempts: e.stats.AverageAttempts,
		LastRetryTime:   e.stats.LastRetryTime,
		TotalBackoff:    e.stats.TotalBackoff,
		// don't copy mutex
	}
}

// ResetStats resets the cumulative statistics
func (e *Executor) ResetStats() {
	e.stats.mu.Lock()
	defer e.stats.mu.Unlock()

	// reset all fields but keep mutex
	e.stats.TotalAttempts = 0
	e.stats.TotalRetries = 0
	e.stats.TotalSuccesses = 0
	e.stats.TotalFailures = 0
	e.stats.AverageAttempts = 0
	e.stats.LastRetryTime = time.Time{}
	e.stats.TotalBackoff = 0
}

// updateStats updates statistics (thread-safe)
func (e *Executor) updateStats(fn func(*Stats)) {
	e.stats.mu.Lock()
	defer e.stats.mu.Unlock()
	fn(&e.stats)
}
