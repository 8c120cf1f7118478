package retry

import (
	"errors"
	"testing"
	"time"
)

func TestNewPolicy_Defaults(t *testing.T) {
	policy := NewPolicy()

	if policy.MaxAttempts() != 3 {
		t.Errorf("MaxAttempts() = %d, want 3", policy.MaxAttempts())
	}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 1 * time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 8 * time.Second},
		{5, 10 * time.Second},  // Limited by max delay
		{10, 10 * time.Second}, // Limited by max delay
	}

	for _, tt := range tests {
		got := policy.NextDelay(tt.attempt)
		if got != tt.want {
			t.Errorf("NextDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestPolicy_NextDelay_Exponential(t *testing.T) {
	policy := NewPolicy(
		WithInitialDelay(100*time.Millisecond),
		WithBackoffFactor(2.0),
		WithMaxDelay(1*time.Second),
	)

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, 1000 * time.Millisecond},  // Limited by max delay
		{10, 1000 * time.Millisecond}, // Limited by max delay
	}

	for _, tt := range tests {
		got := policy.NextDelay(tt.attempt)
		if got != tt.want {
			t.Errorf("NextDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestPolicy_NextDelay_ClampedBelowFirstStep(t *testing.T) {
	// ceiling above the initial delay but below the second step
	policy := NewPolicy(
		WithInitialDelay(500*time.Millisecond),
		WithMaxDelay(600*time.Millisecond),
		WithBackoffFactor(5.0),
	)

	if got := policy.NextDelay(1); got != 500*time.Millisecond {
		t.Errorf("NextDelay(1) = %v, want 500ms", got)
	}
	if got := policy.NextDelay(2); got != 600*time.Millisecond {
		t.Errorf("NextDelay(2) = %v, want 600ms", got)
	}
}

func TestPolicy_NextDelay_MonotonicNonDecreasing(t *testing.T) {
	policy := NewPolicy(
		WithInitialDelay(50*time.Millisecond),
		WithBackoffFactor(1.5),
		WithMaxDelay(2*time.Second),
	)

	prev := time.Duration(0)
	for attempt := 1; attempt <= 15; attempt++ {
		got := policy.NextDelay(attempt)
		if got < prev {
			t.Errorf("NextDelay(%d) = %v, decreased from %v", attempt, got, prev)
		}
		prev = got
	}
}

func TestPolicy_NextDelay_FactorBelowOne(t *testing.T) {
	// decreasing delays are accepted, not rejected
	policy := NewPolicy(
		WithInitialDelay(400*time.Millisecond),
		WithBackoffFactor(0.5),
	)

	if got := policy.NextDelay(1); got != 400*time.Millisecond {
		t.Errorf("NextDelay(1) = %v, want 400ms", got)
	}
	if got := policy.NextDelay(2); got != 200*time.Millisecond {
		t.Errorf("NextDelay(2) = %v, want 200ms", got)
	}
	if got := policy.NextDelay(3); got != 100*time.Millisecond {
		t.Errorf("NextDelay(3) = %v, want 100ms", got)
	}
}

func TestPolicy_NextDelay_DelayFuncOverride(t *testing.T) {
	policy := NewPolicy(
		WithDelayFunc(FixedDelay(250 * time.Millisecond)),
	)

	for attempt := 1; attempt <= 5; attempt++ {
		if got := policy.NextDelay(attempt); got != 250*time.Millisecond {
			t.Errorf("NextDelay(%d) = %v, want 250ms", attempt, got)
		}
	}
}

func TestPolicy_ShouldRetry(t *testing.T) {
	retryable := errors.New("retryable")
	terminal := errors.New("terminal")

	policy := NewPolicy(
		WithMaxAttempts(3),
		WithCondition(func(err error) bool { return err == retryable }),
	)

	tests := []struct {
		name    string
		err     error
		attempt int
		want    bool
	}{
		{"retryable below cap", retryable, 1, true},
		{"retryable at cap minus one", retryable, 2, true},
		{"retryable at cap", retryable, 3, false},
		{"retryable above cap", retryable, 4, false},
		{"terminal below cap", terminal, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.ShouldRetry(tt.err, tt.attempt); got != tt.want {
				t.Errorf("ShouldRetry(%v, %d) = %v, want %v", tt.err, tt.attempt, got, tt.want)
			}
		})
	}
}

func TestNewPolicy_ClampsInvalidFields(t *testing.T) {
	policy := NewPolicy(
		WithMaxAttempts(0),
		WithInitialDelay(-1*time.Second),
	)

	if policy.MaxAttempts() != 1 {
		t.Errorf("MaxAttempts() = %d, want 1", policy.MaxAttempts())
	}
	if got := policy.NextDelay(1); got != 0 {
		t.Errorf("NextDelay(1) = %v, want 0", got)
	}
}
