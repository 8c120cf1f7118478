// Package retry provides a retry executor with exponential backoff, pluggable
// retry conditions and cancellation, for wrapping fallible operations such as
// HTTP calls to upstream services.
//
// Key features:
//
// 1. Configurable policy:
//   - Attempt cap (total attempts including the first)
//   - Exponential backoff with an upper delay clamp
//   - Custom delay functions (FixedDelay, LinearDelay) and jitter
//   - Pluggable retry-eligibility conditions with AnyOf/AllOf combinators
//
// 2. Observable execution:
//   - OnRetryAttempt / OnExhausted callbacks as plain injected functions
//   - Read-only State snapshots (current attempt, retrying, last error)
//   - Cumulative Stats per executor
//
// 3. Cancellation:
//   - Context cancellation during attempts and backoff delays
//   - Cancel/Reset stop a scheduled-but-unfired retry
//
// 4. Circuit breaker integration via WithBreaker.
//
// Basic usage:
//
//	policy := retry.NewPolicy(
//		retry.WithMaxAttempts(3),
//		retry.WithInitialDelay(100*time.Millisecond),
//	)
//	executor := retry.New(policy)
//
//	result, err := retry.Do(executor, ctx, func(ctx context.Context) (string, error) {
//		return fetchSomething(ctx)
//	})
//
// Custom retry conditions:
//
//	policy := retry.NewPolicy(
//		retry.WithCondition(retry.AnyOf(retry.DefaultCondition, retry.IsRateLimited)),
//	)
//
// The default condition classifies network-level failures, request timeouts
// and 5xx server responses as retryable; everything else, including 4xx
// client errors and validation failures, surfaces to the caller on first
// occurrence. The terminal error is always returned unwrapped.
//
// Cancellation semantics: Cancel and Reset clear a pending backoff timer so
// a scheduled retry never fires. Because the wrapped operation is opaque, an
// attempt already in flight is not aborted; propagate the caller's context
// into the operation for true in-flight cancellation.
//
// One executor services one logical retryable operation at a time; a second
// concurrent Do on the same executor returns ErrBusy. All public types and
// methods are otherwise safe for concurrent use.
package retry
