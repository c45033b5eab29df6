package llm

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// RetryPolicy is an explicit retry value object applied at external call
// sites: max attempts, exponential backoff between a base and a ceiling,
// optional jitter, and a predicate deciding which errors are worth retrying.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Jitter      bool
	Retryable   func(error) bool
}

// DefaultRetryPolicy matches the boundary contract for LLM calls:
// 3 attempts, exponential backoff between 2s and 10s, jittered.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		MaxDelay:    10 * time.Second,
		Jitter:      true,
		Retryable:   IsTransient,
	}
}

// IsTransient reports whether an error looks like a transient external
// failure: rate limits, timeouts, 5xx conditions.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"429", "rate limit", "rate limited", "resource exhausted",
		"timeout", "deadline exceeded", "unavailable", "status 500",
		"status 502", "status 503", "connection refused", "connection reset",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// delay computes the backoff before the given (1-based) retry attempt.
func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.BaseDelay
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= p.MaxDelay {
			d = p.MaxDelay
			break
		}
	}
	if p.Jitter && d > 0 {
		// Up to 25% random reduction so concurrent callers desynchronize.
		d -= time.Duration(rand.Int63n(int64(d) / 4))
	}
	return d
}

// Do runs fn under the policy. It returns nil on the first success, the last
// error once attempts are exhausted or a non-retryable error appears, and
// respects context cancellation between attempts.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(lastErr) {
			return lastErr
		}
		if attempt == p.MaxAttempts {
			break
		}
		if err := sleepCtx(ctx, p.delay(attempt)); err != nil {
			return fmt.Errorf("retry cancelled: %w", err)
		}
	}
	return lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
