package usecase

import (
	"context"
	"errors"
	"log"
	"net"
	"syscall"
	"time"

	"github.com/ddelliosRJ/antaeus/internal/usecase/interfaces"
)

// RetryPolicy bounds how often a transient gateway failure is retried.
// Both knobs are configuration so tests can run with a small attempt budget
// and zero delay.

type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy mirrors the gateway contract: one retry after a short
// pause, then give up and surface the transient error.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 2, Delay: time.Second}
}

// withRetry invokes action up to policy.MaxAttempts times, pausing
// policy.Delay between attempts. Only transient errors are retried; any other
// error propagates on first occurrence. The final attempt's transient error
// is re-raised to the caller instead of being swallowed.
func withRetry[T any](ctx context.Context, policy RetryPolicy, action func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := action(ctx)
		if err == nil {
			return result, nil
		}
		if !IsTransientGatewayError(err) {
			return zero, err
		}
		lastErr = err
		if attempt == attempts {
			break
		}
		log.Printf("[billing][retry] transient gateway error on attempt %d/%d, trying again: %v", attempt, attempts, err)
		select {
		case <-time.After(policy.Delay):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
	return zero, lastErr
}

// IsTransientGatewayError reports whether err belongs to the network/timeout
// class that the retry policy is allowed to absorb.
func IsTransientGatewayError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, interfaces.ErrGatewayUnavailable) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	// Connection refused / reset while dialing the gateway.
	return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET)
}
