package remote

import (
	"context"
	"time"
)

// RetryConfig controls retry behavior for table operations.
type RetryConfig struct {
	MaxAttempts int           // maximum number of attempts
	InitialWait time.Duration // wait before first retry
	MaxWait     time.Duration // maximum wait between retries
	Multiplier  float64       // backoff multiplier
}

// DefaultRetryConfig returns sensible defaults.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 500 * time.Millisecond,
		MaxWait:     10 * time.Second,
		Multiplier:  2.0,
	}
}

// withRetry executes fn with exponential backoff on retryable errors.
func withRetry[T any](ctx context.Context, cfg RetryConfig, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	wait := cfg.InitialWait
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !Retryable(err) || attempt == cfg.MaxAttempts {
			return zero, err
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(wait):
		}

		wait = time.Duration(float64(wait) * cfg.Multiplier)
		if cfg.MaxWait > 0 && wait > cfg.MaxWait {
			wait = cfg.MaxWait
		}
	}

	return zero, lastErr
}
