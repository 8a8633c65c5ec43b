// Package retry runs an operation a bounded number of times with optional
// exponential backoff and jitter.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// Config holds retry configuration.
type Config struct {
	// MaxRetries is the number of attempts made after the first one fails.
	MaxRetries int
	// InitialBackoff is the pause before the first retry. Zero retries immediately.
	InitialBackoff time.Duration
	// MaxBackoff caps the pause between attempts.
	MaxBackoff time.Duration
	// Multiplier grows the backoff after every retry.
	Multiplier float64
	// JitterFraction is the fraction of backoff used for jitter (0.0-1.0).
	JitterFraction float64
}

// DefaultConfig retries three times without pausing.
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		MaxBackoff: 30 * time.Second,
		Multiplier: 2.0,
	}
}

// ErrorClassifier reports whether an error is worth another attempt.
type ErrorClassifier func(error) bool

// IsRetryable treats everything except context cancellation as retryable.
func IsRetryable(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// ExhaustedError is returned once every attempt has failed.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Do calls fn until it succeeds, the classifier rejects an error, or
// cfg.MaxRetries+1 attempts have been made. attempt starts at 1.
// A non-retryable error is returned as is; exhaustion returns *ExhaustedError.
func Do(ctx context.Context, cfg Config, classifier ErrorClassifier, fn func(ctx context.Context, attempt int) error) error {
	if classifier == nil {
		classifier = IsRetryable
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	var lastErr error
	backoff := cfg.InitialBackoff

	for attempt := 1; attempt <= maxRetries+1; attempt++ {
		err := fn(ctx, attempt)
		if err == nil {
			return nil
		}
		lastErr = err
		if !classifier(err) {
			return err
		}

		if attempt == maxRetries+1 {
			break
		}

		if backoff > 0 {
			sleep := backoff + jitter(backoff, cfg.JitterFraction)
			if cfg.MaxBackoff > 0 && sleep > cfg.MaxBackoff {
				sleep = cfg.MaxBackoff
			}

			timer := time.NewTimer(sleep)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}

			if cfg.Multiplier > 0 {
				backoff = time.Duration(float64(backoff) * cfg.Multiplier)
			}
			if cfg.MaxBackoff > 0 && backoff > cfg.MaxBackoff {
				backoff = cfg.MaxBackoff
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
	}

	return &ExhaustedError{Attempts: maxRetries + 1, Err: lastErr}
}

// jitter returns a random duration in range [-fraction*d, +fraction*d].
func jitter(d time.Duration, fraction float64) time.Duration {
	if fraction <= 0 {
		return 0
	}
	jitterRange := float64(d) * fraction
	return time.Duration((rand.Float64() - 0.5) * 2 * jitterRange)
}
