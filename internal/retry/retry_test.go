package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDo_Success(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), DefaultConfig(), nil, func(ctx context.Context, attempt int) error {
		attempts++
		return nil
	})

	if err != nil {
		t.Errorf("Do() returned error = %v, want nil", err)
	}
	if attempts != 1 {
		t.Errorf("Do() made %d attempts, want 1", attempts)
	}
}

func TestDo_PermanentError(t *testing.T) {
	attempts := 0
	permanentErr := errors.New("permanent")

	classifier := func(err error) bool {
		return !errors.Is(err, permanentErr)
	}

	err := Do(context.Background(), DefaultConfig(), classifier, func(ctx context.Context, attempt int) error {
		attempts++
		return permanentErr
	})

	if !errors.Is(err, permanentErr) {
		t.Errorf("Do() returned error = %v, want %v", err, permanentErr)
	}
	var exhausted *ExhaustedError
	if errors.As(err, &exhausted) {
		t.Error("Do() wrapped a permanent error in ExhaustedError")
	}
	if attempts != 1 {
		t.Errorf("Do() made %d attempts, want 1", attempts)
	}
}

func TestDo_SucceedsAfterRetries(t *testing.T) {
	tempErr := errors.New("temporary")
	var seen []int

	err := Do(context.Background(), Config{MaxRetries: 5}, IsRetryable, func(ctx context.Context, attempt int) error {
		seen = append(seen, attempt)
		if attempt < 3 {
			return tempErr
		}
		return nil
	})

	if err != nil {
		t.Errorf("Do() returned error = %v, want nil", err)
	}
	if len(seen) != 3 || seen[0] != 1 || seen[2] != 3 {
		t.Errorf("Do() attempts = %v, want [1 2 3]", seen)
	}
}

func TestDo_Exhausted(t *testing.T) {
	testCases := []struct {
		name         string
		maxRetries   int
		wantAttempts int
	}{
		{name: "no retries", maxRetries: 0, wantAttempts: 1},
		{name: "three retries", maxRetries: 3, wantAttempts: 4},
		{name: "negative treated as zero", maxRetries: -2, wantAttempts: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tempErr := errors.New("temporary")
			attempts := 0

			err := Do(context.Background(), Config{MaxRetries: tc.maxRetries}, nil, func(ctx context.Context, attempt int) error {
				attempts++
				return tempErr
			})

			var exhausted *ExhaustedError
			if !errors.As(err, &exhausted) {
				t.Fatalf("Do() error = %v, want *ExhaustedError", err)
			}
			if exhausted.Attempts != tc.wantAttempts || attempts != tc.wantAttempts {
				t.Errorf("attempts = %d (reported %d), want %d", attempts, exhausted.Attempts, tc.wantAttempts)
			}
			if !errors.Is(err, tempErr) {
				t.Errorf("errors.Is(err, tempErr) = false")
			}
		})
	}
}

func TestDo_BackoffRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := Config{
		MaxRetries:     3,
		InitialBackoff: time.Hour,
		MaxBackoff:     time.Hour,
		Multiplier:     2.0,
	}

	attempts := 0
	err := Do(ctx, cfg, nil, func(ctx context.Context, attempt int) error {
		attempts++
		cancel()
		return errors.New("temporary")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do() error = %v, want context.Canceled", err)
	}
	if attempts != 1 {
		t.Errorf("Do() made %d attempts, want 1", attempts)
	}
}

func TestJitter(t *testing.T) {
	d := 100 * time.Millisecond
	if got := jitter(d, 0); got != 0 {
		t.Errorf("jitter(d, 0) = %s, want 0", got)
	}
	for i := 0; i < 50; i++ {
		got := jitter(d, 0.2)
		if got < -20*time.Millisecond || got > 20*time.Millisecond {
			t.Fatalf("jitter(100ms, 0.2) = %s, out of range", got)
		}
	}
}
