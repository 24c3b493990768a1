package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("transient")

func fastPolicy(maxRetries int) Policy {
	return Policy{MaxRetries: maxRetries, Delay: time.Millisecond, Multiplier: 1}
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	results := []error{Retryable(errTransient), Retryable(errTransient), nil}
	calls, waits := 0, 0

	p := fastPolicy(5)
	p.OnRetry = func(int, error) { waits++ }

	err := Retry(context.Background(), p, func() error {
		err := results[calls]
		calls++
		return err
	})
	if err != nil {
		t.Fatalf("Retry() error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if waits != 2 {
		t.Errorf("retry delays = %d, want 2", waits)
	}
}

func TestRetryExhausted(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastPolicy(5), func() error {
		calls++
		return Retryable(errTransient)
	})
	if calls != 6 {
		t.Errorf("calls = %d, want 6", calls)
	}
	if err != errTransient {
		t.Errorf("Retry() error = %v, want unwrapped %v", err, errTransient)
	}
}

func TestRetryNonRetryableReturnsImmediately(t *testing.T) {
	permanent := errors.New("permanent")
	calls := 0
	err := Retry(context.Background(), fastPolicy(5), func() error {
		calls++
		return permanent
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if err != permanent {
		t.Errorf("Retry() error = %v, want %v", err, permanent)
	}
}

func TestRetryZeroRetries(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastPolicy(0), func() error {
		calls++
		return Retryable(errTransient)
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if err != errTransient {
		t.Errorf("Retry() error = %v, want %v", err, errTransient)
	}
}

func TestRetryContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := Policy{MaxRetries: 5, Delay: time.Hour}
	p.OnRetry = func(int, error) { cancel() }

	err := Retry(ctx, p, func() error { return Retryable(errTransient) })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() error = %v, want context.Canceled", err)
	}
}

func TestRetryOnRetryNumbers(t *testing.T) {
	var got []int
	p := fastPolicy(3)
	p.OnRetry = func(n int, _ error) { got = append(got, n) }

	_ = Retry(context.Background(), p, func() error { return Retryable(errTransient) })

	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("OnRetry calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("OnRetry[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
	err := Retryable(errTransient)
	if !errors.Is(err, errTransient) {
		t.Error("Retryable should unwrap to its cause")
	}
}
