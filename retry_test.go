package mdtranslate

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMarkTransient(t *testing.T) {
	if markTransient(nil) != nil {
		t.Error("markTransient(nil) should be nil")
	}

	base := errors.New("connection reset")
	wrapped := markTransient(base)
	if !isTransient(wrapped) {
		t.Error("marked error should be transient")
	}
	if !errors.Is(wrapped, base) {
		t.Error("marked error should unwrap to the original")
	}
	if isTransient(base) {
		t.Error("unmarked error should not be transient")
	}
}

func TestBackoffBounds(t *testing.T) {
	for attempt := range 8 {
		d := backoff(attempt)
		if d < time.Second {
			t.Errorf("backoff(%d) = %v, below one second", attempt, d)
		}
		if d > 45*time.Second {
			t.Errorf("backoff(%d) = %v, above cap plus jitter", attempt, d)
		}
	}
}

func TestTranslateWithRetryNonTransientFailsFast(t *testing.T) {
	p := &fakeProvider{name: "fake", batch: 10, fn: func(int, []string) ([]string, error) {
		return nil, ErrProviderAuth
	}}

	_, err := translateWithRetry(context.Background(), p, []string{"a"}, LanguageTarget{Code: "fr"})
	if !errors.Is(err, ErrProviderAuth) {
		t.Fatalf("error = %v, want %v", err, ErrProviderAuth)
	}
	if p.calls != 1 {
		t.Errorf("provider called %d times, want 1 (no retry on auth failures)", p.calls)
	}
}

func TestTranslateWithRetrySucceedsFirstTry(t *testing.T) {
	p := &fakeProvider{name: "fake", batch: 10, fn: func(_ int, texts []string) ([]string, error) {
		return upperCase(texts), nil
	}}

	out, err := translateWithRetry(context.Background(), p, []string{"a", "b"}, LanguageTarget{Code: "fr"})
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if len(out) != 2 || out[0] != "X:a" {
		t.Errorf("out = %v", out)
	}
}

func TestTranslateWithRetryHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &fakeProvider{name: "fake", batch: 10, fn: func(int, []string) ([]string, error) {
		cancel()
		return nil, markTransient(errors.New("status 503"))
	}}

	_, err := translateWithRetry(ctx, p, []string{"a"}, LanguageTarget{Code: "fr"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if p.calls != 1 {
		t.Errorf("provider called %d times, want 1", p.calls)
	}
}
