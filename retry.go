package mdtranslate

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// maxRetries bounds retry attempts for transient provider failures.
const maxRetries = 3

// transientError marks a failure worth retrying: network errors, rate-limit
// responses, server-side 5xx. Authentication failures and malformed input are
// never wrapped.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// markTransient tags an error as retryable.
func markTransient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// isTransient reports whether an error is worth retrying.
func isTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// backoff returns the wait before retry attempt n (0-indexed), exponential
// with jitter, capped at 30 seconds.
func backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

// translateWithRetry calls one provider, retrying transient failures with
// backoff. Non-transient failures return immediately.
func translateWithRetry(ctx context.Context, p Provider, texts []string, target LanguageTarget) ([]string, error) {
	var lastErr error
	for attempt := range maxRetries {
		out, err := p.Translate(ctx, texts, target)
		if err == nil {
			return out, nil
		}
		if !isTransient(err) {
			return nil, err
		}
		lastErr = err
		if attempt == maxRetries-1 {
			break
		}
		select {
		case <-time.After(backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("%s: retries exhausted: %w", p.Name(), lastErr)
}
