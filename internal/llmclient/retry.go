package llmclient

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Retry wraps a client with up to maxAttempts attempts and linear backoff.
// Permanent errors and context cancellation stop retrying immediately.
func Retry(next Client, maxAttempts int, baseDelay time.Duration) Client {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}
	return &retrying{next: next, max: maxAttempts, base: baseDelay}
}

type retrying struct {
	next Client
	max  int
	base time.Duration
}

func (r *retrying) Name() string { return r.next.Name() }
func (r *retrying) Close() error { return r.next.Close() }

func (r *retrying) GenerateJSON(ctx context.Context, prompt string) (json.RawMessage, error) {
	var last error
	for attempt := 1; attempt <= r.max; attempt++ {
		resp, err := r.next.GenerateJSON(ctx, prompt)
		if err == nil {
			return resp, nil
		}
		var pErr *PermanentError
		if errors.As(err, &pErr) {
			return nil, err
		}
		last = err
		if attempt == r.max {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.base * time.Duration(attempt)):
		}
	}
	return nil, last
}
