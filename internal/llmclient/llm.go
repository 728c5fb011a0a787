package llmclient

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrInvalidJSON marks a response that did not contain usable JSON.
var ErrInvalidJSON = errors.New("invalid json from model")

// Client is the minimal surface the synthesizer depends on. Cross-cutting
// concerns (retries, pacing) are applied by wrappers.
type Client interface {
	Name() string
	GenerateJSON(ctx context.Context, prompt string) (json.RawMessage, error)
	Close() error
}

// PermanentError indicates a failure that will not resolve with retries,
// such as a rejected API key.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}
