package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/mindspark/internal/llm"
)

// Kind classifies a generation failure.
type Kind int

const (
	KindNetworkFailure Kind = iota
	KindEmptyResponse
	KindMalformedJSON
)

func (k Kind) String() string {
	switch k {
	case KindEmptyResponse:
		return "empty response"
	case KindMalformedJSON:
		return "malformed JSON"
	default:
		return "network failure"
	}
}

// Sentinels for errors.Is against a *GenerationError.
var (
	ErrNetworkFailure = errors.New("network failure")
	ErrEmptyResponse  = errors.New("empty response")
	ErrMalformedJSON  = errors.New("malformed JSON")
)

// GenerationError reports a failed gateway call.
type GenerationError struct {
	Op   string // "generate questions" or "analyze personality"
	Kind Kind
	Err  error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Is matches the sentinel for e's Kind.
func (e *GenerationError) Is(target error) bool {
	switch target {
	case ErrNetworkFailure:
		return e.Kind == KindNetworkFailure
	case ErrEmptyResponse:
		return e.Kind == KindEmptyResponse
	case ErrMalformedJSON:
		return e.Kind == KindMalformedJSON
	}
	return false
}

func malformed(op string, err error) error {
	return &GenerationError{Op: op, Kind: KindMalformedJSON, Err: err}
}

// classify maps a provider or parse error onto a GenerationError.
// Cancellation is passed through untouched.
func classify(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var (
		empty   *llm.ErrEmptyResponse
		invalid *llm.ErrInvalidResponse
		maxTok  *llm.ErrMaxTokensExceeded
		syntax  *json.SyntaxError
		typeErr *json.UnmarshalTypeError
	)
	kind := KindNetworkFailure
	switch {
	case errors.As(err, &empty):
		kind = KindEmptyResponse
	case errors.As(err, &invalid), errors.As(err, &maxTok), errors.As(err, &syntax), errors.As(err, &typeErr):
		kind = KindMalformedJSON
	}
	return &GenerationError{Op: op, Kind: kind, Err: err}
}
