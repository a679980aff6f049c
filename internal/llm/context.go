package llm

import (
	"context"

	"github.com/google/uuid"
)

// callInfo labels one logical gateway call. Retries of the call share it.
type callInfo struct {
	purpose string
	id      string
	attempt int
}

type callKey struct{}

func callFrom(ctx context.Context) callInfo {
	if c, ok := ctx.Value(callKey{}).(callInfo); ok {
		return c
	}
	return callInfo{purpose: "unknown"}
}

// WithPurpose starts a new logical call labelled purpose. Request events
// and log lines carry the label and a fresh call ID.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, callKey{}, callInfo{purpose: purpose, id: uuid.NewString()})
}

// PurposeFrom returns the purpose label on ctx, or "unknown".
func PurposeFrom(ctx context.Context) string {
	return callFrom(ctx).purpose
}

// CallIDFrom returns the call ID set by WithPurpose, or "".
func CallIDFrom(ctx context.Context) string {
	return callFrom(ctx).id
}

// withAttempt records the 1-based attempt number for the retry layer.
func withAttempt(ctx context.Context, n int) context.Context {
	c := callFrom(ctx)
	c.attempt = n
	return context.WithValue(ctx, callKey{}, c)
}

// attemptFrom returns the attempt number, 1 outside the retry layer.
func attemptFrom(ctx context.Context) int {
	return max(callFrom(ctx).attempt, 1)
}
