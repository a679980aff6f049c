package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with capped exponential
// backoff. Quiz calls default to a single attempt; MINDSPARK_LLM_MAX_ATTEMPTS
// raises it.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps p. MaxAttempts below 1 is treated as 1.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	cfg.MaxAttempts = max(cfg.MaxAttempts, 1)
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 1
	}
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		err            error
		resp           *Response
		reparseAllowed = true
		wait           = r.config.InitialWait
	)
	for n := 1; n <= r.config.MaxAttempts; n++ {
		resp, err = r.inner.Generate(withAttempt(ctx, n), req)
		if err == nil {
			return resp, nil
		}
		if n == r.config.MaxAttempts || !retryable(err, &reparseAllowed) {
			return nil, err
		}

		delay := r.delay(wait, err)
		wait = min(time.Duration(float64(wait)*r.config.Multiplier), r.config.MaxWait)

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	return nil, err
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// retryable classifies err. Malformed or empty output is retried once per
// call.
func retryable(err error, reparseAllowed *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var truncated *ErrMaxTokensExceeded
	var denied *ErrUnauthorized
	if errors.As(err, &truncated) || errors.As(err, &denied) {
		return false
	}

	var invalid *ErrInvalidResponse
	var empty *ErrEmptyResponse
	if errors.As(err, &invalid) || errors.As(err, &empty) {
		ok := *reparseAllowed
		*reparseAllowed = false
		return ok
	}

	// Rate limits, outages and network errors.
	return true
}

// delay honours a provider's Retry-After, else jitters base by ±20%.
func (r *RetryProvider) delay(base time.Duration, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	base = min(base, r.config.MaxWait)
	jitter := time.Duration(float64(base) * 0.2 * (2*rand.Float64() - 1))
	return max(base+jitter, 0)
}
