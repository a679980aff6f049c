package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/mindspark/internal/store"
)

// Option adjusts provider construction.
type Option func(*buildOptions)

type buildOptions struct {
	responder func(Request) MockResponse
}

// WithMockResponder sets the replies used by the "mock" provider.
func WithMockResponder(fn func(Request) MockResponse) Option {
	return func(o *buildOptions) { o.responder = fn }
}

// NewProvider builds the configured provider and wraps it so calls pass
// through retry, then logging, then the provider itself.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *slog.Logger, opts ...Option) (Provider, error) {
	var bo buildOptions
	for _, o := range opts {
		o(&bo)
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = &MockProvider{Responder: bo.responder}
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithLogging(base, cfg.Provider, eventRepo, logger), cfg.Retry), nil
}

// NewProviderFromEnv resolves configuration from the environment and
// builds the wrapped provider. The returned Config reports what was used.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, logger *slog.Logger, opts ...Option) (Provider, Config, error) {
	cfg, err := ResolveConfig()
	if err != nil {
		return nil, Config{}, err
	}
	p, err := NewProvider(ctx, cfg, eventRepo, logger, opts...)
	if err != nil {
		return nil, Config{}, err
	}
	return p, cfg, nil
}
