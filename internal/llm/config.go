package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config selects a provider and carries the settings of each one.
// Provider is one of "gemini", "anthropic", "openai", "openrouter" or
// "mock".
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one gateway call, retries included.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // for OpenAI-compatible servers
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig shapes the backoff of WithRetry. MaxAttempts of 1 means
// a single try.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig targets Gemini Flash with a single attempt: the student
// is waiting on a loading screen and can press retry themselves.
func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: time.Minute,
	}
}

// providerEnv describes where one provider's settings live.
type providerEnv struct {
	name    string
	keyVars []string // well-known key variables, checked by DiscoverConfig
	key     func(*Config) *string
	model   func(*Config) *string
	baseURL func(*Config) *string
}

// providers lists providers in discovery order. A bare API_KEY is a
// Gemini key.
var providers = []providerEnv{
	{
		name:    "gemini",
		keyVars: []string{"GEMINI_API_KEY", "API_KEY"},
		key:     func(c *Config) *string { return &c.Gemini.APIKey },
		model:   func(c *Config) *string { return &c.Gemini.Model },
		baseURL: func(c *Config) *string { return &c.Gemini.BaseURL },
	},
	{
		name:    "openai",
		keyVars: []string{"OPENAI_API_KEY"},
		key:     func(c *Config) *string { return &c.OpenAI.APIKey },
		model:   func(c *Config) *string { return &c.OpenAI.Model },
		baseURL: func(c *Config) *string { return &c.OpenAI.BaseURL },
	},
	{
		name:    "anthropic",
		keyVars: []string{"ANTHROPIC_API_KEY"},
		key:     func(c *Config) *string { return &c.Anthropic.APIKey },
		model:   func(c *Config) *string { return &c.Anthropic.Model },
	},
	{
		name:    "openrouter",
		keyVars: []string{"OPENROUTER_API_KEY"},
		key:     func(c *Config) *string { return &c.OpenRouter.APIKey },
		model:   func(c *Config) *string { return &c.OpenRouter.Model },
	},
}

func lookupProvider(name string) (providerEnv, bool) {
	for _, p := range providers {
		if p.name == name {
			return p, true
		}
	}
	return providerEnv{}, false
}

// envPrefix returns "MINDSPARK_<NAME>_".
func envPrefix(name string) string {
	b := []byte("MINDSPARK_" + name + "_")
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// ConfigFromEnv reads MINDSPARK_LLM_PROVIDER and the
// MINDSPARK_<PROVIDER>_{API_KEY,MODEL,BASE_URL} variables over the
// defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	setFromEnv(&cfg.Provider, "MINDSPARK_LLM_PROVIDER")
	for _, p := range providers {
		prefix := envPrefix(p.name)
		setFromEnv(p.key(&cfg), prefix+"API_KEY")
		setFromEnv(p.model(&cfg), prefix+"MODEL")
		if p.baseURL != nil {
			setFromEnv(p.baseURL(&cfg), prefix+"BASE_URL")
		}
	}
	applyCommonEnv(&cfg)
	return cfg
}

// DiscoverConfig picks the first provider whose well-known key variable
// is set, in the order Gemini, OpenAI, Anthropic, OpenRouter.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, p := range providers {
		for _, v := range p.keyVars {
			if k := os.Getenv(v); k != "" {
				cfg.Provider = p.name
				*p.key(&cfg) = k
				applyCommonEnv(&cfg)
				return cfg, true
			}
		}
	}
	return Config{}, false
}

// ResolveConfig prefers explicit MINDSPARK_* settings when
// MINDSPARK_LLM_PROVIDER is set and falls back to discovery.
func ResolveConfig() (Config, error) {
	if os.Getenv("MINDSPARK_LLM_PROVIDER") != "" {
		cfg := ConfigFromEnv()
		return cfg, cfg.Validate()
	}
	if cfg, ok := DiscoverConfig(); ok {
		return cfg, nil
	}
	return Config{}, fmt.Errorf("no API key found: set GEMINI_API_KEY (or API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY)")
}

func applyCommonEnv(cfg *Config) {
	if n, err := strconv.Atoi(os.Getenv("MINDSPARK_LLM_MAX_ATTEMPTS")); err == nil && n > 0 {
		cfg.Retry.MaxAttempts = n
	}
	if d, err := time.ParseDuration(os.Getenv("MINDSPARK_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
}

// Validate reports an unknown provider or a missing API key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	p, ok := lookupProvider(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *p.key(&c) == "" {
		return fmt.Errorf("%sAPI_KEY is required for the %s provider", envPrefix(p.name), p.name)
	}
	return nil
}
