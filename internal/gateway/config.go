package gateway

import "os"

// Config controls the behavior of the Gateway.
type Config struct {
	// QuestionCount is how many questions one quiz asks for.
	QuestionCount int

	// QuestionModel and AnalysisModel override the provider's configured
	// model per call. Empty means use the provider default.
	QuestionModel string
	AnalysisModel string

	// Token budgets. The question set is the larger payload.
	QuestionMaxTokens int
	AnalysisMaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		QuestionCount:     20,
		QuestionMaxTokens: 8192,
		AnalysisMaxTokens: 4096,
		Temperature:       0.8,
	}
}

// ConfigFromEnv returns DefaultConfig tuned for provider. With Gemini the
// fast model writes the questions and the pro model analyzes them.
// MINDSPARK_QUESTION_MODEL and MINDSPARK_ANALYSIS_MODEL override either.
func ConfigFromEnv(provider string) Config {
	cfg := DefaultConfig()
	if provider == "gemini" {
		cfg.QuestionModel = "gemini-3-flash-preview"
		cfg.AnalysisModel = "gemini-3-pro-preview"
	}
	if m := os.Getenv("MINDSPARK_QUESTION_MODEL"); m != "" {
		cfg.QuestionModel = m
	}
	if m := os.Getenv("MINDSPARK_ANALYSIS_MODEL"); m != "" {
		cfg.AnalysisModel = m
	}
	return cfg
}
