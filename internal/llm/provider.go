package llm

import (
	"context"
	"encoding/json"
)

// Provider sends one request to a model and returns its output. When
// req.Schema is set the content is a JSON document valid against it.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System   string
	Messages []Message

	// Model overrides the provider's model; aliases are resolved.
	Model string

	// Schema asks for native structured output. Without one the content
	// is raw text.
	Schema *Schema

	MaxTokens   int
	Temperature float64 // 0 leaves the provider default
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema document. Name doubles as the key for
// compiled schemas and the structured-output name sent to OpenAI.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any

	// Envelope is the array property of an object schema. A model that
	// answers with the bare array gets it wrapped as {Envelope: [...]}.
	Envelope string
}

type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string // as reported by the provider

	// StopReason is "end", "max_tokens" or "error".
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// modelFor picks the model for req: the per-request override resolved
// through models, or the provider default.
func modelFor(req Request, fallback string, models map[string]string) string {
	if req.Model != "" {
		return resolveModel(req.Model, models)
	}
	return fallback
}

// resolveModel maps a short alias such as "gemini-pro" to a model ID.
// Unknown names are passed through as literal IDs.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
