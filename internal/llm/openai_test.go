package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  "gpt-4o-mini",
	}
}

// sentChat is the subset of the chat request the tests inspect.
type sentChat struct {
	Model    string `json:"model"`
	Messages []struct {
		Role string `json:"role"`
	} `json:"messages"`
	ResponseFormat *struct {
		JSONSchema *struct {
			Name string `json:"name"`
		} `json:"json_schema"`
	} `json:"response_format"`
}

// openaiReply serves one choice per entry in contents and records the
// decoded request.
func openaiReply(got *sentChat, contents ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sentChat
		_ = json.NewDecoder(r.Body).Decode(&req)
		if got != nil {
			*got = req
		}

		choices := make([]map[string]any, 0, len(contents))
		for i, c := range contents {
			choices = append(choices, map[string]any{
				"index":         i,
				"message":       map[string]any{"role": "assistant", "content": c},
				"finish_reason": "stop",
			})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   req.Model,
			"choices": choices,
			"usage":   map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
		})
	}
}

func openaiFailure(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "server_error", "message": http.StatusText(status)},
		})
	}
}

func questionRequest() Request {
	return Request{
		System:    "You write personality quizzes for students.",
		Messages:  []Message{{Role: RoleUser, Content: "Write the questions."}},
		MaxTokens: 1024,
	}
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	var got sentChat
	p := newTestOpenAIProvider(t, openaiReply(&got, `{"trait":"Focus","score":12}`))

	req := questionRequest()
	req.Schema = traitSchema()
	resp, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 {
		t.Fatalf("unexpected usage: %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}

	if len(got.Messages) != 2 || got.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Fatalf("system prompt not sent first: %+v", got.Messages)
	}
	if got.ResponseFormat == nil || got.ResponseFormat.JSONSchema == nil || got.ResponseFormat.JSONSchema.Name != "test-trait" {
		t.Fatalf("schema response format missing: %+v", got.ResponseFormat)
	}
}

func TestOpenAIProvider_ModelOverride(t *testing.T) {
	var got sentChat
	p := newTestOpenAIProvider(t, openaiReply(&got, `{}`))

	req := questionRequest()
	req.Model = "gpt-4o"
	resp, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Model != "gpt-4o" || resp.Model != "gpt-4o" {
		t.Fatalf("override not applied: requested %q, served %q", got.Model, resp.Model)
	}
}

func TestOpenAIProvider_ProseWrappedJSON(t *testing.T) {
	p := newTestOpenAIProvider(t, openaiReply(nil, `Sure, here you go: {"trait":"Focus","score":90}`))

	req := questionRequest()
	req.Schema = traitSchema()
	resp, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"trait":"Focus","score":90}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
}

func TestOpenAIProvider_Failures(t *testing.T) {
	t.Run("no choices", func(t *testing.T) {
		p := newTestOpenAIProvider(t, openaiReply(nil))
		_, err := p.Generate(context.Background(), questionRequest())
		var empty *ErrEmptyResponse
		if !errors.As(err, &empty) {
			t.Fatalf("expected ErrEmptyResponse, got %T (%v)", err, err)
		}
	})

	t.Run("unparseable", func(t *testing.T) {
		p := newTestOpenAIProvider(t, openaiReply(nil, `I cannot help with that.`))
		req := questionRequest()
		req.Schema = traitSchema()
		_, err := p.Generate(context.Background(), req)
		var inv *ErrInvalidResponse
		if !errors.As(err, &inv) {
			t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
		}
	})

	t.Run("rate limit", func(t *testing.T) {
		p := newTestOpenAIProvider(t, openaiFailure(http.StatusTooManyRequests))
		_, err := p.Generate(context.Background(), questionRequest())
		var rl *ErrRateLimit
		if !errors.As(err, &rl) {
			t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
		}
	})

	t.Run("server error", func(t *testing.T) {
		p := newTestOpenAIProvider(t, openaiFailure(http.StatusBadGateway))
		_, err := p.Generate(context.Background(), questionRequest())
		var unavail *ErrProviderUnavailable
		if !errors.As(err, &unavail) {
			t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
		}
	})
}

func TestNewOpenAIProvider(t *testing.T) {
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o", BaseURL: "https://compatible.example/v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Fatalf("expected 'gpt-4o', got %q", p.ModelID())
	}

	if _, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"}); err == nil {
		t.Fatal("expected error without API key")
	}
}
