package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted reply.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider serves scripted replies without a network. Queued
// responses are used first, in order; after that Responder, when set,
// answers each request. With neither it reports the provider unavailable.
// Requests are recorded in Calls.
type MockProvider struct {
	Responder func(Request) MockResponse

	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider returns a provider with responses queued.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate fails fast on a done context without consuming a reply.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	var (
		reply MockResponse
		ok    bool
	)
	if len(m.responses) > 0 {
		reply, m.responses, ok = m.responses[0], m.responses[1:], true
	}
	m.mu.Unlock()

	if !ok {
		if m.Responder == nil {
			return nil, &ErrProviderUnavailable{}
		}
		reply = m.Responder(req)
	}
	if reply.Err != nil {
		return nil, reply.Err
	}
	return &Response{
		Content:    reply.Content,
		Usage:      reply.Usage,
		Model:      modelFor(req, m.ModelID(), nil),
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse queues r.
func (m *MockProvider) AddResponse(r MockResponse) {
	m.mu.Lock()
	m.responses = append(m.responses, r)
	m.mu.Unlock()
}

// CallCount returns how many requests reached Generate.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
