package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/mindspark/internal/store"
)

// LoggingProvider stores each provider round trip in the request log and
// writes one slog line per attempt.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
	logger    *slog.Logger
}

// WithLogging wraps p. repo and logger may be nil.
func WithLogging(p Provider, providerName string, repo store.EventRepo, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LoggingProvider{inner: p, provider: providerName, eventRepo: repo, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	call := callFrom(ctx)
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       modelFor(req, l.inner.ModelID(), nil),
		Purpose:     call.purpose,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}

	log := l.logger.With(
		"purpose", ev.Purpose,
		"call_id", call.id,
		"attempt", attemptFrom(ctx),
		"model", ev.Model,
		"latency_ms", ev.LatencyMs,
	)
	if err != nil {
		ev.ErrorMessage = err.Error()
		log.Warn("llm request failed", "err", err)
	} else {
		log.Info("llm request", "input_tokens", ev.InputTokens, "output_tokens", ev.OutputTokens)
	}

	// The request log outlives a cancelled call.
	if l.eventRepo != nil {
		if rerr := l.eventRepo.AppendLLMRequest(context.WithoutCancel(ctx), ev); rerr != nil {
			l.logger.Warn("record llm request", "err", rerr)
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// transcript renders req as the plain-text body shown by `mindspark llm view`.
func transcript(req Request) string {
	var b strings.Builder
	section := func(label, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", label, body)
	}
	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		section(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
