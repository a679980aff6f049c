// Package gateway turns LLM calls into quiz questions and personality
// reports. Both calls request native structured output, validate it
// against a compiled schema and strip any markup from the model's text.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/abhisek/mindspark/internal/llm"
	"github.com/abhisek/mindspark/internal/quiz"
)

// Purpose labels recorded in the LLM request log.
const (
	PurposeQuestions = "quiz-questions"
	PurposeAnalysis  = "personality-analysis"
)

const (
	opQuestions = "generate questions"
	opAnalysis  = "analyze personality"
)

// Gateway produces quiz content from an LLM.
type Gateway interface {
	// GenerateQuestions returns a fresh question set, in display order.
	GenerateQuestions(ctx context.Context) ([]quiz.Question, error)

	// AnalyzePersonality turns the ordered answers into a report.
	AnalyzePersonality(ctx context.Context, answers []quiz.Answer) (*quiz.Result, error)
}

// LLMGateway implements Gateway using an llm.Provider. It never retries;
// retry policy belongs to the provider stack.
type LLMGateway struct {
	provider llm.Provider
	config   Config
	logger   *slog.Logger
}

// New creates an LLMGateway. A nil logger discards output.
func New(provider llm.Provider, cfg Config, logger *slog.Logger) *LLMGateway {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = DefaultConfig().QuestionCount
	}
	return &LLMGateway{provider: provider, config: cfg, logger: logger}
}

type questionsOutput struct {
	Questions []quiz.Question `json:"questions"`
}

// GenerateQuestions asks for Config.QuestionCount scenario questions.
func (g *LLMGateway) GenerateQuestions(ctx context.Context) ([]quiz.Question, error) {
	ctx = llm.WithPurpose(ctx, PurposeQuestions)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuestionsMessage(g.config.QuestionCount)},
		},
		Model:       g.config.QuestionModel,
		Schema:      QuestionSchema,
		MaxTokens:   g.config.QuestionMaxTokens,
		Temperature: g.config.Temperature,
	}

	var out questionsOutput
	if err := g.call(ctx, opQuestions, req, &out); err != nil {
		return nil, err
	}

	qs, err := checkQuestions(out.Questions)
	if err != nil {
		g.logger.Warn("rejected question set", "err", err)
		return nil, malformed(opQuestions, err)
	}

	g.logger.Info("questions generated", "count", len(qs))
	return qs, nil
}

// AnalyzePersonality sends the answers and returns the normalized report.
func (g *LLMGateway) AnalyzePersonality(ctx context.Context, answers []quiz.Answer) (*quiz.Result, error) {
	ctx = llm.WithPurpose(ctx, PurposeAnalysis)

	msg, err := buildAnalysisMessage(answers)
	if err != nil {
		return nil, err
	}

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: msg},
		},
		Model:       g.config.AnalysisModel,
		Schema:      AnalysisSchema,
		MaxTokens:   g.config.AnalysisMaxTokens,
		Temperature: g.config.Temperature,
	}

	var result quiz.Result
	if err := g.call(ctx, opAnalysis, req, &result); err != nil {
		return nil, err
	}

	cleanResult(&result)
	if result.Archetype == "" {
		return nil, malformed(opAnalysis, errors.New("archetype is blank"))
	}
	result.Normalize()

	g.logger.Info("personality analyzed", "archetype", result.Archetype, "traits", len(result.Traits))
	return &result, nil
}

// call runs req and decodes the conformed payload into out.
func (g *LLMGateway) call(ctx context.Context, op string, req llm.Request, out any) error {
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return g.fail(op, err)
	}

	// Providers conform their own output; a second pass is a no-op for
	// them and covers ones that return raw text.
	doc, err := llm.Conform(req.Schema, resp.Content)
	if err != nil {
		return g.fail(op, err)
	}

	if err := json.Unmarshal(doc, out); err != nil {
		return g.fail(op, err)
	}
	return nil
}

func (g *LLMGateway) fail(op string, err error) error {
	classified := classify(op, err)
	if errors.Is(classified, context.Canceled) {
		g.logger.Info("llm call cancelled", "op", op)
	} else {
		g.logger.Error("llm call failed", "op", op, "err", err)
	}
	return classified
}

// checkQuestions cleans qs and rejects sets the quiz cannot display.
// Option IDs are filled in and question IDs renumbered when the model
// leaves them blank or duplicated.
func checkQuestions(qs []quiz.Question) ([]quiz.Question, error) {
	if len(qs) == 0 {
		return nil, errors.New("no questions")
	}

	seen := make(map[int]bool, len(qs))
	renumber := false
	for i := range qs {
		q := &qs[i]
		cleanQuestion(q)
		if q.Text == "" {
			return nil, fmt.Errorf("question %d has no text", i+1)
		}
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("question %d has %d options", i+1, len(q.Options))
		}
		for j := range q.Options {
			o := &q.Options[j]
			if o.Text == "" {
				return nil, fmt.Errorf("question %d option %d has no text", i+1, j+1)
			}
			if o.ID == "" {
				o.ID = string(rune('a' + j))
			}
		}
		if q.ID <= 0 || seen[q.ID] {
			renumber = true
		}
		seen[q.ID] = true
	}

	if renumber {
		for i := range qs {
			qs[i].ID = i + 1
		}
	}
	return qs, nil
}
