package llm

import (
	"regexp"
	"strings"
)

// ModelCost is list pricing in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of one call.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1e6
}

// LookupCost returns pricing for a model ID as reported by a provider, or
// nil when the model is unknown. OpenRouter vendor prefixes ("google/")
// and dated snapshot suffixes are ignored.
func LookupCost(modelID string) *ModelCost {
	id := normalizeModelID(modelID)
	if id == "" {
		return nil
	}
	if c, ok := modelCosts[id]; ok {
		return &c
	}
	return nil
}

var snapshotSuffix = regexp.MustCompile(`-(\d{8}|\d{4}-\d{2}-\d{2}|latest|preview-\d{2}-\d{2}|preview-\d{2}-\d{4})$`)

func normalizeModelID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		id = id[i+1:]
	}
	id = strings.TrimPrefix(id, "models/")
	return snapshotSuffix.ReplaceAllString(id, "")
}

// modelCosts lists the models the gateway is likely to run against,
// keyed by normalized ID. Prices as published by each vendor, Feb 2026.
var modelCosts = map[string]ModelCost{
	"gemini-3-pro-preview":   {2, 12},
	"gemini-3-flash-preview": {0.5, 3},
	"gemini-2.5-pro":         {1.25, 10},
	"gemini-2.5-flash":       {0.3, 2.5},
	"gemini-2.5-flash-lite":  {0.1, 0.4},
	"gemini-2.0-flash":       {0.1, 0.4},
	"gemini-2.0-flash-lite":  {0.075, 0.3},
	"gemini-flash":           {0.3, 2.5},
	"gemini-flash-lite":      {0.1, 0.4},

	"claude-opus-4-5":   {5, 25},
	"claude-opus-4-1":   {15, 75},
	"claude-sonnet-4-5": {3, 15},
	"claude-sonnet-4":   {3, 15},
	"claude-haiku-4-5":  {1, 5},
	"claude-3-5-haiku":  {0.8, 4},

	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-5":        {1.25, 10},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.4},
	"o4-mini":      {1.1, 4.4},
}
