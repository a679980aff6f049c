package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model  string
		want   *ModelCost
		reason string
	}{
		{"gemini-3-pro-preview", &ModelCost{2, 12}, "exact"},
		{"google/gemini-2.5-flash", &ModelCost{0.3, 2.5}, "openrouter vendor prefix"},
		{"claude-haiku-4-5-20251001", &ModelCost{1, 5}, "dated snapshot"},
		{"gpt-4o-2024-08-06", &ModelCost{2.5, 10}, "iso dated snapshot"},
		{"gemini-2.5-flash-preview-09-2025", &ModelCost{0.3, 2.5}, "preview snapshot"},
		{"models/gemini-flash-latest", &ModelCost{0.3, 2.5}, "models/ prefix and latest alias"},
		{"some-local-model", nil, "unknown"},
		{"", nil, "empty"},
	}
	for _, tt := range tests {
		got := LookupCost(tt.model)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("%s: LookupCost(%q) = %+v, want nil", tt.reason, tt.model, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("%s: LookupCost(%q) = %v, want %+v", tt.reason, tt.model, got, *tt.want)
		}
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 2, OutputPerMTok: 12}
	got := c.Cost(500_000, 100_000)
	if math.Abs(got-2.2) > 1e-9 {
		t.Fatalf("Cost = %v, want 2.2", got)
	}
}
