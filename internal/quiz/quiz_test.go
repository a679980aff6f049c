package quiz

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	r := &Result{Traits: []TraitScore{
		{Trait: "Openness", Score: 120, FullMark: 100},
		{Trait: "Focus", Score: -5, FullMark: 100},
		{Trait: "Empathy", Score: 70},
		{Trait: "Grit", Score: 40, FullMark: 50},
	}}
	r.Normalize()

	want := []TraitScore{
		{Trait: "Openness", Score: 100, FullMark: 100},
		{Trait: "Focus", Score: 0, FullMark: 100},
		{Trait: "Empathy", Score: 70, FullMark: 100},
		{Trait: "Grit", Score: 40, FullMark: 50},
	}
	for i, w := range want {
		if r.Traits[i] != w {
			t.Errorf("trait %d = %+v, want %+v", i, r.Traits[i], w)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		ts   TraitScore
		want float64
	}{
		{TraitScore{Score: 50, FullMark: 100}, 0.5},
		{TraitScore{Score: 25, FullMark: 50}, 0.5},
		{TraitScore{Score: 10}, 0},
	}
	for _, tt := range tests {
		if got := tt.ts.Percent(); got != tt.want {
			t.Errorf("Percent(%+v) = %v, want %v", tt.ts, got, tt.want)
		}
	}
}

func TestNewAnswer(t *testing.T) {
	q := Question{ID: 3, Text: "Group project deadline?", Options: []Option{{ID: "a", Text: "Plan early", Trait: "Judging"}}}
	a := NewAnswer(q, q.Options[0])
	want := Answer{QuestionID: 3, QuestionText: "Group project deadline?", SelectedOptionText: "Plan early", SelectedTrait: "Judging"}
	if a != want {
		t.Fatalf("NewAnswer = %+v, want %+v", a, want)
	}
}

func TestSavedResultJSONIsFlat(t *testing.T) {
	s := SavedResult{
		Result: Result{Archetype: "The Architect", Strengths: []string{"Planning"}},
		ID:     "r1",
		Date:   "2026-01-02T03:04:05Z",
	}
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"archetype", "strengths", "id", "date", "studyTips", "careerPaths"} {
		if _, ok := m[k]; !ok {
			t.Errorf("expected top-level key %q in %s", k, b)
		}
	}
	if got := s.Time(); !got.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("Time() = %v", got)
	}
}

func TestShareText(t *testing.T) {
	r := Result{Archetype: "The Explorer", Tagline: "Curiosity first."}
	got := r.ShareText()
	if !strings.Contains(got, `"The Explorer"`) || !strings.HasSuffix(got, "Curiosity first.") {
		t.Fatalf("unexpected share text %q", got)
	}
}
