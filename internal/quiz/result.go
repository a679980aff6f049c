package quiz

import (
	"fmt"
	"time"
)

// DefaultFullMark is the maximum trait score when the model omits one.
const DefaultFullMark = 100

// Normalize clamps trait scores into [0, FullMark] and fills in a missing
// FullMark. It returns r for chaining.
func (r *Result) Normalize() *Result {
	for i := range r.Traits {
		t := &r.Traits[i]
		if t.FullMark <= 0 {
			t.FullMark = DefaultFullMark
		}
		t.Score = max(0, min(t.Score, t.FullMark))
	}
	return r
}

// Percent returns the score as a fraction of FullMark in [0, 1].
func (t TraitScore) Percent() float64 {
	if t.FullMark <= 0 {
		return 0
	}
	return float64(t.Score) / float64(t.FullMark)
}

// ShareText is the one-line brag shown under a result.
func (r Result) ShareText() string {
	return fmt.Sprintf("I just discovered my student archetype is %q on MindSpark! %s", r.Archetype, r.Tagline)
}

// Time parses Date. A malformed date yields the zero time.
func (s SavedResult) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, s.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}
