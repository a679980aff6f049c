package quiz

// Option is one selectable answer to a Question.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`

	// Trait is a free-text hint (e.g. "Introvert") forwarded to the
	// analysis call. It is never scored locally.
	Trait string `json:"trait"`
}

// Question is a generated scenario question. Options are in display order.
type Question struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Options []Option `json:"options"`
}

// Answer joins a question to the option the user picked.
type Answer struct {
	QuestionID         int    `json:"questionId"`
	QuestionText       string `json:"questionText"`
	SelectedOptionText string `json:"selectedOptionText"`
	SelectedTrait      string `json:"selectedTrait"`
}

// NewAnswer records the choice of opt for q.
func NewAnswer(q Question, opt Option) Answer {
	return Answer{
		QuestionID:         q.ID,
		QuestionText:       q.Text,
		SelectedOptionText: opt.Text,
		SelectedTrait:      opt.Trait,
	}
}

// TraitScore is one axis of the personality profile.
type TraitScore struct {
	Trait    string `json:"trait"`
	Score    int    `json:"score"`
	FullMark int    `json:"fullMark"`
}

// Result is the personality report produced by the analysis call.
type Result struct {
	Archetype   string       `json:"archetype"`
	Tagline     string       `json:"tagline"`
	Description string       `json:"description"`
	Strengths   []string     `json:"strengths"`
	Weaknesses  []string     `json:"weaknesses"`
	StudyTips   []string     `json:"studyTips"`
	CareerPaths []string     `json:"careerPaths"`
	Traits      []TraitScore `json:"traits"`
}

// SavedResult is a Result persisted to a user's history.
type SavedResult struct {
	Result
	ID   string `json:"id"`
	Date string `json:"date"` // RFC 3339, UTC
}
