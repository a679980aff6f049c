package gateway

import "github.com/abhisek/mindspark/internal/llm"

// QuestionSchema is the structured output requested for the question set.
// Some models answer with the bare array, which llm.Conform wraps back
// into the "questions" envelope.
var QuestionSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "A set of scenario-based multiple choice personality questions",
	Envelope:    "questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "integer",
							"description": "1-based position of the question in the set",
						},
						"text": map[string]any{
							"type":        "string",
							"description": "The scenario and question shown to the student",
						},
						"options": map[string]any{
							"type":     "array",
							"minItems": 2,
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"id": map[string]any{
										"type":        "string",
										"description": "Short option key, e.g. a, b, c, d",
									},
									"text": map[string]any{
										"type": "string",
									},
									"trait": map[string]any{
										"type":        "string",
										"description": "One word trait associated with this answer (e.g., Introverted, Sensing, Feeling, Judging)",
									},
								},
								"required":             []any{"id", "text", "trait"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []any{"id", "text", "options"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

func stringList(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"description": desc,
		"items":       map[string]any{"type": "string"},
	}
}

// AnalysisSchema is the structured output requested for the personality
// report.
var AnalysisSchema = &llm.Schema{
	Name:        "personality-analysis",
	Description: "A student personality profile derived from quiz answers",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"archetype": map[string]any{
				"type":        "string",
				"description": "A creative name for the student persona (e.g., The Midnight Scholar)",
			},
			"tagline": map[string]any{
				"type":        "string",
				"description": "A short, catchy slogan for this personality",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "A detailed paragraph describing their learning style",
			},
			"strengths":   stringList("Three key strengths"),
			"weaknesses":  stringList("Three potential pitfalls"),
			"studyTips":   stringList("Three concrete study tips"),
			"careerPaths": stringList("Careers that suit this personality"),
			"traits": map[string]any{
				"type":        "array",
				"description": "Numerical scores for 5-6 key personality dimensions (0-100 scale)",
				"minItems":    5,
				"maxItems":    6,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"trait": map[string]any{
							"type":        "string",
							"description": "Name of the trait (e.g. Creativity, Focus)",
						},
						"score": map[string]any{
							"type":        "integer",
							"description": "Score from 0 to 100",
						},
						"fullMark": map[string]any{
							"type":        "integer",
							"description": "Always 100",
						},
					},
					"required":             []any{"trait", "score", "fullMark"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"archetype", "tagline", "description", "strengths", "weaknesses", "studyTips", "careerPaths", "traits"},
		"additionalProperties": false,
	},
}
