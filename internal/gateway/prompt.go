package gateway

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/mindspark/internal/quiz"
)

const systemPrompt = `You are an expert educational psychologist. Create a detailed student personality assessment inspired by the Big Five and MBTI.

Rules:
- Write in plain text. No markdown, no HTML.
- Every option must carry a one word trait label.
- Keep each question self-contained and answerable without outside context.`

// dimensions are the axes the question set must cover.
var dimensions = []string{
	"Energy (Introverted/Extraverted)",
	"Mind (Intuitive/Observant)",
	"Nature (Thinking/Feeling)",
	"Tactics (Judging/Prospecting)",
}

// scenarios anchor the questions in student life.
var scenarios = []string{
	"dorm living",
	"study groups",
	"exam pressure",
	"parties",
	"club leadership",
}

func buildQuestionsMessage(count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d engaging, scenario-based multiple choice questions designed to assess a student's personality. ", count)
	b.WriteString("Draw inspiration from the 16Personalities framework (MBTI), covering these dimensions:\n")
	for _, d := range dimensions {
		fmt.Fprintf(&b, "- %s\n", d)
	}
	fmt.Fprintf(&b, "Scenarios should be highly relevant to student life: %s.\n", strings.Join(scenarios, ", "))
	fmt.Fprintf(&b, "Number the questions 1 to %d. Give each question 4 options.", count)
	return b.String()
}

func buildAnalysisMessage(answers []quiz.Answer) (string, error) {
	payload, err := json.MarshalIndent(answers, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode answers: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the following %d student quiz answers (based on a 16-personalities style assessment) and generate a comprehensive personality profile. ", len(answers))
	b.WriteString("Determine their archetype (e.g., similar to INTJ, ESFP, etc., but give it a creative student-centric name like 'The Midnight Philosopher' or 'The Campus Catalyst').\n\n")
	b.WriteString("Answers:\n")
	b.Write(payload)
	b.WriteString("\n\nProvide deep insights into their learning psychology, potential pitfalls, social dynamics, and ideal career paths. ")
	b.WriteString("Score 5 to 6 traits from 0 to 100 with fullMark 100.")
	return b.String(), nil
}
