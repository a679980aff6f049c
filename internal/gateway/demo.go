package gateway

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/mindspark/internal/llm"
	"github.com/abhisek/mindspark/internal/quiz"
)

// DemoResponder answers gateway requests with built-in content so the
// app can run offline with MINDSPARK_LLM_PROVIDER=mock. Question sets
// are fixed; the report is derived from the traits the student picked.
func DemoResponder(req llm.Request) llm.MockResponse {
	if req.Schema == nil {
		return llm.MockResponse{Err: &llm.ErrInvalidResponse{Err: fmt.Errorf("demo: request has no schema")}}
	}

	var v any
	switch req.Schema.Name {
	case QuestionSchema.Name:
		v = questionsOutput{Questions: demoQuestions()}
	case AnalysisSchema.Name:
		v = demoReport(demoAnswers(req))
	default:
		return llm.MockResponse{Err: &llm.ErrInvalidResponse{Err: fmt.Errorf("demo: unknown schema %q", req.Schema.Name)}}
	}

	body, err := json.Marshal(v)
	if err != nil {
		return llm.MockResponse{Err: err}
	}
	return llm.MockResponse{Content: body}
}

// demoAxes pairs the two poles of each dimension with scenarios that
// pull between them.
var demoAxes = []struct {
	left, right string
	scenarios   []string
}{
	{"Extraverted", "Introverted", []string{
		"The night before a big exam, your friends invite you to a group study session at the cafe.",
		"A new club is holding its first meeting and you know nobody there.",
		"Your professor asks for a volunteer to present the group project.",
		"It is Friday evening after a long week of lectures.",
		"You get stuck on a tricky problem set question.",
	}},
	{"Intuitive", "Sensing", []string{
		"You start a research essay with a blank page.",
		"A lab experiment gives results nobody expected.",
		"You are picking electives for next semester.",
		"The lecturer spends the class on a theory with no worked examples.",
		"You take notes during a fast-paced lecture.",
	}},
	{"Thinking", "Feeling", []string{
		"Your project partner missed the deadline for their part.",
		"A friend asks for honest feedback on a weak essay draft.",
		"The group must cut one idea from the final presentation.",
		"Two roommates argue over the cleaning rota.",
		"You disagree with the grade you received on an assignment.",
	}},
	{"Judging", "Perceiving", []string{
		"A term paper is due in three weeks.",
		"Your weekend plans fall through at the last minute.",
		"You organise your desk and study materials.",
		"A surprise quiz is announced for tomorrow.",
		"The syllabus changes halfway through the semester.",
	}},
}

func demoQuestions() []quiz.Question {
	var qs []quiz.Question
	for round := 0; round < 5; round++ {
		for _, axis := range demoAxes {
			qs = append(qs, quiz.Question{
				ID:   len(qs) + 1,
				Text: axis.scenarios[round] + " What do you do?",
				Options: []quiz.Option{
					{ID: "a", Text: "Lean fully into the " + strings.ToLower(axis.left) + " way of handling it.", Trait: axis.left},
					{ID: "b", Text: "Mostly " + strings.ToLower(axis.left) + ", with a little caution.", Trait: axis.left},
					{ID: "c", Text: "Mostly " + strings.ToLower(axis.right) + ", after thinking it over.", Trait: axis.right},
					{ID: "d", Text: "Go the " + strings.ToLower(axis.right) + " route without hesitation.", Trait: axis.right},
				},
			})
		}
	}
	return qs
}

// demoAnswers recovers the answer list embedded in the analysis prompt.
func demoAnswers(req llm.Request) []quiz.Answer {
	for _, m := range req.Messages {
		i := strings.Index(m.Content, "Answers:")
		if i < 0 {
			continue
		}
		doc, ok := llm.ExtractJSON(m.Content[i:])
		if !ok {
			continue
		}
		var answers []quiz.Answer
		if json.Unmarshal(doc, &answers) == nil {
			return answers
		}
	}
	return nil
}

var demoArchetypes = map[string]struct{ name, tagline string }{
	"Introverted-Thinking":   {"The Midnight Strategist", "Quiet focus, sharp conclusions."},
	"Introverted-Feeling":    {"The Library Dreamer", "Deep thoughts, deeper empathy."},
	"Extraverted-Thinking":   {"The Campus Commander", "Turns group chaos into a plan."},
	"Extraverted-Feeling":    {"The Study Group Heart", "Nobody gets left behind."},
	"Introverted-Judging":    {"The Syllabus Architect", "Every deadline has a plan."},
	"Extraverted-Perceiving": {"The Campus Catalyst", "Ideas on the move."},
}

func demoReport(answers []quiz.Answer) quiz.Result {
	counts := map[string]int{}
	for _, a := range answers {
		if a.SelectedTrait != "" {
			counts[a.SelectedTrait]++
		}
	}

	perAxis := max(len(answers)/len(demoAxes), 1)
	var traits []quiz.TraitScore
	dominant := make([]string, 0, len(demoAxes))
	for _, axis := range demoAxes {
		l, r := counts[axis.left], counts[axis.right]
		winner, n := axis.left, l
		if r > l {
			winner, n = axis.right, r
		}
		dominant = append(dominant, winner)
		traits = append(traits, quiz.TraitScore{
			Trait:    winner,
			Score:    min(40+60*n/perAxis, quiz.DefaultFullMark),
			FullMark: quiz.DefaultFullMark,
		})
	}
	traits = append(traits, quiz.TraitScore{
		Trait:    "Decisiveness",
		Score:    decisiveness(answers),
		FullMark: quiz.DefaultFullMark,
	})
	sort.SliceStable(traits, func(i, j int) bool { return traits[i].Score > traits[j].Score })

	arch, ok := demoArchetypes[dominant[0]+"-"+dominant[2]]
	if !ok {
		arch, ok = demoArchetypes[dominant[0]+"-"+dominant[3]]
	}
	if !ok {
		arch = struct{ name, tagline string }{"The Curious Explorer", "Always one question further."}
	}

	return quiz.Result{
		Archetype:   arch.name,
		Tagline:     arch.tagline,
		Description: fmt.Sprintf("Across %d answers you leaned %s. This is an offline demo report; connect an API key for a full analysis.", len(answers), strings.Join(dominant, ", ")),
		Strengths:   []string{"Self-awareness", "Consistency under pressure", "Clear study habits"},
		Weaknesses:  []string{"Can over-rely on a favourite approach", "May skip the opposite perspective", "Under-plans for surprises"},
		StudyTips:   []string{"Alternate solo and group sessions", "Summarise each lecture in three bullet points", "Plan reviews a week before exams"},
		CareerPaths: []string{"Research analyst", "Product designer", "Teacher"},
		Traits:      traits,
	}
}

// decisiveness is the share of answers that took an option without
// hedging, as a score out of 100.
func decisiveness(answers []quiz.Answer) int {
	if len(answers) == 0 {
		return quiz.DefaultFullMark / 2
	}
	firm := 0
	for _, a := range answers {
		if strings.HasPrefix(a.SelectedOptionText, "Lean fully") || strings.HasPrefix(a.SelectedOptionText, "Go the") {
			firm++
		}
	}
	return quiz.DefaultFullMark * firm / len(answers)
}
