package gateway

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/abhisek/mindspark/internal/quiz"
)

// strict strips every tag. A policy is safe for concurrent use once built.
var strict = bluemonday.StrictPolicy()

// cleanText removes markup from model text and decodes the entities the
// policy leaves behind, so "Tom &amp; Jerry" renders as "Tom & Jerry".
func cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if c := cleanText(it); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func cleanQuestion(q *quiz.Question) {
	q.Text = cleanText(q.Text)
	for i := range q.Options {
		o := &q.Options[i]
		o.ID = cleanText(o.ID)
		o.Text = cleanText(o.Text)
		o.Trait = cleanText(o.Trait)
	}
}

func cleanResult(r *quiz.Result) {
	r.Archetype = cleanText(r.Archetype)
	r.Tagline = cleanText(r.Tagline)
	r.Description = cleanText(r.Description)
	r.Strengths = cleanList(r.Strengths)
	r.Weaknesses = cleanList(r.Weaknesses)
	r.StudyTips = cleanList(r.StudyTips)
	r.CareerPaths = cleanList(r.CareerPaths)
	for i := range r.Traits {
		r.Traits[i].Trait = cleanText(r.Traits[i].Trait)
	}
}
