// Package question renders one quiz question and its options.
package question

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindspark/internal/quiz"
	"github.com/abhisek/mindspark/internal/screen"
	"github.com/abhisek/mindspark/internal/ui/components"
	"github.com/abhisek/mindspark/internal/ui/layout"
	"github.com/abhisek/mindspark/internal/ui/theme"
)

// QuestionScreen shows question index+1 of total. Picking an option locks
// the screen and emits screen.SelectOptionMsg; the app replaces the screen
// when the quiz advances.
type QuestionScreen struct {
	question quiz.Question
	index    int
	total    int
	choice   components.MultiChoice
}

var _ screen.Screen = (*QuestionScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionScreen)(nil)

// New creates the screen for q at zero-based position index.
func New(q quiz.Question, index, total int) *QuestionScreen {
	opts := make([]string, len(q.Options))
	for i, o := range q.Options {
		opts[i] = o.Text
	}
	return &QuestionScreen{
		question: q,
		index:    index,
		total:    total,
		choice: components.NewMultiChoice(opts, func(i int) tea.Cmd {
			return screen.Send(screen.SelectOptionMsg{Index: i})
		}),
	}
}

func (s *QuestionScreen) Init() tea.Cmd {
	return nil
}

func (s *QuestionScreen) Title() string {
	return fmt.Sprintf("Question %d of %d", s.index+1, s.total)
}

func (s *QuestionScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Choose"},
		{Key: fmt.Sprintf("A-%s", components.Label(len(s.question.Options)-1)), Description: "Quick pick"},
		{Key: "Esc", Description: "Quit quiz"},
	}
}

// Chosen returns the picked option index, or -1.
func (s *QuestionScreen) Chosen() int {
	return s.choice.Chosen
}

func (s *QuestionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	if kmsg.String() == "esc" {
		return s, screen.Send(screen.HomeMsg{})
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if s.choice.Chosen >= 0 {
		s.choice.Locked = true
	}
	return s, cmd
}

func (s *QuestionScreen) View(width, height int) string {
	inner := min(width-6, 80)

	label := fmt.Sprintf("Question %d of %d", s.index+1, s.total)
	var percent float64
	if s.total > 0 {
		percent = float64(s.index+1) / float64(s.total)
	}
	bar := components.NewProgressBar(label, percent, true, inner).View()

	text := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(inner - 4).Render(s.question.Text)
	card := theme.Card.Width(inner).Render(text)

	sections := []string{bar, "", card, "", s.choice.View(inner)}
	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
