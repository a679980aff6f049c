// Package results renders a personality report, fresh or from history.
package results

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindspark/internal/quiz"
	"github.com/abhisek/mindspark/internal/screen"
	"github.com/abhisek/mindspark/internal/ui/components"
	"github.com/abhisek/mindspark/internal/ui/layout"
	"github.com/abhisek/mindspark/internal/ui/theme"
)

// NotSavedNotice is shown when a fresh result could not be persisted.
const NotSavedNotice = "This report could not be saved to your history."

// Options controls which actions and notices are shown.
type Options struct {
	LoggedIn   bool
	History    *quiz.SavedResult // non-nil for a read-only history view
	SaveFailed bool
}

// ResultsScreen shows the report in a scrollable viewport.
type ResultsScreen struct {
	result quiz.Result
	opts   Options

	vp        viewport.Model
	lastWidth int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates the results screen.
func New(result quiz.Result, opts Options) *ResultsScreen {
	return &ResultsScreen{
		result: result,
		opts:   opts,
		vp:     viewport.New(viewport.WithWidth(80), viewport.WithHeight(20)),
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	if s.opts.History != nil {
		return "Saved report"
	}
	return "Your results"
}

func (s *ResultsScreen) canRetake() bool { return s.opts.History == nil }

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	if s.canRetake() {
		hints = append(hints, layout.KeyHint{Key: "r", Description: "Retake"})
	}
	if s.opts.LoggedIn {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Dashboard"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
	}
	return hints
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "r":
			if s.canRetake() {
				return s, screen.Send(screen.RetakeMsg{})
			}
			return s, nil
		case "esc", "b":
			return s, screen.Send(screen.HomeMsg{})
		}
	}
	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return s, cmd
}

func (s *ResultsScreen) View(width, height int) string {
	w := min(width-4, 90)
	if w != s.lastWidth {
		s.vp.SetContent(s.render(w))
		s.lastWidth = w
	}
	s.vp.SetWidth(w)
	s.vp.SetHeight(max(1, height))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s.vp.View())
}

func section(title string) string {
	return theme.Heading.Render(title)
}

func bullets(items []string, mark string, width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Text).Width(width - 4)
	var lines []string
	for _, it := range items {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, "  "+mark+" ", style.Render(it)))
	}
	return strings.Join(lines, "\n")
}

// traitLabelWidth keeps the bars aligned.
const traitLabelWidth = 16

func (s *ResultsScreen) render(width int) string {
	r := s.result
	var b []string

	if s.opts.History != nil {
		date := "Unknown date"
		if t := s.opts.History.Time(); !t.IsZero() {
			date = t.Local().Format("Jan 2, 2006")
		}
		b = append(b, theme.Hint.Render("Saved on "+date), "")
	}

	b = append(b,
		theme.Hint.Render("Your student archetype"),
		theme.Badge.Render(r.Archetype),
		lipgloss.NewStyle().Foreground(theme.Accent).Italic(true).Width(width).Render(r.Tagline),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Width(width).Render(r.Description),
		"",
		section("Trait profile"),
	)
	for _, t := range r.Traits {
		label := fmt.Sprintf("%-*s", traitLabelWidth, truncate(t.Trait, traitLabelWidth))
		b = append(b, components.NewProgressBar(label, t.Percent(), true, min(width, 60)).View())
	}

	b = append(b, "", section("Strengths"), bullets(r.Strengths, "✓", width))
	b = append(b, "", section("Growth areas"), bullets(r.Weaknesses, "△", width))
	b = append(b, "", section("Study tips"), bullets(r.StudyTips, "•", width))
	b = append(b, "", section("Career paths"), bullets(r.CareerPaths, "→", width))

	b = append(b, "", theme.Card.Width(width).Render(theme.Hint.Render(r.ShareText())))

	if s.opts.SaveFailed && s.opts.History == nil {
		b = append(b, "", theme.Warning.Render("! "+NotSavedNotice))
	}

	var actions []string
	if s.canRetake() {
		actions = append(actions, components.Button("Retake quiz (r)", true))
	}
	if s.opts.LoggedIn {
		if len(actions) > 0 {
			actions = append(actions, "  ")
		}
		actions = append(actions, components.Button("Back to dashboard (esc)", !s.canRetake()))
	}
	if len(actions) > 0 {
		b = append(b, "", lipgloss.JoinHorizontal(lipgloss.Center, actions...))
	}

	return strings.Join(b, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
