// Package dashboard is the logged-in home screen: stats, actions and the
// list of saved reports.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindspark/internal/auth"
	"github.com/abhisek/mindspark/internal/quiz"
	"github.com/abhisek/mindspark/internal/screen"
	"github.com/abhisek/mindspark/internal/ui/layout"
	"github.com/abhisek/mindspark/internal/ui/theme"
)

// Loader fetches the user's saved results, newest first.
type Loader func(ctx context.Context) ([]quiz.SavedResult, error)

type historyLoadedMsg struct {
	history []quiz.SavedResult
	err     error
}

// cardHeight is the rendered height of one history card including its
// border and the gap after it.
const cardHeight = 5

// DashboardScreen lists actions first, then one row per saved result,
// then Log out.
type DashboardScreen struct {
	name    string
	load    Loader
	history []quiz.SavedResult
	loaded  bool
	errMsg  string
	cursor  int
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates the dashboard for the named user.
func New(name string, load Loader) *DashboardScreen {
	return &DashboardScreen{name: name, load: load}
}

func (s *DashboardScreen) Init() tea.Cmd {
	load := s.load
	return func() tea.Msg {
		h, err := load(context.Background())
		return historyLoadedMsg{history: h, err: err}
	}
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "n", Description: "New assessment"},
		{Key: "o", Description: "Log out"},
	}
}

// rows: 0 = new assessment, 1..len(history) = saved results, last = log out.
func (s *DashboardScreen) rows() int { return len(s.history) + 2 }

func (s *DashboardScreen) logoutRow() int { return s.rows() - 1 }

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = "Could not load your history."
			return s, nil
		}
		s.history = msg.history
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < s.rows()-1 {
				s.cursor++
			}
		case "n":
			return s, screen.Send(screen.StartQuizMsg{})
		case "o":
			return s, screen.Send(screen.LogoutMsg{})
		case "enter":
			switch {
			case s.cursor == 0:
				return s, screen.Send(screen.StartQuizMsg{})
			case s.cursor == s.logoutRow():
				return s, screen.Send(screen.LogoutMsg{})
			default:
				return s, screen.Send(screen.ViewHistoryMsg{Saved: s.history[s.cursor-1]})
			}
		}
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	cardWidth := min(width-4, 76)
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render("Welcome back, " + s.name))
	b.WriteString("\n")

	st := auth.Stats(s.history)
	latest := st.LatestArchetype
	if latest == "" {
		latest = "None yet"
	}
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Total assessments: %d", st.Total)))
	b.WriteString("    ")
	b.WriteString(theme.Hint.Render("Latest archetype: ") + theme.Heading.Render(latest))
	b.WriteString("\n\n")

	b.WriteString(s.actionRow(0, "Start a new assessment"))
	b.WriteString("\n\n")

	b.WriteString(theme.Heading.Render("Your history"))
	b.WriteString("\n")

	switch {
	case s.errMsg != "":
		b.WriteString(theme.ErrorText.Render(s.errMsg))
		b.WriteString("\n")
	case !s.loaded:
		b.WriteString(theme.Hint.Render("Loading history..."))
		b.WriteString("\n")
	case len(s.history) == 0:
		b.WriteString(theme.Hint.Render("No assessments yet. Take your first one to see your archetype here."))
		b.WriteString("\n")
	default:
		used := lipgloss.Height(b.String()) + 3
		visible := max(1, (height-used)/cardHeight)
		first := 0
		if sel := s.cursor - 1; sel >= visible {
			first = sel - visible + 1
		}
		last := min(len(s.history), first+visible)
		if first > 0 {
			b.WriteString(theme.Hint.Render(fmt.Sprintf("  ↑ %d more", first)))
			b.WriteString("\n")
		}
		for i := first; i < last; i++ {
			b.WriteString(s.card(i, cardWidth))
			b.WriteString("\n")
		}
		if rest := len(s.history) - last; rest > 0 {
			b.WriteString(theme.Hint.Render(fmt.Sprintf("  ↓ %d more", rest)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(s.actionRow(s.logoutRow(), "Log out"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (s *DashboardScreen) actionRow(row int, label string) string {
	if s.cursor == row {
		return theme.Selected.Render("▸ " + label)
	}
	return theme.Unselected.Render("  " + label)
}

func (s *DashboardScreen) card(i, width int) string {
	r := s.history[i]

	date := "Unknown date"
	if t := r.Time(); !t.IsZero() {
		date = t.Local().Format("Jan 2, 2006")
	}

	header := theme.Heading.Render(r.Archetype) + "  " + theme.Hint.Render(date)
	lines := []string{header, lipgloss.NewStyle().Foreground(theme.Text).Italic(true).Render(r.Tagline)}
	if tags := StrengthTags(r.Strengths); tags != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).Render(tags))
	}

	style := theme.Card
	if s.cursor == i+1 {
		style = theme.ActiveCard
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

// StrengthTags shows the first two strengths and a "+N" for the rest.
func StrengthTags(strengths []string) string {
	if len(strengths) == 0 {
		return ""
	}
	shown := strengths[:min(2, len(strengths))]
	out := strings.Join(shown, " · ")
	if extra := len(strengths) - len(shown); extra > 0 {
		out += fmt.Sprintf(" · +%d", extra)
	}
	return out
}
