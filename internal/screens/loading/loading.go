// Package loading shows a spinner and rotating status lines while the
// gateway works.
package loading

import (
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindspark/internal/screen"
	"github.com/abhisek/mindspark/internal/ui/layout"
	"github.com/abhisek/mindspark/internal/ui/theme"
)

// RotateInterval is how long each status line stays up.
const RotateInterval = 2500 * time.Millisecond

type rotateMsg struct{}

// LoadingScreen is shown in LoadingQuestions and Analyzing.
type LoadingScreen struct {
	title    string
	messages []string
	index    int
	spinner  spinner.Model
}

var _ screen.Screen = (*LoadingScreen)(nil)
var _ screen.KeyHintProvider = (*LoadingScreen)(nil)

// New creates a loading screen cycling through messages.
func New(title string, messages []string) *LoadingScreen {
	return &LoadingScreen{
		title:    title,
		messages: messages,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
}

func rotate() tea.Cmd {
	return tea.Tick(RotateInterval, func(time.Time) tea.Msg { return rotateMsg{} })
}

func (s *LoadingScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, rotate())
}

func (s *LoadingScreen) Title() string {
	return s.title
}

func (s *LoadingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Cancel"},
	}
}

// Message returns the status line currently shown.
func (s *LoadingScreen) Message() string {
	if len(s.messages) == 0 {
		return ""
	}
	return s.messages[s.index%len(s.messages)]
}

func (s *LoadingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case rotateMsg:
		s.index++
		return s, rotate()

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, screen.Send(screen.HomeMsg{})
		}
	}
	return s, nil
}

func (s *LoadingScreen) View(width, height int) string {
	line := s.spinner.View() + " " + lipgloss.NewStyle().Foreground(theme.Text).Render(s.Message())
	hint := theme.Hint.Render("This usually takes a few seconds.")
	content := lipgloss.JoinVertical(lipgloss.Center, theme.Title.Render(s.title), "", line, "", hint)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
