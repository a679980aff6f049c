// Package failure is the error screen shown when a gateway call fails.
package failure

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindspark/internal/screen"
	"github.com/abhisek/mindspark/internal/ui/components"
	"github.com/abhisek/mindspark/internal/ui/layout"
	"github.com/abhisek/mindspark/internal/ui/theme"
)

// FailureScreen shows a user-facing message and a Try Again button.
type FailureScreen struct {
	message string
}

var _ screen.Screen = (*FailureScreen)(nil)
var _ screen.KeyHintProvider = (*FailureScreen)(nil)

func New(message string) *FailureScreen {
	return &FailureScreen{message: message}
}

func (s *FailureScreen) Init() tea.Cmd { return nil }

func (s *FailureScreen) Title() string { return "Something went wrong" }

func (s *FailureScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Try again"},
	}
}

func (s *FailureScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "r", "esc":
			return s, screen.Send(screen.TryAgainMsg{})
		}
	}
	return s, nil
}

func (s *FailureScreen) View(width, height int) string {
	icon := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("✗")
	msg := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(min(width-8, 56)).
		Align(lipgloss.Center).
		Render(s.message)
	content := lipgloss.JoinVertical(lipgloss.Center,
		icon, "", msg, "",
		components.Button("Try Again", true),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
