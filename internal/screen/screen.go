package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindspark/internal/quiz"
	"github.com/abhisek/mindspark/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Screens never change application state themselves. They emit the
// messages below and the app applies them to the state machine.

// AuthMode selects the login or signup form.
type AuthMode int

const (
	ModeLogin AuthMode = iota
	ModeSignup
)

// StartQuizMsg asks for a new quiz.
type StartQuizMsg struct{}

// SelectOptionMsg answers the current question.
type SelectOptionMsg struct {
	Index int
}

// SubmitAuthMsg submits the login or signup form.
type SubmitAuthMsg struct {
	Mode     AuthMode
	Name     string
	Email    string
	Password string
}

// AuthErrorMsg reports a rejected login or signup back to the form.
type AuthErrorMsg struct {
	Message string
}

// ShowLoginMsg opens the login form.
type ShowLoginMsg struct{}

// ShowSignupMsg opens the signup form.
type ShowSignupMsg struct{}

// ViewHistoryMsg opens a saved result.
type ViewHistoryMsg struct {
	Saved quiz.SavedResult
}

// RetakeMsg leaves a result screen.
type RetakeMsg struct{}

// TryAgainMsg leaves the error screen.
type TryAgainMsg struct{}

// HomeMsg returns to the dashboard, or the intro for guests.
type HomeMsg struct{}

// LogoutMsg ends the session.
type LogoutMsg struct{}

// Send wraps a message in a command.
func Send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
