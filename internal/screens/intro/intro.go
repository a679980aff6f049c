// Package intro is the landing screen for guests.
package intro

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindspark/internal/screen"
	"github.com/abhisek/mindspark/internal/ui/components"
	"github.com/abhisek/mindspark/internal/ui/layout"
	"github.com/abhisek/mindspark/internal/ui/theme"
)

const sparkleInterval = 400 * time.Millisecond

var sparkleFrames = []string{"✦", "✧", "★", "✧"}

var features = []struct{ title, body string }{
	{"AI-generated scenarios", "Twenty fresh situations from school life, written for you."},
	{"Deep analysis", "Your answers become an archetype with strengths and blind spots."},
	{"Track your growth", "Sign in to keep every report and watch how you change."},
}

// MissingKeyWarning is shown when no LLM API key was found.
const MissingKeyWarning = "No API key found. Set GEMINI_API_KEY (or OPENAI_API_KEY, ANTHROPIC_API_KEY) to take the quiz, or MINDSPARK_LLM_PROVIDER=mock for an offline demo."

type tickMsg time.Time

// IntroScreen shows the banner, what the app does and the guest menu.
type IntroScreen struct {
	menu       components.Menu
	keyMissing bool
	tickCount  int
}

var _ screen.Screen = (*IntroScreen)(nil)
var _ screen.KeyHintProvider = (*IntroScreen)(nil)

// New creates the intro screen. keyMissing adds the API key warning.
func New(keyMissing bool) *IntroScreen {
	send := func(msg tea.Msg) func() tea.Cmd {
		return func() tea.Cmd { return screen.Send(msg) }
	}
	menu := components.NewMenu(
		components.MenuItem{Label: "Start the assessment", Key: "s", Choose: send(screen.StartQuizMsg{})},
		components.MenuItem{Label: "Log in", Key: "l", Choose: send(screen.ShowLoginMsg{})},
		components.MenuItem{Label: "Sign up", Key: "u", Choose: send(screen.ShowSignupMsg{})},
		components.MenuItem{Label: "Quit", Key: "q", Choose: func() tea.Cmd { return tea.Quit }},
	)
	return &IntroScreen{
		menu:       menu,
		keyMissing: keyMissing,
	}
}

func tick() tea.Cmd {
	return tea.Tick(sparkleInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *IntroScreen) Init() tea.Cmd {
	return tick()
}

func (s *IntroScreen) Title() string {
	return ""
}

func (s *IntroScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "s", Description: "Start"},
		{Key: "q", Description: "Quit"},
	}
}

func (s *IntroScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		s.tickCount++
		return s, tick()

	case tea.KeyMsg:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *IntroScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, RenderBanner(width), "")

	sparkle := sparkleFrames[s.tickCount%len(sparkleFrames)]
	tagline := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle) + " " +
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Discover your student archetype") + " " +
		lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
	sections = append(sections, tagline, "")

	if !layout.IsCompactHeight(height) {
		for _, f := range features {
			sections = append(sections,
				theme.Heading.Render("• "+f.title)+"  "+theme.Hint.Render(f.body))
		}
		sections = append(sections, "")
	}

	sections = append(sections, s.menu.View())

	if s.keyMissing {
		sections = append(sections, theme.Warning.Width(min(width-4, 72)).Render("! "+MissingKeyWarning))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
