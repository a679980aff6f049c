// Package authform is the login and signup form.
package authform

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindspark/internal/screen"
	"github.com/abhisek/mindspark/internal/ui/components"
	"github.com/abhisek/mindspark/internal/ui/layout"
	"github.com/abhisek/mindspark/internal/ui/theme"
)

const formWidth = 44

// Form collects credentials and emits screen.SubmitAuthMsg. Rejections
// come back as screen.AuthErrorMsg and are shown inline.
type Form struct {
	mode   screen.AuthMode
	inputs []components.TextInput
	focus  int // index into inputs, then submit, then the switch link
	errMsg string
	busy   bool
}

var _ screen.Screen = (*Form)(nil)
var _ screen.KeyHintProvider = (*Form)(nil)

// New creates the form for mode. Signup asks for a name as well.
func New(mode screen.AuthMode) *Form {
	var inputs []components.TextInput
	if mode == screen.ModeSignup {
		inputs = append(inputs, components.NewTextInput("Full name", "Ada Lovelace", false, 64))
	}
	inputs = append(inputs,
		components.NewTextInput("Email", "you@school.edu", false, 128),
		components.NewTextInput("Password", "••••••••", true, 72),
	)
	return &Form{mode: mode, inputs: inputs}
}

// Mode reports whether this is the login or signup form.
func (f *Form) Mode() screen.AuthMode { return f.mode }

// Err returns the inline error, if any.
func (f *Form) Err() string { return f.errMsg }

func (f *Form) submitIndex() int { return len(f.inputs) }
func (f *Form) linkIndex() int   { return len(f.inputs) + 1 }

func (f *Form) Init() tea.Cmd {
	return f.setFocus(0)
}

func (f *Form) Title() string {
	if f.mode == screen.ModeSignup {
		return "Create an account"
	}
	return "Welcome back"
}

func (f *Form) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (f *Form) setFocus(i int) tea.Cmd {
	n := f.linkIndex() + 1
	f.focus = ((i % n) + n) % n
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

func (f *Form) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.AuthErrorMsg:
		f.busy = false
		f.errMsg = msg.Message
		return f, nil

	case tea.KeyMsg:
		if f.busy {
			return f, nil
		}
		switch msg.String() {
		case "esc":
			return f, screen.Send(screen.HomeMsg{})
		case "tab", "down":
			return f, f.setFocus(f.focus + 1)
		case "shift+tab", "up":
			return f, f.setFocus(f.focus - 1)
		case "enter":
			switch {
			case f.focus == f.linkIndex():
				if f.mode == screen.ModeSignup {
					return f, screen.Send(screen.ShowLoginMsg{})
				}
				return f, screen.Send(screen.ShowSignupMsg{})
			case f.focus == f.submitIndex(), f.focus == len(f.inputs)-1:
				return f, f.submit()
			default:
				return f, f.setFocus(f.focus + 1)
			}
		}
	}

	if f.focus < len(f.inputs) {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return f, cmd
	}
	return f, nil
}

func (f *Form) value(label string) string {
	for _, in := range f.inputs {
		if in.Label == label {
			return in.Value()
		}
	}
	return ""
}

func (f *Form) submit() tea.Cmd {
	m := screen.SubmitAuthMsg{
		Mode:     f.mode,
		Name:     strings.TrimSpace(f.value("Full name")),
		Email:    strings.TrimSpace(f.value("Email")),
		Password: f.value("Password"),
	}
	switch {
	case f.mode == screen.ModeSignup && m.Name == "":
		f.errMsg = "Please enter your name."
		return nil
	case m.Email == "" || m.Password == "":
		f.errMsg = "Email and password are required."
		return nil
	}
	f.errMsg = ""
	f.busy = true
	return screen.Send(m)
}

func (f *Form) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Render(f.Title()))
	sub := "Log in to see your saved reports."
	if f.mode == screen.ModeSignup {
		sub = "Save every report and track how you grow."
	}
	sections = append(sections, theme.Subtitle.Render(sub), "")

	for _, in := range f.inputs {
		sections = append(sections, in.View(), "")
	}

	label := "Log in"
	if f.mode == screen.ModeSignup {
		label = "Sign up"
	}
	if f.busy {
		label = "Please wait..."
	}
	sections = append(sections, components.Button(label, f.focus == f.submitIndex()))

	if f.errMsg != "" {
		sections = append(sections, "", theme.ErrorText.Render(f.errMsg))
	}

	link := "Don't have an account? Sign up"
	if f.mode == screen.ModeSignup {
		link = "Already have an account? Log in"
	}
	linkStyle := theme.Hint
	if f.focus == f.linkIndex() {
		linkStyle = theme.Selected.Underline(true)
	}
	sections = append(sections, "", linkStyle.Render(link))

	card := theme.Card.Width(formWidth).Render(strings.Join(sections, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
