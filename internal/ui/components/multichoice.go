package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindspark/internal/ui/theme"
)

// MultiChoice is a lettered option list. Options are picked with the
// arrow keys and enter, a number key (1-9), or the option's letter.
type MultiChoice struct {
	Options  []string
	Cursor   int
	Chosen   int  // -1 until an option is picked
	Locked   bool // ignore input, e.g. while the quiz advances
	OnChoose func(index int) tea.Cmd
}

// NewMultiChoice creates a new option list.
func NewMultiChoice(options []string, onChoose func(index int) tea.Cmd) MultiChoice {
	return MultiChoice{
		Options:  options,
		Chosen:   -1,
		OnChoose: onChoose,
	}
}

// Label returns the letter shown before option i.
func Label(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Locked {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "shift+tab":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case "down", "tab":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
		return m, nil
	case "enter", "space":
		return m.choose(m.Cursor)
	}

	if idx, ok := hotkey(key); ok && idx < len(m.Options) {
		return m.choose(idx)
	}
	return m, nil
}

func hotkey(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	switch {
	case c >= '1' && c <= '9':
		return int(c - '1'), true
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	}
	return 0, false
}

func (m MultiChoice) choose(i int) (MultiChoice, tea.Cmd) {
	if i < 0 || i >= len(m.Options) {
		return m, nil
	}
	m.Cursor = i
	m.Chosen = i
	if m.OnChoose == nil {
		return m, nil
	}
	return m, m.OnChoose(i)
}

// View renders the options, wrapping long text to width.
func (m MultiChoice) View(width int) string {
	textWidth := width - 8
	if textWidth < 20 {
		textWidth = 20
	}

	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && m.Chosen < 0 {
			prefix = "▸ "
		}
		body := lipgloss.NewStyle().Width(textWidth).Render(opt)
		line := lipgloss.JoinHorizontal(lipgloss.Top, fmt.Sprintf("%s%s)  ", prefix, Label(i)), body)

		switch {
		case i == m.Chosen:
			b.WriteString(theme.Chosen.Render(line))
		case m.Chosen >= 0:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(line))
		case i == m.Cursor:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
