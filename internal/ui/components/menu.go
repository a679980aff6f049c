package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindspark/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Key is an optional single-key
// shortcut shown next to the label.
type MenuItem struct {
	Label  string
	Key    string
	Choose func() tea.Cmd
}

// Menu is a vertical list of actions. The cursor wraps at both ends.
type Menu struct {
	Items  []MenuItem
	Cursor int
}

// NewMenu returns a menu with the cursor on the first item.
func NewMenu(items ...MenuItem) Menu {
	return Menu{Items: items}
}

// Update moves the cursor or runs an item.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch k := kmsg.String(); k {
	case "up", "k":
		m.Cursor = (m.Cursor + len(m.Items) - 1) % len(m.Items)
	case "down", "j":
		m.Cursor = (m.Cursor + 1) % len(m.Items)
	case "enter":
		return m, m.run(m.Cursor)
	default:
		for i, item := range m.Items {
			if item.Key != "" && item.Key == k {
				m.Cursor = i
				return m, m.run(i)
			}
		}
	}
	return m, nil
}

func (m Menu) run(i int) tea.Cmd {
	if fn := m.Items[i].Choose; fn != nil {
		return fn()
	}
	return nil
}

// View renders one item per line.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		hint := ""
		if item.Key != "" {
			hint = theme.Hint.Render("  (" + item.Key + ")")
		}
		if i == m.Cursor {
			b.WriteString(theme.Selected.Render("▸ " + item.Label))
		} else {
			b.WriteString(theme.Unselected.Render("  " + item.Label))
		}
		b.WriteString(hint)
		b.WriteString("\n")
	}
	return b.String()
}
