package components

import "github.com/abhisek/mindspark/internal/ui/theme"

// Button renders a one-line button. Focused buttons use the accent style.
func Button(label string, focused bool) string {
	if focused {
		return theme.ButtonActive.Render("▸ " + label)
	}
	return theme.ButtonInactive.Render("  " + label)
}
