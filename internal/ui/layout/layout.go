// Package layout draws the frame around every screen: a bordered header
// with the brand and greeting, the content area, and a footer of key
// hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindspark/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20

	// CompactHeightThreshold is the height below which screens drop
	// decorative sections.
	CompactHeightThreshold = 28

	// Brand is the product name shown in the header.
	Brand = "✦ MindSpark"
)

// KeyHint is one entry in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactHeight reports whether screens should use their short layout.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small!\n\nPlease resize to at least %d x %d\n\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Body.Render(msg))
}

var bar = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// RenderHeader shows the brand, the screen title centred, and "Hello,
// <name>" or "Guest" on the right.
func RenderHeader(title, userName string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" " + Brand)
	center := theme.Body.Render(title)
	right := theme.Hint.Render("Guest")
	if userName != "" {
		right = lipgloss.NewStyle().Foreground(theme.Secondary).Render("Hello, " + userName)
	}

	inner := max(width-4, 0)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	gapL := max((inner-cw)/2-lw, 1)
	gapR := max(inner-lw-gapL-cw-rw, 1)

	line := left + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + right
	return bar.Width(width).Render(line)
}

// RenderFooter lists key hints, dropping trailing ones that do not fit.
func RenderFooter(hints []KeyHint, width int) string {
	const sep = "   "
	avail := max(width-6, 0)

	var b strings.Builder
	for _, h := range hints {
		part := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) + " " + theme.Hint.Render(h.Description)
		add := part
		if b.Len() > 0 {
			add = sep + part
		}
		if lipgloss.Width(b.String())+lipgloss.Width(add) > avail {
			break
		}
		b.WriteString(add)
	}
	return bar.Width(width).Render(" " + b.String())
}

// RenderFrame stacks header, content and footer, clipping or padding the
// content to the space left between them.
func RenderFrame(header, content, footer string, width, height int) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
