package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindspark/internal/ui/theme"
)

// ProgressBar is a labelled horizontal bar for quiz progress and trait
// scores.
type ProgressBar struct {
	Label       string
	Percent     float64 // 0..1, clamped when rendered
	ShowPercent bool
	Width       int
}

// NewProgressBar returns a bar filling width cells including its label.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

// View renders the bar on one line.
func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(theme.Body.Render(p.Label))
		b.WriteString("  ")
	}

	pct := min(max(p.Percent, 0), 1)
	suffix := ""
	if p.ShowPercent {
		suffix = fmt.Sprintf("  %3d%%", int(pct*100+0.5))
	}

	cells := max(p.Width-lipgloss.Width(b.String())-len(suffix), 4)
	filled := int(float64(cells) * pct)

	b.WriteString(theme.ProgressFilled.Render(strings.Repeat(" ", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat(" ", cells-filled)))
	if suffix != "" {
		b.WriteString(theme.Hint.Render(suffix))
	}
	return b.String()
}
