// Package theme defines the colours and lipgloss styles shared by every
// screen.
package theme

import "charm.land/lipgloss/v2"

var (
	Primary   = lipgloss.Color("#8B5CF6")
	Secondary = lipgloss.Color("#22D3EE")
	Accent    = lipgloss.Color("#FBBF24")
	Error     = lipgloss.Color("#F87171")
	Text      = lipgloss.Color("#F1F5F9")
	TextDim   = lipgloss.Color("#8892A6")
	BgDark    = lipgloss.Color("#111827")
	Border    = lipgloss.Color("#374151")
)

var plain = lipgloss.NewStyle()

// Text styles.
var (
	Body     = plain.Foreground(Text)
	Hint     = plain.Foreground(TextDim).Italic(true)
	Heading  = plain.Foreground(Secondary).Bold(true)
	Title    = plain.Foreground(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle = plain.Foreground(TextDim).Align(lipgloss.Center)

	ErrorText = plain.Foreground(Error).Bold(true)
	Warning   = plain.Foreground(Accent)
)

// Boxes.
var (
	Card       = plain.Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 2)
	ActiveCard = Card.BorderForeground(Primary)
	Badge      = plain.Foreground(BgDark).Background(Accent).Bold(true).Padding(0, 1)
)

// Answer options: the row under the cursor, the others, and the one
// just picked while the quiz moves on.
var (
	Selected   = plain.Foreground(Primary).Bold(true)
	Unselected = Body
	Chosen     = plain.Foreground(BgDark).Background(Secondary).Bold(true)
)

var (
	ProgressFilled = plain.Background(Primary)
	ProgressEmpty  = plain.Background(Border)

	ButtonActive   = plain.Foreground(Text).Background(Primary).Bold(true).Padding(0, 2)
	ButtonInactive = Card.Foreground(TextDim)
)
