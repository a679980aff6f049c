package intro

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindspark/internal/ui/theme"
)

const bannerArt = ` ███╗   ███╗██╗███╗   ██╗██████╗ ███████╗██████╗  █████╗ ██████╗ ██╗  ██╗
 ████╗ ████║██║████╗  ██║██╔══██╗██╔════╝██╔══██╗██╔══██╗██╔══██╗██║ ██╔╝
 ██╔████╔██║██║██╔██╗ ██║██║  ██║███████╗██████╔╝███████║██████╔╝█████╔╝
 ██║╚██╔╝██║██║██║╚██╗██║██║  ██║╚════██║██╔═══╝ ██╔══██║██╔══██╗██╔═██╗
 ██║ ╚═╝ ██║██║██║ ╚████║██████╔╝███████║██║     ██║  ██║██║  ██║██║  ██╗
 ╚═╝     ╚═╝╚═╝╚═╝  ╚═══╝╚═════╝ ╚══════╝╚═╝     ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝`

const bannerCompact = "M I N D S P A R K"

// bannerWidth is the column count of bannerArt.
const bannerWidth = 74

// RenderBanner returns the MINDSPARK banner styled in the primary color.
// Narrow terminals get the spaced-out compact form.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
