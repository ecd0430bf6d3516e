package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

const bannerText = "S T U D Y   B U D D Y"

const bannerCompact = "STUDY BUDDY"

// RenderBanner returns the boxed banner in the primary colour, or a plain
// one-line fallback for terminals narrower than 32 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 32 {
		return style.Render(bannerCompact)
	}
	return style.
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Padding(0, 2).
		Render(bannerText)
}
