package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotWaiting MascotVariant = iota // No document loaded yet
	MascotReady                        // Document loaded
)

const mascotWaiting = ` ,___,
 (o,o)
 /)  )
--"-"--`

const mascotReady = ` ,___,
 (^,^)  ✎
 /)__)
--"-"--`

// RenderMascot returns the owl art for the given variant.
func RenderMascot(variant MascotVariant) string {
	art := mascotWaiting
	fg := theme.TextDim
	if variant == MascotReady {
		art = mascotReady
		fg = theme.Primary
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
