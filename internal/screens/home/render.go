package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/document"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

const titleFull = "A I   S T U D Y   B U D D Y"

const titleCompact = "Study Buddy"

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	text := titleFull
	if compact {
		text = titleCompact
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(style.Render(text))
}

// renderDocumentCard shows the loaded document, or how to load one.
func renderDocumentCard(doc *document.Document, cw int) string {
	if doc == nil {
		return components.Card(theme.Hint.Render("No document loaded. Start with: studybuddy <file>"), cw)
	}
	name := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("📄 " + doc.Name)
	meta := theme.Hint.Render(fmt.Sprintf("%s · %d words", document.FormatSize(doc.Size), doc.Words()))
	return components.Card(name+"\n"+meta, cw)
}

func renderMenu(menu string, cw int) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(
		lipgloss.NewStyle().Align(lipgloss.Left).Render(menu))
}

func renderModeNote(mode string, cw int) string {
	if mode == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render("Using " + mode)
}
