package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

var choiceLabels = []string{"A", "B", "C", "D", "E", "F"}

// ChoiceList renders answer options with a cursor and the learner's
// current pick. It holds no answers itself; the quiz session does.
type ChoiceList struct {
	Options []string
	Cursor  int
}

// NewChoiceList creates a list with the cursor on chosen, or the first
// option when nothing is chosen.
func NewChoiceList(options []string, chosen string) ChoiceList {
	c := ChoiceList{Options: options}
	for i, o := range options {
		if o == chosen {
			c.Cursor = i
		}
	}
	return c
}

// Up moves the cursor up.
func (c *ChoiceList) Up() {
	if c.Cursor > 0 {
		c.Cursor--
	}
}

// Down moves the cursor down.
func (c *ChoiceList) Down() {
	if c.Cursor < len(c.Options)-1 {
		c.Cursor++
	}
}

// Current returns the option under the cursor.
func (c ChoiceList) Current() string {
	if c.Cursor < 0 || c.Cursor >= len(c.Options) {
		return ""
	}
	return c.Options[c.Cursor]
}

// Pick returns the option for a 1-based number key, if any.
func (c ChoiceList) Pick(key string) (string, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return "", false
	}
	i := int(key[0] - '1')
	if i >= len(c.Options) {
		return "", false
	}
	return c.Options[i], true
}

// View renders the options, marking chosen with a filled dot.
func (c ChoiceList) View(chosen string) string {
	var b strings.Builder
	for i, opt := range c.Options {
		label := fmt.Sprint(i + 1)
		if i < len(choiceLabels) {
			label = choiceLabels[i]
		}

		mark := "○"
		if opt == chosen {
			mark = "●"
		}
		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, label, opt)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == c.Cursor:
			style = theme.Selected
		case opt == chosen:
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
