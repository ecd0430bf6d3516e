package summary

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/screen"
	sum "github.com/abhisek/studybuddy/internal/summary"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// resultMsg carries a finished summariser call back to the update loop.
type resultMsg struct {
	Result sum.Result
}

// SummaryScreen lets the learner pick a style, generate a summary and save it.
type SummaryScreen struct {
	session *sum.Session
	saveDir string
	spinner components.Spinner
	notice  string

	ctx    context.Context
	cancel context.CancelFunc
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.Closer = (*SummaryScreen)(nil)

// New creates a SummaryScreen over session. Saved files go to saveDir.
func New(session *sum.Session, saveDir string) *SummaryScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &SummaryScreen{session: session, saveDir: saveDir, ctx: ctx, cancel: cancel}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	if s.session.State() == sum.StateLoading {
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	hints := []layout.KeyHint{
		{Key: "←→", Description: "Style"},
		{Key: "Enter", Description: "Summarize"},
	}
	if s.session.State() == sum.StateReady {
		hints = append(hints, layout.KeyHint{Key: "S", Description: "Save"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// Close abandons any in-flight request.
func (s *SummaryScreen) Close() {
	s.session.Cancel()
	s.cancel()
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		// Failures are kept on the session and shown from Err.
		_ = s.session.Apply(msg.Result)
		return s, nil

	case components.SpinnerTickMsg:
		if s.session.State() != sum.StateLoading {
			return s, nil
		}
		s.spinner.Advance()
		return s, s.spinner.Tick()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SummaryScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.session.State() == sum.StateLoading {
		return s, nil
	}

	switch msg.String() {
	case "left", "h":
		s.cycleStyle(-1)
	case "right", "l", "tab":
		s.cycleStyle(1)
	case "enter":
		return s, s.begin()
	case "s":
		path, err := s.session.Save(s.saveDir)
		if err != nil {
			s.notice = err.Error()
		} else {
			s.notice = "Saved to " + path
		}
	}
	return s, nil
}

func (s *SummaryScreen) cycleStyle(delta int) {
	styles := sum.AllStyles()
	current := s.session.Style()
	idx := 0
	for i, st := range styles {
		if st == current {
			idx = i
		}
	}
	idx = (idx + delta + len(styles)) % len(styles)
	_ = s.session.SetStyle(styles[idx])
}

func (s *SummaryScreen) begin() tea.Cmd {
	t, err := s.session.Begin()
	if err != nil {
		s.notice = err.Error()
		return nil
	}
	s.notice = ""
	ctx := s.ctx
	session := s.session
	fetch := func() tea.Msg {
		return resultMsg{Result: session.Fetch(ctx, t)}
	}
	return tea.Batch(fetch, s.spinner.Tick())
}

func (s *SummaryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(s.renderStyles())
	b.WriteString("\n\n")

	text, style := s.session.Text()
	switch {
	case s.session.State() == sum.StateLoading:
		b.WriteString(s.spinner.View(fmt.Sprintf("Summarizing (%s)...", s.session.Style().DisplayName())))
		b.WriteString("\n\n")
	case text == "" && s.session.Err() == nil:
		b.WriteString(theme.Hint.Render("Pick a style and press Enter to summarize your notes."))
		b.WriteString("\n\n")
	}

	if err := s.session.Err(); err != nil {
		b.WriteString(theme.ErrorText.Render(err.Error()))
		b.WriteString("\n\n")
	}

	if text != "" {
		body := theme.Label.Render(style.DisplayName()+" summary") + "\n\n" + components.Wrap(clip(text, height-10), cw-6)
		b.WriteString(components.Card(body, cw))
		b.WriteString("\n")
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render(s.notice))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}

func (s *SummaryScreen) renderStyles() string {
	current := s.session.Style()
	var parts []string
	for _, st := range sum.AllStyles() {
		if st == current {
			parts = append(parts, theme.Selected.Render("[ "+st.DisplayName()+" ]"))
		} else {
			parts = append(parts, theme.Unselected.Render("  "+st.DisplayName()+"  "))
		}
	}
	return strings.Join(parts, " ")
}

// clip keeps at most maxLines lines of text so long summaries fit the card.
func clip(text string, maxLines int) string {
	maxLines = max(maxLines, 3)
	lines := strings.Split(text, "\n")
	if len(lines) <= maxLines {
		return text
	}
	return strings.Join(lines[:maxLines], "\n") + "\n…"
}
