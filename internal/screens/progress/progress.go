package progress

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	prog "github.com/abhisek/studybuddy/internal/progress"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// loadedMsg carries a progress snapshot back to the update loop.
type loadedMsg struct {
	Generation int
	Snapshot   prog.Snapshot
	Err        error
}

// ProgressScreen shows counters, the average score, tier and achievements.
type ProgressScreen struct {
	source prog.Source
	userID string

	loading    bool
	generation int
	report     *prog.Report
	err        error
	spinner    components.Spinner

	ctx    context.Context
	cancel context.CancelFunc
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)
var _ screen.Closer = (*ProgressScreen)(nil)

// New creates a ProgressScreen that loads userID's snapshot from source.
func New(source prog.Source, userID string) *ProgressScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &ProgressScreen{source: source, userID: userID, ctx: ctx, cancel: cancel}
}

func (p *ProgressScreen) Init() tea.Cmd {
	return p.load()
}

func (p *ProgressScreen) Title() string {
	return "Progress"
}

func (p *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

// Close drops any load still in flight.
func (p *ProgressScreen) Close() {
	p.generation++
	p.cancel()
}

func (p *ProgressScreen) load() tea.Cmd {
	if p.loading {
		return nil
	}
	p.loading = true
	p.generation++
	gen := p.generation
	ctx, source, userID := p.ctx, p.source, p.userID
	fetch := func() tea.Msg {
		s, err := source.Progress(ctx, userID)
		return loadedMsg{Generation: gen, Snapshot: s, Err: err}
	}
	return tea.Batch(fetch, p.spinner.Tick())
}

func (p *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Generation != p.generation {
			return p, nil
		}
		p.loading = false
		p.err = msg.Err
		if msg.Err == nil {
			r := prog.Evaluate(msg.Snapshot)
			p.report = &r
		}
		return p, nil

	case components.SpinnerTickMsg:
		if !p.loading {
			return p, nil
		}
		p.spinner.Advance()
		return p, p.spinner.Tick()

	case tea.KeyPressMsg:
		if msg.String() == "r" {
			return p, p.load()
		}
	}
	return p, nil
}

func (p *ProgressScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	if p.loading {
		sections = append(sections, p.spinner.View("Loading your progress..."))
	}
	if p.err != nil {
		sections = append(sections, theme.ErrorText.Render(p.err.Error()))
	}
	if p.report != nil {
		sections = append(sections,
			components.Card(renderCounters(p.report.Snapshot, cw), cw),
			components.Card(renderScore(*p.report, cw), cw),
			components.Card(renderAchievements(*p.report), cw),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}

func renderCounters(s prog.Snapshot, cw int) string {
	counter := func(label string, n int) string {
		return lipgloss.NewStyle().Width((cw-6)/3).Align(lipgloss.Center).Render(
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprint(n)) +
				"\n" + theme.Hint.Render(label))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		counter("Notes", s.TotalNotes),
		counter("Quizzes", s.TotalQuizzes),
		counter("Attempts", s.TotalAttempts),
	)
	if s.LastActivity != nil {
		row += "\n\n" + theme.Hint.Render("Last activity: "+s.LastActivity.Local().Format(time.DateTime))
	}
	return row
}

func renderScore(r prog.Report, cw int) string {
	if !r.HasAttempts {
		return theme.Hint.Render("Complete a quiz to see your average score.")
	}
	bar := components.NewProgressBar("Average score", r.Snapshot.AverageScore/100, true, cw-6)
	bar.Fill = theme.ScoreColor(r.Snapshot.AverageScore)
	return bar.View() + "\n\n" +
		theme.Label.Render("Performance: ") +
		lipgloss.NewStyle().Foreground(theme.ScoreColor(r.Snapshot.AverageScore)).Bold(true).Render(r.Tier.DisplayName())
}

func renderAchievements(r prog.Report) string {
	var b strings.Builder
	b.WriteString(theme.Label.Render("Achievements"))
	for _, a := range prog.AllAchievements() {
		b.WriteString("\n")
		line := fmt.Sprintf("%s  %s: %s", a.Icon(), a.DisplayName(), a.Description())
		if r.IsUnlocked(a) {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render(line))
		} else {
			b.WriteString(theme.Disabled.Render(line + " (locked)"))
		}
	}
	return b.String()
}
