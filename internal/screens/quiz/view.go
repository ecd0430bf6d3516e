package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch s.session.State() {
	case qz.StateLoading:
		settings := s.session.Settings()
		body = s.spinner.View(fmt.Sprintf("Generating %d %s questions...",
			settings.Count, strings.ToLower(settings.Filter.DisplayName())))
	case qz.StateActive:
		body = s.renderActive(cw)
	case qz.StateSubmitted:
		body = s.renderReview(cw, height)
	default:
		body = s.renderConfig(cw)
	}

	if s.notice != "" {
		body += "\n\n" + lipgloss.NewStyle().Foreground(theme.Warning).Render(s.notice)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *QuizScreen) renderConfig(cw int) string {
	settings := s.session.Settings()

	row := func(i int, label, value string) string {
		line := fmt.Sprintf("%-22s ◂ %s ▸", label, value)
		if i == s.row {
			return theme.Selected.Render("▸ " + line)
		}
		return theme.Unselected.Render("  " + line)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Quiz settings"))
	b.WriteString("\n\n")
	b.WriteString(row(rowCount, "Number of questions", fmt.Sprint(settings.Count)))
	b.WriteString("\n")
	b.WriteString(row(rowFilter, "Question type", settings.Filter.DisplayName()))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Between %d and %d questions. Press Enter to generate.",
		qz.MinQuestions, qz.MaxQuestions)))

	if err := s.session.Err(); err != nil {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Render(err.Error()))
	}
	return components.Card(b.String(), cw)
}

func (s *QuizScreen) renderActive(cw int) string {
	a := s.session.Attempt()
	if a == nil {
		return ""
	}
	q := a.Question(a.Cursor())
	chosen, _ := a.Answer(a.Cursor())

	var b strings.Builder
	b.WriteString(theme.Label.Render(fmt.Sprintf("Question %d of %d", a.Cursor()+1, a.Len())))
	b.WriteString("\n")
	bar := components.NewProgressBar("", float64(a.Answered())/float64(a.Len()), true, cw-6)
	b.WriteString(bar.View())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw - 6).Render(q.Prompt))
	b.WriteString("\n\n")
	b.WriteString(s.choices.View(chosen))
	return components.Card(b.String(), cw)
}

func (s *QuizScreen) renderReview(cw, height int) string {
	score := s.session.Score()
	review, err := s.session.Review()
	if err != nil {
		return theme.ErrorText.Render(err.Error())
	}

	percent := score.Percent()
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.ScoreColor(float64(percent))).
		Bold(true).
		Render(fmt.Sprintf("You scored %d/%d (%d%%)", score.Correct, score.Total, percent)))
	b.WriteString("\n\n")

	// Each item takes four lines; show what fits starting at the offset.
	visible := max((height-8)/4, 1)
	end := min(s.reviewOffset+visible, len(review))
	for _, item := range review[s.reviewOffset:end] {
		b.WriteString(renderReviewItem(item, cw-6))
		b.WriteString("\n")
	}
	if end < len(review) || s.reviewOffset > 0 {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Showing %d-%d of %d", s.reviewOffset+1, end, len(review))))
	}
	return components.Card(strings.TrimRight(b.String(), "\n"), cw)
}

func renderReviewItem(item qz.ReviewItem, width int) string {
	mark := theme.Correct.Render("✓")
	if !item.Correct {
		mark = theme.Incorrect.Render("✗")
	}

	answer := item.Answer
	answerStyle := theme.Correct
	switch {
	case !item.Answered:
		answer = "Not answered"
		answerStyle = theme.Hint
	case !item.Correct:
		answerStyle = theme.Incorrect
	}

	var b strings.Builder
	b.WriteString(mark + " " + lipgloss.NewStyle().Foreground(theme.Text).Width(width-2).
		Render(fmt.Sprintf("%d. %s", item.Index+1, item.Question.Prompt)))
	b.WriteString("\n")
	b.WriteString("   " + theme.Hint.Render("Your answer: ") + answerStyle.Render(answer))
	b.WriteString("\n")
	if !item.Correct {
		b.WriteString("   " + theme.Hint.Render("Correct answer: ") + theme.Correct.Render(item.Question.CorrectAnswer))
		b.WriteString("\n")
	}
	return b.String()
}
