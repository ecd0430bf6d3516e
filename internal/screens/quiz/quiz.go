package quiz

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/logger"
	qz "github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
)

// ActivityRecorder stores quiz activity for the progress view.
type ActivityRecorder interface {
	RecordQuiz(ctx context.Context, userID, document string, questions int) error
	RecordAttempt(ctx context.Context, userID, attemptID string, percent, total int) error
}

const (
	rowCount = iota
	rowFilter
)

// QuizScreen drives a quiz session: configure, generate, answer, review.
type QuizScreen struct {
	session  *qz.Session
	recorder ActivityRecorder
	userID   string
	document string
	log      *logger.Logger

	row          int
	choices      components.ChoiceList
	spinner      components.Spinner
	notice       string
	reviewOffset int

	ctx    context.Context
	cancel context.CancelFunc
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Closer = (*QuizScreen)(nil)

// New creates a QuizScreen over session. recorder may be nil; document is
// the file name recorded with generated quizzes.
func New(session *qz.Session, recorder ActivityRecorder, userID, document string, log *logger.Logger) *QuizScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &QuizScreen{
		session:  session,
		recorder: recorder,
		userID:   userID,
		document: document,
		log:      logger.OrNop(log),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// Status shows the question counter while answering.
func (s *QuizScreen) Status() string {
	a := s.session.Attempt()
	if a == nil {
		return ""
	}
	return fmt.Sprintf("%d/%d answered", a.Answered(), a.Len())
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.session.State() {
	case qz.StateLoading:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case qz.StateActive:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Select"},
			{Key: "←→", Description: "Prev/Next"},
			{Key: "S", Description: "Submit"},
			{Key: "Esc", Description: "Back"},
		}
	case qz.StateSubmitted:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "R", Description: "Retake"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Setting"},
			{Key: "←→", Description: "Change"},
			{Key: "Enter", Description: "Generate"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

// Close abandons any in-flight generation.
func (s *QuizScreen) Close() {
	s.cancel()
	if s.session.State() == qz.StateLoading {
		s.session.Reset()
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		return s.handleGenerated(msg)

	case recordedMsg:
		if msg.Err != nil {
			s.log.Warn("recording quiz activity failed", "kind", msg.Kind, "error", msg.Err)
		}
		return s, nil

	case components.SpinnerTickMsg:
		if s.session.State() != qz.StateLoading {
			return s, nil
		}
		s.spinner.Advance()
		return s, s.spinner.Tick()

	case tea.KeyPressMsg:
		switch s.session.State() {
		case qz.StateConfiguring:
			return s.handleConfigKey(msg)
		case qz.StateActive:
			return s.handleActiveKey(msg)
		case qz.StateSubmitted:
			return s.handleReviewKey(msg)
		}
	}
	return s, nil
}

func (s *QuizScreen) handleGenerated(msg generatedMsg) (screen.Screen, tea.Cmd) {
	if err := s.session.Apply(msg.Result); err != nil {
		// Failures stay on the session and are rendered from Err.
		return s, nil
	}
	s.syncChoices()
	a := s.session.Attempt()
	return s, s.record("quiz", func(ctx context.Context) error {
		return s.recorder.RecordQuiz(ctx, s.userID, s.document, a.Len())
	})
}

func (s *QuizScreen) handleConfigKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	settings := s.session.Settings()
	switch msg.String() {
	case "up", "k":
		s.row = rowCount
	case "down", "j":
		s.row = rowFilter
	case "left", "h":
		s.adjust(settings, -1)
	case "right", "l":
		s.adjust(settings, 1)
	case "enter":
		return s, s.begin()
	}
	return s, nil
}

func (s *QuizScreen) adjust(settings qz.Settings, delta int) {
	if s.row == rowCount {
		n := min(max(settings.Count+delta, qz.MinQuestions), qz.MaxQuestions)
		_ = s.session.SetCount(n)
		return
	}
	filters := qz.AllFilters()
	idx := 0
	for i, f := range filters {
		if f == settings.Filter {
			idx = i
		}
	}
	idx = (idx + delta + len(filters)) % len(filters)
	_ = s.session.SetFilter(filters[idx])
}

func (s *QuizScreen) begin() tea.Cmd {
	t, err := s.session.Begin()
	if err != nil {
		s.notice = err.Error()
		return nil
	}
	s.notice = ""
	ctx := s.ctx
	session := s.session
	fetch := func() tea.Msg {
		return generatedMsg{Result: session.Fetch(ctx, t)}
	}
	return tea.Batch(fetch, s.spinner.Tick())
}

func (s *QuizScreen) handleActiveKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	if v, ok := s.choices.Pick(key); ok {
		s.selectAnswer(v)
		return s, nil
	}

	switch key {
	case "up", "k":
		s.choices.Up()
	case "down", "j":
		s.choices.Down()
	case "enter", "space", " ":
		s.selectAnswer(s.choices.Current())
	case "right", "n":
		_ = s.session.Advance()
		s.syncChoices()
	case "left", "p":
		_ = s.session.Retreat()
		s.syncChoices()
	case "s":
		return s, s.submit()
	}
	return s, nil
}

func (s *QuizScreen) selectAnswer(v string) {
	if err := s.session.SelectCurrent(v); err != nil {
		s.notice = err.Error()
		return
	}
	s.notice = ""
	s.syncChoices()
}

func (s *QuizScreen) submit() tea.Cmd {
	score, err := s.session.Submit()
	if errors.Is(err, qz.ErrIncomplete) {
		a := s.session.Attempt()
		s.notice = fmt.Sprintf("Answer every question before submitting (%d of %d answered)", a.Answered(), a.Len())
		return nil
	}
	if err != nil {
		s.notice = err.Error()
		return nil
	}
	s.notice = ""
	s.reviewOffset = 0
	id := s.session.Attempt().ID
	return s.record("attempt", func(ctx context.Context) error {
		return s.recorder.RecordAttempt(ctx, s.userID, id, score.Percent(), score.Total)
	})
}

func (s *QuizScreen) handleReviewKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		s.reviewOffset = max(s.reviewOffset-1, 0)
	case "down", "j":
		if a := s.session.Attempt(); a != nil && s.reviewOffset < a.Len()-1 {
			s.reviewOffset++
		}
	case "r":
		s.session.Reset()
		s.notice = ""
		s.row = rowCount
	}
	return s, nil
}

// syncChoices rebuilds the choice list for the question under the cursor.
func (s *QuizScreen) syncChoices() {
	a := s.session.Attempt()
	if a == nil || a.Len() == 0 {
		s.choices = components.ChoiceList{}
		return
	}
	q := a.Question(a.Cursor())
	chosen, _ := a.Answer(a.Cursor())
	s.choices = components.NewChoiceList(q.Choices(), chosen)
}

func (s *QuizScreen) record(kind string, write func(ctx context.Context) error) tea.Cmd {
	if s.recorder == nil || s.userID == "" {
		return nil
	}
	// Writes outlive the screen so leaving right after submit still records.
	ctx := context.WithoutCancel(s.ctx)
	return func() tea.Msg {
		return recordedMsg{Kind: kind, Err: write(ctx)}
	}
}
