package quiz

import (
	"context"
	"fmt"
	"sync"

	"github.com/abhisek/studybuddy/internal/logger"
)

// Generator produces a question set for a document.
type Generator interface {
	GenerateQuiz(ctx context.Context, req Request) ([]Question, error)
}

// State is the phase of a quiz session.
type State int

const (
	StateConfiguring State = iota // Choosing count and question type
	StateLoading                  // Waiting for the generator
	StateActive                   // Answering questions
	StateSubmitted                // Scored, showing review
)

func (s State) String() string {
	switch s {
	case StateConfiguring:
		return "configuring"
	case StateLoading:
		return "loading"
	case StateActive:
		return "active"
	case StateSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Ticket is an outbound generation request tagged with the session
// generation it was issued in.
type Ticket struct {
	Generation uint64
	Request    Request
}

// Result is the outcome of fetching a ticket.
type Result struct {
	Generation uint64
	Questions  []Question
	Err        error
}

// Session drives one document's quiz through configuration, generation,
// answering and scoring. All methods are safe for concurrent use.
type Session struct {
	gen      Generator
	document string
	log      *logger.Logger

	mu         sync.Mutex
	state      State
	settings   Settings
	generation uint64
	attempt    *Attempt
	score      Score
	err        error
}

// NewSession returns a session in the configuring state with default settings.
func NewSession(gen Generator, document string, log *logger.Logger) *Session {
	return &Session{
		gen:      gen,
		document: document,
		log:      logger.OrNop(log).With("component", "quiz"),
		settings: DefaultSettings(),
	}
}

// State returns the current phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Settings returns the configured count and filter.
func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Err returns the failure of the most recent generation, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Attempt returns the current attempt, or nil outside Active and Submitted.
func (s *Session) Attempt() *Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempt
}

// Score returns the score of the submitted attempt.
func (s *Session) Score() Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// SetCount changes the number of questions to request.
func (s *Session) SetCount(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConfiguring {
		return ErrInvalidTransition
	}
	next := s.settings
	next.Count = n
	if err := next.Validate(); err != nil {
		return err
	}
	s.settings = next
	return nil
}

// SetFilter changes the question types to request.
func (s *Session) SetFilter(f TypeFilter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConfiguring {
		return ErrInvalidTransition
	}
	if !f.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFilter, f)
	}
	s.settings.Filter = f
	return nil
}

// Begin moves to Loading and returns the request to fetch.
func (s *Session) Begin() (Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateConfiguring:
	case StateLoading:
		return Ticket{}, ErrBusy
	default:
		return Ticket{}, ErrInvalidTransition
	}
	if s.document == "" {
		return Ticket{}, ErrNoDocument
	}

	s.generation++
	s.state = StateLoading
	s.err = nil
	s.log.Debug("quiz generation started",
		"generation", s.generation, "count", s.settings.Count, "type", s.settings.Filter)

	return Ticket{
		Generation: s.generation,
		Request: Request{
			Document: s.document,
			Count:    s.settings.Count,
			Filter:   s.settings.Filter,
		},
	}, nil
}

// Fetch performs the single generator call for t. It touches no session
// state and may run on any goroutine.
func (s *Session) Fetch(ctx context.Context, t Ticket) Result {
	questions, err := s.gen.GenerateQuiz(ctx, t.Request)
	return Result{Generation: t.Generation, Questions: questions, Err: err}
}

// Apply commits a fetch result. Results from an abandoned generation are
// dropped with ErrStale. On failure the session returns to Configuring and
// the error is also kept for Err.
func (s *Session) Apply(r Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLoading || r.Generation != s.generation {
		s.log.Debug("stale quiz result dropped", "generation", r.Generation, "current", s.generation)
		return ErrStale
	}

	if r.Err != nil {
		return s.failLocked(fmt.Errorf("generate quiz: %w", r.Err))
	}

	attempt, err := NewAttempt(r.Questions)
	if err != nil {
		return s.failLocked(fmt.Errorf("generate quiz: %w", err))
	}

	s.attempt = attempt
	s.score = Score{}
	s.state = StateActive
	s.log.Debug("quiz ready", "generation", r.Generation, "questions", attempt.Len())
	return nil
}

func (s *Session) failLocked(err error) error {
	s.state = StateConfiguring
	s.attempt = nil
	s.err = err
	s.log.Warn("quiz generation failed", "error", err)
	return err
}

// Generate runs Begin, Fetch and Apply in sequence.
func (s *Session) Generate(ctx context.Context) error {
	t, err := s.Begin()
	if err != nil {
		return err
	}
	return s.Apply(s.Fetch(ctx, t))
}

// SelectAnswer records value for question index.
func (s *Session) SelectAnswer(index int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return ErrInvalidTransition
	}
	return s.attempt.Select(index, value)
}

// SelectCurrent records value for the question under the cursor.
func (s *Session) SelectCurrent(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return ErrInvalidTransition
	}
	return s.attempt.Select(s.attempt.Cursor(), value)
}

// Advance moves the cursor forward.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return ErrInvalidTransition
	}
	s.attempt.Advance()
	return nil
}

// Retreat moves the cursor back.
func (s *Session) Retreat() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return ErrInvalidTransition
	}
	s.attempt.Retreat()
	return nil
}

// Submit scores the attempt. Every question must have an answer.
func (s *Session) Submit() (Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return Score{}, ErrInvalidTransition
	}
	score, err := s.attempt.Submit()
	if err != nil {
		return Score{}, err
	}
	s.score = score
	s.state = StateSubmitted
	s.log.Debug("quiz submitted", "correct", score.Correct, "total", score.Total)
	return score, nil
}

// Review lists the submitted answers.
func (s *Session) Review() ([]ReviewItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSubmitted {
		return nil, ErrInvalidTransition
	}
	return s.attempt.Review(), nil
}

// Reset discards the attempt and any in-flight generation and returns to
// Configuring. Settings are kept.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.state = StateConfiguring
	s.attempt = nil
	s.score = Score{}
	s.err = nil
}
