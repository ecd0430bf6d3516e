package quiz

import (
	"math"
	"slices"

	"github.com/google/uuid"
)

// Attempt is one pass through a fixed question set.
type Attempt struct {
	// ID identifies the attempt in the activity store.
	ID string

	questions []Question
	answers   *Ledger
	cursor    int
	scored    bool
}

// NewAttempt validates the questions and starts an unanswered attempt at
// the first question.
func NewAttempt(questions []Question) (*Attempt, error) {
	if err := ValidateQuestions(questions); err != nil {
		return nil, err
	}
	return &Attempt{
		ID:        uuid.New().String(),
		questions: slices.Clone(questions),
		answers:   NewLedger(),
	}, nil
}

// Len returns the number of questions.
func (a *Attempt) Len() int { return len(a.questions) }

// Question returns the question at index i.
func (a *Attempt) Question(i int) Question { return a.questions[i] }

// Questions returns a copy of the question set.
func (a *Attempt) Questions() []Question { return slices.Clone(a.questions) }

// Cursor returns the index of the question on display.
func (a *Attempt) Cursor() int { return a.cursor }

// Scored reports whether the attempt was submitted.
func (a *Attempt) Scored() bool { return a.scored }

// Answer returns the learner's answer for index i.
func (a *Attempt) Answer(i int) (string, bool) { return a.answers.Get(i) }

// Answered returns how many questions have an answer.
func (a *Attempt) Answered() int { return a.answers.Len() }

// Complete reports whether every question has an answer.
func (a *Attempt) Complete() bool { return a.answers.Covers(len(a.questions)) }

// Select records value as the answer to question index. The cursor does
// not move.
func (a *Attempt) Select(index int, value string) error {
	if a.scored {
		return ErrScored
	}
	if index < 0 || index >= len(a.questions) {
		return ErrIndexOutOfRange
	}
	a.answers.Set(index, value)
	return nil
}

// Advance moves to the next question, stopping at the last.
func (a *Attempt) Advance() {
	if a.scored {
		return
	}
	if a.cursor < len(a.questions)-1 {
		a.cursor++
	}
}

// Retreat moves to the previous question, stopping at the first.
func (a *Attempt) Retreat() {
	if a.scored {
		return
	}
	if a.cursor > 0 {
		a.cursor--
	}
}

// Submit freezes the attempt. Every question must be answered.
func (a *Attempt) Submit() (Score, error) {
	if a.scored {
		return Score{}, ErrScored
	}
	if !a.Complete() {
		return Score{}, ErrIncomplete
	}
	a.scored = true
	return a.Score(), nil
}

// Score counts questions whose recorded answer equals the correct answer.
func (a *Attempt) Score() Score {
	s := Score{Total: len(a.questions)}
	for i, q := range a.questions {
		if v, ok := a.answers.Get(i); ok && v == q.CorrectAnswer {
			s.Correct++
		}
	}
	return s
}

// Review lists every question with the learner's answer and its correctness.
func (a *Attempt) Review() []ReviewItem {
	items := make([]ReviewItem, len(a.questions))
	for i, q := range a.questions {
		v, ok := a.answers.Get(i)
		items[i] = ReviewItem{
			Index:    i,
			Question: q,
			Answer:   v,
			Answered: ok,
			Correct:  ok && v == q.CorrectAnswer,
		}
	}
	return items
}

// Score is the result of a submitted attempt.
type Score struct {
	Correct int
	Total   int
}

// Percent returns Correct/Total as a percentage rounded half-up.
func (s Score) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Correct) / float64(s.Total) * 100))
}

// ReviewItem is one row of the post-submission review.
type ReviewItem struct {
	Index    int
	Question Question
	Answer   string
	Answered bool
	Correct  bool
}
