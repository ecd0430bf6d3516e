package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy is returned when a generation is requested while one is in flight.
	ErrBusy = errors.New("quiz generation already in progress")

	// ErrInvalidTransition is returned for operations not legal in the current state.
	ErrInvalidTransition = errors.New("operation not allowed in current quiz state")

	// ErrStale is returned when a generation result belongs to an abandoned request.
	ErrStale = errors.New("stale quiz generation result")

	// ErrIncomplete is returned when submitting with unanswered questions.
	ErrIncomplete = errors.New("all questions must be answered before submitting")

	// ErrScored is returned when mutating an attempt that has already been scored.
	ErrScored = errors.New("attempt already submitted")

	// ErrIndexOutOfRange is returned for answer indices outside the question set.
	ErrIndexOutOfRange = errors.New("question index out of range")

	// ErrInvalidCount is returned for question counts outside [MinQuestions, MaxQuestions].
	ErrInvalidCount = errors.New("invalid question count")

	// ErrInvalidFilter is returned for unknown question-type filters.
	ErrInvalidFilter = errors.New("invalid question type")

	// ErrNoDocument is returned when generating without document text.
	ErrNoDocument = errors.New("no text available to generate quiz")

	// ErrEmptyQuiz is returned when the service answers with no questions.
	ErrEmptyQuiz = errors.New("quiz generation returned no questions")
)

// MalformedError describes a question the service returned that cannot be
// used in an attempt.
type MalformedError struct {
	Index  int
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed question %d: %s", e.Index+1, e.Reason)
}
