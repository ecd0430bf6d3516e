package quiz

import "fmt"

// Kind identifies how a question is answered.
type Kind string

const (
	KindMultipleChoice Kind = "mcq"
	KindTrueFalse      Kind = "true_false"
)

// True and False are the only valid answers of a true/false question.
const (
	AnswerTrue  = "True"
	AnswerFalse = "False"
)

// Question is one assessment item. It is never mutated once an attempt
// has been created from it.
type Question struct {
	// Kind is mcq or true_false.
	Kind Kind `json:"type"`

	// Prompt is the question text shown to the learner.
	Prompt string `json:"question"`

	// Options holds the choices of a multiple-choice question, in display
	// order. Empty for true/false questions.
	Options []string `json:"options,omitempty"`

	// CorrectAnswer equals one element of Options for multiple-choice
	// questions, or "True"/"False" otherwise.
	CorrectAnswer string `json:"correct_answer"`
}

// Choices returns the answers the learner can pick from.
func (q Question) Choices() []string {
	if q.Kind == KindTrueFalse {
		return []string{AnswerTrue, AnswerFalse}
	}
	return q.Options
}

// TypeFilter restricts which kinds of question the generator produces.
type TypeFilter string

const (
	FilterMultipleChoice TypeFilter = "mcq"
	FilterTrueFalse      TypeFilter = "true_false"
	FilterMixed          TypeFilter = "mixed"
)

// AllFilters returns the filters in display order.
func AllFilters() []TypeFilter {
	return []TypeFilter{FilterMultipleChoice, FilterTrueFalse, FilterMixed}
}

// DisplayName returns a human-readable label for the filter.
func (f TypeFilter) DisplayName() string {
	switch f {
	case FilterMultipleChoice:
		return "Multiple Choice"
	case FilterTrueFalse:
		return "True/False"
	case FilterMixed:
		return "Mixed"
	default:
		return string(f)
	}
}

// Valid reports whether f is a known filter.
func (f TypeFilter) Valid() bool {
	switch f {
	case FilterMultipleChoice, FilterTrueFalse, FilterMixed:
		return true
	}
	return false
}

// ParseFilter parses a filter name as used on the command line.
func ParseFilter(s string) (TypeFilter, error) {
	f := TypeFilter(s)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, s)
	}
	return f, nil
}

// Question count bounds accepted by the generator.
const (
	MinQuestions     = 3
	MaxQuestions     = 10
	DefaultQuestions = 5
)

// Settings are the parameters held while configuring a quiz.
type Settings struct {
	Count  int
	Filter TypeFilter
}

// DefaultSettings returns five mixed questions.
func DefaultSettings() Settings {
	return Settings{Count: DefaultQuestions, Filter: FilterMixed}
}

// Validate checks the count bounds and the filter.
func (s Settings) Validate() error {
	if s.Count < MinQuestions || s.Count > MaxQuestions {
		return fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidCount, s.Count, MinQuestions, MaxQuestions)
	}
	if !s.Filter.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFilter, s.Filter)
	}
	return nil
}

// Request is what the quiz-generation service receives.
type Request struct {
	Document string
	Count    int
	Filter   TypeFilter
}
