package quiz

import (
	"slices"
	"strings"
)

// ValidateQuestions checks that a generated question set can back an attempt.
// The first problem found is returned as a *MalformedError.
func ValidateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return ErrEmptyQuiz
	}
	for i, q := range questions {
		if err := validateQuestion(i, q); err != nil {
			return err
		}
	}
	return nil
}

func validateQuestion(i int, q Question) error {
	if strings.TrimSpace(q.Prompt) == "" {
		return &MalformedError{Index: i, Reason: "question text is empty"}
	}
	if q.CorrectAnswer == "" {
		return &MalformedError{Index: i, Reason: "missing correct_answer"}
	}

	switch q.Kind {
	case KindMultipleChoice:
		if len(q.Options) < 2 {
			return &MalformedError{Index: i, Reason: "multiple choice needs at least 2 options"}
		}
		if !slices.Contains(q.Options, q.CorrectAnswer) {
			return &MalformedError{Index: i, Reason: "options do not contain correct_answer"}
		}
	case KindTrueFalse:
		if q.CorrectAnswer != AnswerTrue && q.CorrectAnswer != AnswerFalse {
			return &MalformedError{Index: i, Reason: `true/false answer must be "True" or "False"`}
		}
	default:
		return &MalformedError{Index: i, Reason: "unknown question type " + string(q.Kind)}
	}
	return nil
}
