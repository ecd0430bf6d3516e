package quiz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuestions() []Question {
	return []Question{
		{Kind: KindMultipleChoice, Prompt: "Which organelle produces ATP?", Options: []string{"Nucleus", "Mitochondria", "Ribosome", "Golgi"}, CorrectAnswer: "Mitochondria"},
		{Kind: KindTrueFalse, Prompt: "Plants perform photosynthesis.", CorrectAnswer: AnswerTrue},
		{Kind: KindMultipleChoice, Prompt: "What carries genetic information?", Options: []string{"DNA", "ATP", "Lipids", "Water"}, CorrectAnswer: "DNA"},
		{Kind: KindTrueFalse, Prompt: "Ribosomes store water.", CorrectAnswer: AnswerFalse},
	}
}

func TestLedger(t *testing.T) {
	l := NewLedger()
	assert.Equal(t, 0, l.Len())
	assert.False(t, l.Covers(2))
	assert.True(t, l.Covers(0))

	l.Set(0, "A")
	l.Set(1, "B")
	l.Set(0, "C")

	v, ok := l.Get(0)
	assert.True(t, ok)
	assert.Equal(t, "C", v, "later selection replaces earlier")
	assert.True(t, l.Covers(2))
	assert.False(t, l.Covers(3))

	snap := l.Snapshot()
	snap[5] = "X"
	_, ok = l.Get(5)
	assert.False(t, ok, "snapshot is a copy")
}

func TestAttempt_ScoreCountsMatchingAnswers(t *testing.T) {
	a, err := NewAttempt(sampleQuestions())
	require.NoError(t, err)

	require.NoError(t, a.Select(0, "Mitochondria"))
	require.NoError(t, a.Select(1, AnswerFalse))
	require.NoError(t, a.Select(2, "DNA"))
	require.NoError(t, a.Select(3, AnswerTrue))

	score, err := a.Submit()
	require.NoError(t, err)
	assert.Equal(t, Score{Correct: 2, Total: 4}, score)
	assert.Equal(t, 50, score.Percent())
	assert.True(t, a.Scored())
}

func TestAttempt_SubmitRequiresEveryAnswer(t *testing.T) {
	a, err := NewAttempt(sampleQuestions())
	require.NoError(t, err)

	require.NoError(t, a.Select(0, "Mitochondria"))
	require.NoError(t, a.Select(1, AnswerTrue))
	require.NoError(t, a.Select(2, "DNA"))

	_, err = a.Submit()
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.False(t, a.Scored())

	require.NoError(t, a.Select(3, AnswerFalse))
	score, err := a.Submit()
	require.NoError(t, err)
	assert.Equal(t, 4, score.Correct)
}

func TestAttempt_FrozenAfterSubmit(t *testing.T) {
	a, err := NewAttempt(sampleQuestions()[:1])
	require.NoError(t, err)
	require.NoError(t, a.Select(0, "Nucleus"))
	_, err = a.Submit()
	require.NoError(t, err)

	assert.ErrorIs(t, a.Select(0, "Mitochondria"), ErrScored)
	_, err = a.Submit()
	assert.ErrorIs(t, err, ErrScored)

	v, _ := a.Answer(0)
	assert.Equal(t, "Nucleus", v)
	assert.Equal(t, 0, a.Score().Correct)
}

func TestAttempt_CursorClamps(t *testing.T) {
	a, err := NewAttempt(sampleQuestions())
	require.NoError(t, err)

	a.Retreat()
	assert.Equal(t, 0, a.Cursor())

	for range 10 {
		a.Advance()
	}
	assert.Equal(t, 3, a.Cursor())

	require.NoError(t, a.Select(1, AnswerTrue))
	assert.Equal(t, 3, a.Cursor(), "selecting does not move the cursor")
}

func TestAttempt_SelectOutOfRange(t *testing.T) {
	a, err := NewAttempt(sampleQuestions())
	require.NoError(t, err)

	assert.ErrorIs(t, a.Select(-1, "x"), ErrIndexOutOfRange)
	assert.ErrorIs(t, a.Select(4, "x"), ErrIndexOutOfRange)
}

func TestAttempt_Review(t *testing.T) {
	a, err := NewAttempt(sampleQuestions()[:2])
	require.NoError(t, err)
	require.NoError(t, a.Select(0, "Ribosome"))
	require.NoError(t, a.Select(1, AnswerTrue))

	items := a.Review()
	require.Len(t, items, 2)
	assert.False(t, items[0].Correct)
	assert.Equal(t, "Ribosome", items[0].Answer)
	assert.True(t, items[1].Correct)
	assert.True(t, items[1].Answered)
}

func TestAttempt_QuestionsAreCopied(t *testing.T) {
	qs := sampleQuestions()
	a, err := NewAttempt(qs)
	require.NoError(t, err)

	qs[0].CorrectAnswer = "Nucleus"
	assert.Equal(t, "Mitochondria", a.Question(0).CorrectAnswer)
	assert.NotEmpty(t, a.ID)
}

func TestScorePercent(t *testing.T) {
	tests := []struct {
		score Score
		want  int
	}{
		{Score{Correct: 0, Total: 0}, 0},
		{Score{Correct: 2, Total: 4}, 50},
		{Score{Correct: 1, Total: 3}, 33},
		{Score{Correct: 2, Total: 3}, 67},
		{Score{Correct: 1, Total: 8}, 13}, // 12.5 rounds half up
		{Score{Correct: 5, Total: 5}, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.score.Percent(), "%d/%d", tt.score.Correct, tt.score.Total)
	}
}

func TestValidateQuestions(t *testing.T) {
	tests := []struct {
		name      string
		questions []Question
		wantIndex int
	}{
		{"empty prompt", []Question{{Kind: KindTrueFalse, Prompt: " ", CorrectAnswer: AnswerTrue}}, 0},
		{"missing answer", []Question{{Kind: KindTrueFalse, Prompt: "Q"}}, 0},
		{"mcq too few options", []Question{{Kind: KindMultipleChoice, Prompt: "Q", Options: []string{"A"}, CorrectAnswer: "A"}}, 0},
		{"mcq answer not an option", []Question{{Kind: KindMultipleChoice, Prompt: "Q", Options: []string{"A", "B"}, CorrectAnswer: "C"}}, 0},
		{"bad true/false answer", []Question{sampleQuestions()[0], {Kind: KindTrueFalse, Prompt: "Q", CorrectAnswer: "yes"}}, 1},
		{"unknown kind", []Question{{Kind: "essay", Prompt: "Q", CorrectAnswer: "x"}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestions(tt.questions)
			var malformed *MalformedError
			require.True(t, errors.As(err, &malformed), "got %v", err)
			assert.Equal(t, tt.wantIndex, malformed.Index)
		})
	}

	assert.ErrorIs(t, ValidateQuestions(nil), ErrEmptyQuiz)
	assert.NoError(t, ValidateQuestions(sampleQuestions()))
}

func TestQuestionChoices(t *testing.T) {
	qs := sampleQuestions()
	assert.Equal(t, []string{AnswerTrue, AnswerFalse}, qs[1].Choices())
	assert.Len(t, qs[0].Choices(), 4)
}
