package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studybuddy/internal/llm"
)

func TestLLMGenerator_ParsesQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions":[
		{"type":"mcq","question":"Which organelle produces ATP?","options":["Nucleus","Mitochondria","Ribosome","Golgi"],"correct_answer":"Mitochondria"},
		{"type":"true_false","question":"Plants perform photosynthesis.","options":[],"correct_answer":"True"},
		{"type":"true_false","question":"Extra question.","options":[],"correct_answer":"False"},
		{"type":"true_false","question":"Another extra.","options":[],"correct_answer":"False"}
	]}`)})
	gen := NewLLMGenerator(mock, DefaultLLMConfig())

	qs, err := gen.GenerateQuiz(context.Background(), Request{Document: doc, Count: 3, Filter: FilterMixed})
	require.NoError(t, err)
	require.Len(t, qs, 3, "extra questions are dropped")
	assert.Equal(t, KindMultipleChoice, qs[0].Kind)
	assert.Equal(t, "Mitochondria", qs[0].CorrectAnswer)
	assert.Nil(t, qs[1].Options)
	assert.NoError(t, ValidateQuestions(qs))

	require.Equal(t, 1, mock.CallCount())
	call := mock.Calls[0]
	assert.Equal(t, QuestionsSchema, call.Schema)
	assert.Contains(t, call.Messages[0].Content, "Number of questions: 3")
	assert.Contains(t, call.Messages[0].Content, "a mix of mcq and true_false")
	assert.Contains(t, call.Messages[0].Content, doc)
}

func TestLLMGenerator_FilterInstruction(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions":[]}`)})
	gen := NewLLMGenerator(mock, DefaultLLMConfig())

	_, err := gen.GenerateQuiz(context.Background(), Request{Document: doc, Count: 5, Filter: FilterTrueFalse})
	require.NoError(t, err)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "true_false only")
}

func TestLLMGenerator_ClipsDocument(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions":[]}`)})
	cfg := DefaultLLMConfig()
	cfg.MaxDocumentChars = 10
	gen := NewLLMGenerator(mock, cfg)

	_, err := gen.GenerateQuiz(context.Background(), Request{Document: strings.Repeat("a", 50) + "TAIL", Count: 5})
	require.NoError(t, err)
	assert.NotContains(t, mock.Calls[0].Messages[0].Content, "TAIL")
}

func TestLLMGenerator_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}})
	gen := NewLLMGenerator(mock, DefaultLLMConfig())

	_, err := gen.GenerateQuiz(context.Background(), Request{Document: doc, Count: 5})
	var rl *llm.ErrRateLimit
	assert.True(t, errors.As(err, &rl))
}

func TestLLMGenerator_FeedsSession(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions":[
		{"type":"true_false","question":"Cells contain organelles.","options":[],"correct_answer":"True"},
		{"type":"true_false","question":"Mitochondria produce water.","options":[],"correct_answer":"False"},
		{"type":"true_false","question":"ATP is produced by mitochondria.","options":[],"correct_answer":"True"}
	]}`)})
	s := NewSession(NewLLMGenerator(mock, DefaultLLMConfig()), doc, nil)
	require.NoError(t, s.SetCount(3))
	require.NoError(t, s.Generate(context.Background()))

	for i := range 3 {
		require.NoError(t, s.SelectAnswer(i, AnswerTrue))
	}
	score, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, Score{Correct: 2, Total: 3}, score)
	assert.Equal(t, 67, score.Percent())
}
