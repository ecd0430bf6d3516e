package summary

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studybuddy/internal/llm"
)

type fakeSummarizer struct {
	text  string
	err   error
	calls []Style
}

func (f *fakeSummarizer) Summarize(_ context.Context, _ string, style Style) (string, error) {
	f.calls = append(f.calls, style)
	return f.text, f.err
}

const doc = "Mitochondria produce ATP through cellular respiration."

func TestSession_Summarize(t *testing.T) {
	f := &fakeSummarizer{text: "Mitochondria make ATP."}
	s := NewSession(f, "bio.txt", doc, nil)
	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, StyleConcise, s.Style())

	require.NoError(t, s.SetStyle(StyleBulletPoints))
	require.NoError(t, s.Summarize(context.Background()))

	text, style := s.Text()
	assert.Equal(t, "Mitochondria make ATP.", text)
	assert.Equal(t, StyleBulletPoints, style)
	assert.Equal(t, StateReady, s.State())
	assert.Equal(t, []Style{StyleBulletPoints}, f.calls)
}

func TestSession_FailureKeepsPrevious(t *testing.T) {
	f := &fakeSummarizer{text: "first"}
	s := NewSession(f, "bio.txt", doc, nil)
	require.NoError(t, s.Summarize(context.Background()))

	f.text, f.err = "", errors.New("backend down")
	err := s.Summarize(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, s.Err(), f.err)
	assert.Equal(t, StateReady, s.State())
	text, _ := s.Text()
	assert.Equal(t, "first", text)
}

func TestSession_FailureFromIdle(t *testing.T) {
	s := NewSession(&fakeSummarizer{text: "  "}, "bio.txt", doc, nil)
	err := s.Summarize(context.Background())
	assert.ErrorIs(t, err, ErrEmptySummary)
	assert.Equal(t, StateIdle, s.State())
}

func TestSession_BusyAndStale(t *testing.T) {
	s := NewSession(&fakeSummarizer{text: "ok"}, "bio.txt", doc, nil)
	ticket, err := s.Begin()
	require.NoError(t, err)

	_, err = s.Begin()
	assert.ErrorIs(t, err, ErrBusy)
	assert.ErrorIs(t, s.SetStyle(StyleDetailed), ErrInvalidTransition)

	res := s.Fetch(context.Background(), ticket)
	s.Cancel()
	assert.ErrorIs(t, s.Apply(res), ErrStale)
	assert.Equal(t, StateIdle, s.State())
}

func TestSession_NoDocument(t *testing.T) {
	_, err := NewSession(&fakeSummarizer{}, "empty.txt", "  ", nil).Begin()
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestSession_Save(t *testing.T) {
	dir := t.TempDir()
	s := NewSession(&fakeSummarizer{text: "saved text"}, "/tmp/notes/bio.txt", doc, nil)

	_, err := s.Save(dir)
	assert.ErrorIs(t, err, ErrNoSummary)

	require.NoError(t, s.Summarize(context.Background()))
	path, err := s.Save(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "bio.txt_summary.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "saved text", string(data))
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in   string
		want Style
		err  bool
	}{
		{"", StyleConcise, false},
		{"detailed", StyleDetailed, false},
		{"bullets", StyleBulletPoints, false},
		{"bullet_points", StyleBulletPoints, false},
		{"haiku", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStyle(tt.in)
		if tt.err {
			assert.ErrorIs(t, err, ErrInvalidStyle)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
	assert.ErrorIs(t, NewSession(nil, "", "", nil).SetStyle("haiku"), ErrInvalidStyle)
}

func TestLLMSummarizer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"summary":"- ATP"}`)})
	got, err := NewLLMSummarizer(mock, 0).Summarize(context.Background(), doc, StyleBulletPoints)
	require.NoError(t, err)
	assert.Equal(t, "- ATP", got)

	req := mock.Calls[0]
	assert.Equal(t, summarySchema, req.Schema)
	assert.Contains(t, req.Messages[0].Content, "bullet points")
	assert.Contains(t, req.Messages[0].Content, doc)
}
