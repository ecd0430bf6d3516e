package summary

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	sum "github.com/abhisek/studybuddy/internal/summary"
)

type stubSummarizer struct {
	text string
	err  error
}

func (s *stubSummarizer) Summarize(_ context.Context, _ string, style sum.Style) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.text + " (" + string(style) + ")", nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// drain runs cmd and any batched commands, returning the messages produced.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func newTestScreen(t *testing.T, s sum.Summarizer) *SummaryScreen {
	t.Helper()
	session := sum.NewSession(s, "notes.txt", "Photosynthesis turns light into sugar.", nil)
	return New(session, t.TempDir())
}

func generate(t *testing.T, s *SummaryScreen) {
	t.Helper()
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if s.session.State() != sum.StateLoading {
		t.Fatalf("state = %v, want loading", s.session.State())
	}
	for _, msg := range drain(cmd) {
		s.Update(msg)
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := newTestScreen(t, &stubSummarizer{text: "ok"})
	if s.Title() != "Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Summary")
	}
}

func TestSummaryScreen_GenerateAndShow(t *testing.T) {
	s := newTestScreen(t, &stubSummarizer{text: "Plants make food"})
	generate(t, s)

	if s.session.State() != sum.StateReady {
		t.Fatalf("state = %v, want ready", s.session.State())
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Plants make food") {
		t.Error("expected summary text in view")
	}
}

func TestSummaryScreen_StyleCycling(t *testing.T) {
	s := newTestScreen(t, &stubSummarizer{text: "ok"})

	s.Update(specialKey(tea.KeyRight))
	if s.session.Style() != sum.StyleDetailed {
		t.Errorf("style = %v, want detailed", s.session.Style())
	}
	s.Update(specialKey(tea.KeyRight))
	s.Update(specialKey(tea.KeyRight))
	if s.session.Style() != sum.StyleConcise {
		t.Errorf("style should wrap back to concise, got %v", s.session.Style())
	}
	s.Update(specialKey(tea.KeyLeft))
	if s.session.Style() != sum.StyleBulletPoints {
		t.Errorf("style = %v, want bullet_points", s.session.Style())
	}
}

func TestSummaryScreen_FailureShowsError(t *testing.T) {
	s := newTestScreen(t, &stubSummarizer{err: errors.New("backend down")})
	generate(t, s)

	if s.session.State() != sum.StateIdle {
		t.Errorf("state = %v, want idle after failure", s.session.State())
	}
	if !strings.Contains(s.View(100, 30), "backend down") {
		t.Error("expected error in view")
	}
}

func TestSummaryScreen_Save(t *testing.T) {
	s := newTestScreen(t, &stubSummarizer{text: "Saved text"})
	generate(t, s)

	s.Update(keyPress('s'))
	if !strings.HasPrefix(s.notice, "Saved to ") {
		t.Fatalf("notice = %q, want saved message", s.notice)
	}
	data, err := os.ReadFile(filepath.Join(s.saveDir, "notes.txt_summary.txt"))
	if err != nil {
		t.Fatalf("reading saved summary: %v", err)
	}
	if !strings.Contains(string(data), "Saved text") {
		t.Errorf("saved file = %q", data)
	}
}

func TestSummaryScreen_SaveWithoutSummary(t *testing.T) {
	s := newTestScreen(t, &stubSummarizer{text: "ok"})
	s.Update(keyPress('s'))
	if s.notice != sum.ErrNoSummary.Error() {
		t.Errorf("notice = %q, want %q", s.notice, sum.ErrNoSummary.Error())
	}
}

func TestSummaryScreen_CloseDropsResult(t *testing.T) {
	s := newTestScreen(t, &stubSummarizer{text: "late"})
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	s.Close()

	for _, msg := range drain(cmd) {
		s.Update(msg)
	}
	if text, _ := s.session.Text(); text != "" {
		t.Errorf("expected late result dropped, got %q", text)
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := newTestScreen(t, &stubSummarizer{text: "ok"})
	if len(s.KeyHints()) != 3 {
		t.Errorf("KeyHints length = %d, want 3", len(s.KeyHints()))
	}
	generate(t, s)
	if len(s.KeyHints()) != 4 {
		t.Errorf("KeyHints length after summary = %d, want 4", len(s.KeyHints()))
	}
}
