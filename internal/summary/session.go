// Package summary drives document summarisation: style selection, a single
// in-flight summariser call and saving the result to disk.
package summary

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/abhisek/studybuddy/internal/logger"
)

var (
	ErrBusy              = errors.New("summary already in progress")
	ErrStale             = errors.New("stale summary result")
	ErrInvalidStyle      = errors.New("unknown summary style")
	ErrNoDocument        = errors.New("no document loaded")
	ErrNoSummary         = errors.New("no summary to save")
	ErrEmptySummary      = errors.New("summariser returned an empty summary")
	ErrInvalidTransition = errors.New("operation not allowed while summarising")
)

// Summarizer condenses a document.
type Summarizer interface {
	Summarize(ctx context.Context, document string, style Style) (string, error)
}

// State is the phase of a summary session.
type State int

const (
	StateIdle    State = iota // No summary yet
	StateLoading              // Waiting for the summariser
	StateReady                // A summary is available
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Ticket is an outbound request tagged with the session generation.
type Ticket struct {
	Generation uint64
	Document   string
	Style      Style
}

// Result is the outcome of fetching a ticket.
type Result struct {
	Generation uint64
	Style      Style
	Text       string
	Err        error
}

// Session summarises one named document.
type Session struct {
	summarizer Summarizer
	name       string
	document   string
	log        *logger.Logger

	mu         sync.Mutex
	state      State
	prev       State
	style      Style
	generation uint64
	text       string
	textStyle  Style
	err        error
}

// NewSession returns an idle session for document. name is the document's
// file name and is used when saving.
func NewSession(s Summarizer, name, document string, log *logger.Logger) *Session {
	return &Session{
		summarizer: s,
		name:       name,
		document:   document,
		log:        logger.OrNop(log).With("component", "summary"),
		style:      StyleConcise,
	}
}

// State returns the current phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Style returns the selected style.
func (s *Session) Style() Style {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.style
}

// Text returns the latest summary and the style it was produced in.
func (s *Session) Text() (string, Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text, s.textStyle
}

// Err returns the failure of the most recent request, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// SetStyle selects the style for the next request.
func (s *Session) SetStyle(style Style) error {
	if !style.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStyle, style)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateLoading {
		return ErrInvalidTransition
	}
	s.style = style
	return nil
}

// Begin moves to Loading and returns the request to fetch.
func (s *Session) Begin() (Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateLoading {
		return Ticket{}, ErrBusy
	}
	if strings.TrimSpace(s.document) == "" {
		return Ticket{}, ErrNoDocument
	}

	s.generation++
	s.prev = s.state
	s.state = StateLoading
	s.err = nil
	s.log.Debug("summary started", "generation", s.generation, "style", s.style)

	return Ticket{Generation: s.generation, Document: s.document, Style: s.style}, nil
}

// Fetch performs the single summariser call for t.
func (s *Session) Fetch(ctx context.Context, t Ticket) Result {
	text, err := s.summarizer.Summarize(ctx, t.Document, t.Style)
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptySummary
	}
	return Result{Generation: t.Generation, Style: t.Style, Text: text, Err: err}
}

// Apply commits a fetch result. On failure the session returns to the state
// it was in before Begin and any earlier summary is kept.
func (s *Session) Apply(r Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLoading || r.Generation != s.generation {
		return ErrStale
	}

	if r.Err != nil {
		s.state = s.prev
		s.err = fmt.Errorf("summarize: %w", r.Err)
		s.log.Warn("summary failed", "error", r.Err)
		return s.err
	}

	s.text = r.Text
	s.textStyle = r.Style
	s.state = StateReady
	return nil
}

// Summarize runs Begin, Fetch and Apply in sequence.
func (s *Session) Summarize(ctx context.Context) error {
	t, err := s.Begin()
	if err != nil {
		return err
	}
	return s.Apply(s.Fetch(ctx, t))
}

// Cancel abandons an in-flight request.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateLoading {
		return
	}
	s.generation++
	s.state = s.prev
}

// FileName returns the name the summary is saved under.
func (s *Session) FileName() string {
	return FileName(s.name)
}

// Save writes the summary into dir and returns the file path.
func (s *Session) Save(dir string) (string, error) {
	text, _ := s.Text()
	if text == "" {
		return "", ErrNoSummary
	}
	path := filepath.Join(dir, s.FileName())
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("save summary: %w", err)
	}
	return path, nil
}

// FileName derives "<document>_summary.txt" from a document name, keeping
// only its base name.
func FileName(document string) string {
	base := filepath.Base(document)
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "document"
	}
	return base + "_summary.txt"
}
