package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/logger"
)

var (
	// ErrEmptyInput is returned for blank submissions; nothing is sent.
	ErrEmptyInput = errors.New("empty message")

	// ErrBusy is returned while a reply is outstanding.
	ErrBusy = errors.New("waiting for a reply")

	// ErrInvalidTransition is returned for operations not legal in the current state.
	ErrInvalidTransition = errors.New("operation not allowed in current chat state")

	// ErrStale is returned when a reply belongs to an abandoned request.
	ErrStale = errors.New("stale chat reply")
)

// Identity holds the learner's display name across sessions.
type Identity interface {
	// Name returns the stored name and whether one is set.
	Name(ctx context.Context) (string, bool, error)

	// SetName stores name. It may be written only once.
	SetName(ctx context.Context, name string) error
}

// Answerer answers a prompt about a document.
type Answerer interface {
	Answer(ctx context.Context, prompt, document string) (string, error)
}

// State is the phase of a chat session.
type State int

const (
	StateNew          State = iota // Not started
	StateAwaitingName              // Asked for the learner's name
	StateGreeting                  // Waiting for the personalised greeting
	StateIdle                      // Conversing, ready for input
	StateAnswering                 // Conversing, waiting for a reply
	StateClosed                    // Ended; late replies are dropped
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateAwaitingName:
		return "awaiting-name"
	case StateGreeting:
		return "greeting"
	case StateIdle:
		return "idle"
	case StateAnswering:
		return "answering"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Loading reports whether a reply is outstanding.
func (s State) Loading() bool {
	return s == StateGreeting || s == StateAnswering
}

// RequestKind distinguishes the greeting from ordinary turns.
type RequestKind int

const (
	RequestGreeting RequestKind = iota
	RequestTurn
)

func (k RequestKind) purpose() string {
	if k == RequestGreeting {
		return llm.PurposeChatGreeting
	}
	return llm.PurposeChatAnswer
}

// Ticket is an outbound request tagged with the session generation.
type Ticket struct {
	Generation uint64
	Kind       RequestKind
	Prompt     string
	Document   string
}

// Reply is the outcome of fetching a ticket.
type Reply struct {
	Generation uint64
	Kind       RequestKind
	Text       string
	Err        error
}

// Session is a conversation about one document. All methods are safe for
// concurrent use.
type Session struct {
	answerer Answerer
	identity Identity
	document string
	log      *logger.Logger

	mu         sync.Mutex
	state      State
	transcript Transcript
	name       string
	generation uint64
	failures   int
}

// NewSession returns an unstarted session.
func NewSession(answerer Answerer, identity Identity, document string, log *logger.Logger) *Session {
	return &Session{
		answerer: answerer,
		identity: identity,
		document: document,
		log:      logger.OrNop(log).With("component", "chat"),
	}
}

// State returns the current phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Transcript returns a copy of the conversation so far.
func (s *Session) Transcript() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Turns()
}

// Name returns the learner's display name, if known.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Failures returns how many replies were replaced by fallback text.
func (s *Session) Failures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures
}

// Start opens the conversation. With a stored name it returns a greeting
// ticket (ok is true). Otherwise it asks for the name and returns ok false.
func (s *Session) Start(ctx context.Context) (t Ticket, ok bool, err error) {
	name, found, idErr := s.identity.Name(ctx)
	if idErr != nil {
		s.log.Warn("reading display name failed", "error", idErr)
		found = false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateNew {
		return Ticket{}, false, ErrInvalidTransition
	}

	if found && strings.TrimSpace(name) != "" {
		s.name = name
		return s.greetLocked(), true, nil
	}

	s.transcript.Append(SpeakerAssistant, NamePrompt)
	s.state = StateAwaitingName
	s.log.Debug("chat awaiting name")
	return Ticket{}, false, nil
}

// Submit handles learner input. While awaiting the name, the input becomes
// the name and a greeting ticket is returned. While idle, it becomes a
// question sent verbatim with the document.
func (s *Session) Submit(ctx context.Context, text string) (Ticket, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Ticket{}, ErrEmptyInput
	}

	s.mu.Lock()
	state := s.state
	switch {
	case state.Loading():
		s.mu.Unlock()
		return Ticket{}, ErrBusy
	case state == StateIdle:
		s.transcript.Append(SpeakerUser, text)
		s.generation++
		s.state = StateAnswering
		t := Ticket{
			Generation: s.generation,
			Kind:       RequestTurn,
			Prompt:     text,
			Document:   s.document,
		}
		s.mu.Unlock()
		return t, nil
	case state != StateAwaitingName:
		s.mu.Unlock()
		return Ticket{}, ErrInvalidTransition
	}

	s.transcript.Append(SpeakerUser, trimmed)
	s.name = trimmed
	t := s.greetLocked()
	s.mu.Unlock()

	if err := s.identity.SetName(ctx, trimmed); err != nil {
		s.log.Warn("storing display name failed", "error", err)
	}
	return t, nil
}

// greetLocked moves to Greeting and returns the greeting ticket.
func (s *Session) greetLocked() Ticket {
	s.generation++
	s.state = StateGreeting
	s.log.Debug("chat greeting requested", "generation", s.generation)
	return Ticket{
		Generation: s.generation,
		Kind:       RequestGreeting,
		Prompt:     GreetingInstruction(s.name),
		Document:   s.document,
	}
}

// Fetch performs the single answerer call for t. It touches no session
// state and may run on any goroutine.
func (s *Session) Fetch(ctx context.Context, t Ticket) Reply {
	ctx = llm.WithPurpose(ctx, t.Kind.purpose())
	text, err := s.answerer.Answer(ctx, t.Prompt, t.Document)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("empty reply")
	}
	return Reply{Generation: t.Generation, Kind: t.Kind, Text: text, Err: err}
}

// Apply appends a reply to the transcript. Failures are replaced by fallback
// text, logged and counted; they are not returned. Replies from an abandoned
// generation are dropped with ErrStale.
func (s *Session) Apply(r Reply) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Loading() || r.Generation != s.generation {
		s.log.Debug("stale chat reply dropped", "generation", r.Generation, "current", s.generation)
		return ErrStale
	}

	text := r.Text
	if r.Err != nil {
		s.failures++
		if r.Kind == RequestGreeting {
			text = GreetingFallback(s.name)
		} else {
			text = TurnFallback
		}
		s.log.Warn("chat reply failed", "kind", r.Kind.purpose(), "failures", s.failures, "error", r.Err)
	}

	s.transcript.Append(SpeakerAssistant, text)
	s.state = StateIdle
	return nil
}

// Open runs Start and, when a greeting is due, fetches and applies it.
func (s *Session) Open(ctx context.Context) error {
	t, ok, err := s.Start(ctx)
	if err != nil || !ok {
		return err
	}
	return s.Apply(s.Fetch(ctx, t))
}

// Send runs Submit, Fetch and Apply in sequence.
func (s *Session) Send(ctx context.Context, text string) error {
	t, err := s.Submit(ctx, text)
	if err != nil {
		return err
	}
	return s.Apply(s.Fetch(ctx, t))
}

// Close ends the session. Outstanding replies become stale.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.state = StateClosed
}
