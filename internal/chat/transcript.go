package chat

import "slices"

// Speaker identifies who produced a turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Turn is one message in the conversation.
type Turn struct {
	Speaker Speaker
	Text    string
}

// Transcript is an append-only, ordered list of turns.
type Transcript struct {
	turns []Turn
}

// Append adds a turn at the end.
func (t *Transcript) Append(speaker Speaker, text string) {
	t.turns = append(t.turns, Turn{Speaker: speaker, Text: text})
}

// Len returns the number of turns.
func (t *Transcript) Len() int { return len(t.turns) }

// Turns returns a copy of all turns in order.
func (t *Transcript) Turns() []Turn { return slices.Clone(t.turns) }

// Last returns the most recent turn.
func (t *Transcript) Last() (Turn, bool) {
	if len(t.turns) == 0 {
		return Turn{}, false
	}
	return t.turns[len(t.turns)-1], true
}
