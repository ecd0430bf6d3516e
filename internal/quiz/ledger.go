package quiz

// Ledger maps a question index to the answer text the learner selected.
// It holds no knowledge of the questions themselves.
type Ledger struct {
	answers map[int]string
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{answers: make(map[int]string)}
}

// Set records value as the answer for index, replacing any earlier answer.
func (l *Ledger) Set(index int, value string) {
	l.answers[index] = value
}

// Get returns the answer for index and whether one was recorded.
func (l *Ledger) Get(index int) (string, bool) {
	v, ok := l.answers[index]
	return v, ok
}

// Len returns the number of answered indices.
func (l *Ledger) Len() int {
	return len(l.answers)
}

// Covers reports whether every index in [0, n) has an answer.
func (l *Ledger) Covers(n int) bool {
	for i := range n {
		if _, ok := l.answers[i]; !ok {
			return false
		}
	}
	return true
}

// Snapshot returns a copy of the recorded answers.
func (l *Ledger) Snapshot() map[int]string {
	out := make(map[int]string, len(l.answers))
	for k, v := range l.answers {
		out[k] = v
	}
	return out
}
