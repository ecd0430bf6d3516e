package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match ("" = any)
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
	Failures     int
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo records and queries LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns the event with id, or nil if there is none.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// ActivityKind labels a recorded study action.
type ActivityKind string

const (
	ActivityNote    ActivityKind = "note"
	ActivityQuiz    ActivityKind = "quiz"
	ActivityAttempt ActivityKind = "attempt"
)

// ActivityTotals is the aggregate of a user's recorded activity.
type ActivityTotals struct {
	Notes        int
	Quizzes      int
	Attempts     int
	AverageScore float64
	LastActivity *time.Time
}

// ActivityRepo records study actions per user.
type ActivityRepo interface {
	// RecordNote records that a document was loaded.
	RecordNote(ctx context.Context, userID, document string) error

	// RecordQuiz records that a quiz was generated.
	RecordQuiz(ctx context.Context, userID, document string, questions int) error

	// RecordAttempt records a scored attempt with its percentage.
	RecordAttempt(ctx context.Context, userID, attemptID string, percent, total int) error

	// Totals aggregates everything recorded for userID.
	Totals(ctx context.Context, userID string) (ActivityTotals, error)

	// Clear deletes all activity for userID.
	Clear(ctx context.Context, userID string) error
}

// SettingsRepo is a small per-device key/value store.
type SettingsRepo interface {
	// Get returns the value for name and whether it is set.
	Get(ctx context.Context, name string) (string, bool, error)

	// SetOnce stores value only if name is unset. It reports whether it wrote.
	SetOnce(ctx context.Context, name, value string) (bool, error)

	// Delete removes name. Deleting an unset name is not an error.
	Delete(ctx context.Context, name string) error
}
