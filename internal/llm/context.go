package llm

import "context"

// Purpose labels recorded with every LLM event.
const (
	PurposeSummary      = "summary"
	PurposeQuiz         = "quiz-gen"
	PurposeChatGreeting = "chat-greeting"
	PurposeChatAnswer   = "chat-answer"

	purposeOther = "other"
)

// Purposes lists the known purpose labels.
func Purposes() []string {
	return []string{PurposeSummary, PurposeQuiz, PurposeChatGreeting, PurposeChatAnswer}
}

type purposeKey struct{}

// WithPurpose tags ctx so the logging middleware can record why a call was
// made.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the purpose attached to ctx, or "other".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return purposeOther
}
