package summary

import (
	"context"
	"fmt"

	"github.com/abhisek/studybuddy/internal/llm"
)

const systemPrompt = `You summarise study documents for a learner.

Rules:
- Use only what the document says.
- Keep the author's terminology so the learner can find it again in the text.
- Plain text only. No markdown headings.`

var summarySchema = &llm.Schema{
	Name:        "document-summary",
	Description: "A summary of the document",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "The summary text",
			},
		},
		"required":             []any{"summary"},
		"additionalProperties": false,
	},
}

// LLMSummarizer implements Summarizer using an LLM provider.
type LLMSummarizer struct {
	provider         llm.Provider
	maxDocumentChars int
}

// NewLLMSummarizer creates a summariser over provider.
func NewLLMSummarizer(provider llm.Provider, maxDocumentChars int) *LLMSummarizer {
	return &LLMSummarizer{provider: provider, maxDocumentChars: maxDocumentChars}
}

func (l *LLMSummarizer) Summarize(ctx context.Context, document string, style Style) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeSummary)

	user := style.instruction() + "\n\nDocument:\n" + llm.ClipText(document, l.maxDocumentChars)
	req := llm.UserRequest(systemPrompt, user, summarySchema)
	req.MaxTokens = 2048
	req.Temperature = 0.3

	resp, err := l.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("LLM summary failed: %w", err)
	}

	var out struct {
		Summary string `json:"summary"`
	}
	if err := resp.Decode(&out); err != nil {
		return "", err
	}
	return out.Summary, nil
}
