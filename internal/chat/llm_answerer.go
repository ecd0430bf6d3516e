package chat

import (
	"context"
	"fmt"

	"github.com/abhisek/studybuddy/internal/llm"
)

const systemPrompt = `You are an AI Study Buddy helping a learner study one document.

Rules:
- Ground every answer in the document provided as context.
- If the document does not cover the question, say so and suggest what in the document is closest.
- Be friendly, clear and concise. Use short paragraphs or lists.
- Plain text only. No markdown headings.`

// answerSchema wraps free text in a JSON object so every provider returns
// validated structured output.
var answerSchema = &llm.Schema{
	Name:        "chat-answer",
	Description: "A reply to the learner",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"answer": map[string]any{
				"type":        "string",
				"description": "The reply shown to the learner",
			},
		},
		"required":             []any{"answer"},
		"additionalProperties": false,
	},
}

// LLMAnswerer implements Answerer using an LLM provider.
type LLMAnswerer struct {
	provider         llm.Provider
	maxTokens        int
	maxDocumentChars int
}

// NewLLMAnswerer creates an answerer over provider. maxDocumentChars caps
// the document context; zero means no cap.
func NewLLMAnswerer(provider llm.Provider, maxDocumentChars int) *LLMAnswerer {
	return &LLMAnswerer{provider: provider, maxTokens: 1024, maxDocumentChars: maxDocumentChars}
}

func (a *LLMAnswerer) Answer(ctx context.Context, prompt, document string) (string, error) {
	user := "Document context:\n" + llm.ClipText(document, a.maxDocumentChars) + "\n\nQuestion:\n" + prompt

	req := llm.UserRequest(systemPrompt, user, answerSchema)
	req.MaxTokens = a.maxTokens
	req.Temperature = 0.5

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("LLM answer failed: %w", err)
	}

	var out struct {
		Answer string `json:"answer"`
	}
	if err := resp.Decode(&out); err != nil {
		return "", err
	}
	return out.Answer, nil
}
