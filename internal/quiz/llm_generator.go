package quiz

import (
	"context"
	"fmt"

	"github.com/abhisek/studybuddy/internal/llm"
)

// LLMConfig tunes the LLM generator.
type LLMConfig struct {
	MaxTokens        int
	Temperature      float64
	MaxDocumentChars int
}

// DefaultLLMConfig returns the generator defaults.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		MaxTokens:        4096,
		Temperature:      0.7,
		MaxDocumentChars: 60_000,
	}
}

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   LLMConfig
}

// NewLLMGenerator creates a generator over provider.
func NewLLMGenerator(provider llm.Provider, cfg LLMConfig) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

type questionsOutput struct {
	Questions []Question `json:"questions"`
}

// GenerateQuiz asks the model for req.Count questions about req.Document.
func (g *LLMGenerator) GenerateQuiz(ctx context.Context, req Request) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuiz)

	count := min(max(req.Count, MinQuestions), MaxQuestions)
	req.Count = count

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req, llm.ClipText(req.Document, g.config.MaxDocumentChars))},
		},
		Schema:      QuestionsSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var out questionsOutput
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}

	questions := out.Questions
	if len(questions) > count {
		questions = questions[:count]
	}
	for i := range questions {
		if questions[i].Kind == KindTrueFalse {
			questions[i].Options = nil
		}
	}
	return questions, nil
}
