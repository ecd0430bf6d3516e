package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive structured JSON.
type Provider interface {
	// Generate sends a prompt to the LLM and returns a structured response.
	// The request's Schema field, when set, instructs the provider to return
	// JSON conforming to that schema. The response Content will be the
	// validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request is one call to the model.
type Request struct {
	System string

	// Messages holds the user turn. Summaries, quizzes and chat turns are
	// all single-turn requests; the document travels inside the message.
	Messages []Message

	// Schema, when set, makes the provider ask for structured output and
	// validate the reply against it. Without one Content is plain text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// UserRequest builds a single-turn request.
func UserRequest(system, user string, schema *Schema) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: user}},
		Schema:   schema,
	}
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Name must be unique: compiled schemas
// are cached by it.
type Schema struct {
	Name        string // kebab-case, e.g. "quiz-questions"
	Description string
	Definition  map[string]any
}

// Response is the model's reply.
type Response struct {
	// Content is validated JSON when the request had a Schema.
	Content json.RawMessage

	Usage Usage

	// Model is the model that served the request, which may differ from
	// the configured alias.
	Model string

	// StopReason is "end" or "max_tokens".
	StopReason string
}

// Decode unmarshals Content into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Content, v); err != nil {
		return fmt.Errorf("failed to parse LLM response: %w", err)
	}
	return nil
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
