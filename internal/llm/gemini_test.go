package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-flash-lite", "gemini-2.5-flash-lite"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema_QuizShape(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 10,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type":           map[string]any{"type": "string", "enum": []any{"mcq", "true_false"}},
						"question":       map[string]any{"type": "string"},
						"options":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"correct_answer": map[string]any{"type": "string"},
					},
					"required":             []any{"type", "question", "options", "correct_answer"},
					"additionalProperties": false,
				},
			},
		},
		"required": []any{"questions"},
	}

	s := buildGeminiSchema(def)

	if s.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT, got %s", s.Type)
	}
	questions := s.Properties["questions"]
	if questions == nil || questions.Type != genai.TypeArray {
		t.Fatalf("expected questions ARRAY, got %+v", questions)
	}
	if questions.MinItems == nil || *questions.MinItems != 1 {
		t.Fatalf("expected minItems 1, got %v", questions.MinItems)
	}
	if questions.MaxItems == nil || *questions.MaxItems != 10 {
		t.Fatalf("expected maxItems 10, got %v", questions.MaxItems)
	}

	item := questions.Items
	if len(item.Properties) != 4 {
		t.Fatalf("expected 4 item properties, got %d", len(item.Properties))
	}
	if len(item.Properties["type"].Enum) != 2 {
		t.Fatalf("expected 2 enum values, got %v", item.Properties["type"].Enum)
	}
	if item.Properties["options"].Items.Type != genai.TypeString {
		t.Fatalf("expected STRING options, got %s", item.Properties["options"].Items.Type)
	}
	want := []string{"correct_answer", "options", "question", "type"}
	for i, k := range want {
		if item.PropertyOrdering[i] != k {
			t.Fatalf("property ordering = %v, want %v", item.PropertyOrdering, want)
		}
	}
	if len(item.Required) != 4 || len(s.Required) != 1 {
		t.Fatalf("unexpected required lists: %v / %v", item.Required, s.Required)
	}
}

func TestGeminiBlockReason(t *testing.T) {
	tests := []struct {
		name   string
		result *genai.GenerateContentResponse
		want   string
	}{
		{"clean", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonStop}}}, ""},
		{"safety finish", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}}}, "SAFETY"},
		{"prompt blocked", &genai.GenerateContentResponse{PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: "OTHER"}}, "OTHER"},
	}
	for _, tt := range tests {
		if got := geminiBlockReason(tt.result); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestMapGeminiStopReason(t *testing.T) {
	max := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonMaxTokens}}}
	if got := mapGeminiStopReason(max); got != "max_tokens" {
		t.Fatalf("got %q", got)
	}
	if got := mapGeminiStopReason(&genai.GenerateContentResponse{}); got != "end" {
		t.Fatalf("got %q", got)
	}
}
