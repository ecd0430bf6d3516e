package quiz

import "github.com/abhisek/studybuddy/internal/llm"

// QuestionsSchema defines the JSON schema for LLM quiz generation responses.
var QuestionsSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "An ordered set of quiz questions about a study document",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": MaxQuestions,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type": map[string]any{
							"type":        "string",
							"enum":        []any{string(KindMultipleChoice), string(KindTrueFalse)},
							"description": "mcq for multiple choice, true_false for a True/False statement",
						},
						"question": map[string]any{
							"type":        "string",
							"description": "The question or statement shown to the learner",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 options for mcq. Empty array for true_false.",
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"description": `For mcq: the exact text of the correct option. For true_false: "True" or "False".`,
						},
					},
					"required":             []any{"type", "question", "options", "correct_answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
