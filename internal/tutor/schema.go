package tutor

import "github.com/ritwikg/ctutor/internal/llm"

// quizSchema defines the JSON schema for quiz generation responses.
func quizSchema() *llm.Schema {
	return &llm.Schema{
		Name:        "c-quiz",
		Description: "A multiple choice quiz question about a C programming topic",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"description": "The quiz question shown to the learner",
				},
				"options": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "string",
					},
					"description": "3 to 4 answer options",
				},
				"answer": map[string]any{
					"type":        "string",
					"description": "The text of the correct option",
				},
				"explanation": map[string]any{
					"type":        "string",
					"description": "A short explanation of why the answer is correct",
				},
			},
			"required":             []any{"question", "options", "answer"},
			"additionalProperties": false,
		},
	}
}
