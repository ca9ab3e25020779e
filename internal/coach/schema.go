package coach

import "github.com/abhisek/linedrill/internal/llm"

// HintSchema is the structured output the coach asks for.
var HintSchema = &llm.Schema{
	Name:        "coach-question",
	Description: "One Socratic question guiding a student to fix a line drawing",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "A single question ending with a question mark that does not reveal the answer",
				"maxLength":   MaxQuestionLength,
			},
		},
		"required":             []any{"question"},
		"additionalProperties": false,
	},
}
