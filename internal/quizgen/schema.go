package quizgen

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/asmit/lexiq/internal/llm"
)

// QuestionSchema is the structured-output hint sent to the backend. It
// describes Shape A; backends that ignore the hint may still answer in
// Shape B, which the normalizer also accepts.
var QuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "A single multiple-choice English question with one correct answer and three distractors",
	Definition:  shapeADefinition,
}

var shapeADefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question": map[string]any{
			"type":        "string",
			"description": "The question text shown to the test-taker",
		},
		"correct_answer": map[string]any{
			"type":        "string",
			"description": "The text of the correct option",
		},
		"distractors": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"minItems":    3,
			"maxItems":    3,
			"description": "Exactly 3 plausible but incorrect option texts",
		},
		"explanation": map[string]any{
			"type":        "string",
			"description": "One or two sentences on why the correct answer is right",
		},
	},
	"required": []any{"question", "correct_answer", "distractors"},
}

var shapeBDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question": map[string]any{"type": "string"},
		"options": map[string]any{
			"type":                 "object",
			"minProperties":        4,
			"maxProperties":        4,
			"additionalProperties": map[string]any{"type": "string"},
		},
		"explanation": map[string]any{"type": "string"},
	},
	"required": []any{"question", "options"},
}

var (
	shapeACompiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
		return compileDefinition("shape-a", shapeADefinition)
	})
	shapeBCompiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
		return compileDefinition("shape-b", shapeBDefinition)
	})
)

// compileDefinition compiles a definition map into a validator.
func compileDefinition(name string, def map[string]any) (*jsonschema.Schema, error) {
	// The jsonschema library expects a parsed JSON value (any), not raw bytes.
	// Marshal then unmarshal to get a clean any representation.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	return compiled, nil
}
