package quizgen

import (
	"encoding/json"
	"errors"
	"testing"
)

func shapeAJSON() json.RawMessage {
	return json.RawMessage(`{
		"question": "What does 'meticulous' most nearly mean?",
		"correct_answer": "Very careful",
		"distractors": ["Careless", "Quick", "Aggressive"],
		"explanation": "Meticulous describes someone who pays close attention to detail."
	}`)
}

func shapeBJSON(correctField string) json.RawMessage {
	return json.RawMessage(`{
		"question": "Identify the correct usage.",
		"options": {
			"A": "He is senior than me.",
			"B": "He is senior to me.",
			"C": "He is senior from me.",
			"D": "He is senior over me."
		},
		"` + correctField + `": "B",
		"explanation": "Senior takes the preposition 'to'."
	}`)
}

func TestNormalize_ShapeA(t *testing.T) {
	q, err := Normalize(shapeAJSON())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.Prompt != "What does 'meticulous' most nearly mean?" {
		t.Errorf("unexpected prompt: %q", q.Prompt)
	}
	if q.Correct != "Very careful" {
		t.Errorf("unexpected correct answer: %q", q.Correct)
	}
	if len(q.Distractors) != 3 {
		t.Fatalf("expected 3 distractors, got %d", len(q.Distractors))
	}
	if q.Distractors[0] != "Careless" {
		t.Errorf("distractors not verbatim: %v", q.Distractors)
	}
	if q.Explanation == "" {
		t.Error("explanation dropped")
	}
}

func TestNormalize_ShapeB_CorrectnessFieldVariants(t *testing.T) {
	for _, field := range []string{"correct", "correct_label", "answer"} {
		q, err := Normalize(shapeBJSON(field))
		if err != nil {
			t.Fatalf("field %q: unexpected error: %v", field, err)
		}
		if q.Correct != "He is senior to me." {
			t.Errorf("field %q: unexpected correct answer: %q", field, q.Correct)
		}
	}
}

func TestNormalize_ShapeB_DistractorsInLabelOrder(t *testing.T) {
	q, err := Normalize(shapeBJSON("correct"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"He is senior than me.",
		"He is senior from me.",
		"He is senior over me.",
	}
	for i, d := range q.Distractors {
		if d != want[i] {
			t.Fatalf("distractor %d = %q, want %q", i, d, want[i])
		}
	}
}

func TestNormalize_ShapeB_UnknownCorrectLabel(t *testing.T) {
	raw := json.RawMessage(`{
		"question": "Q?",
		"options": {"A": "w", "B": "x", "C": "y", "D": "z"},
		"correct": "E"
	}`)

	_, err := Normalize(raw)
	var schemaErr *ErrUnrecognizedSchema
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected ErrUnrecognizedSchema, got %v", err)
	}
}

func TestNormalize_NeitherShape(t *testing.T) {
	raw := json.RawMessage(`{"question": "Q?", "answers": ["a", "b"]}`)

	_, err := Normalize(raw)
	var schemaErr *ErrUnrecognizedSchema
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected ErrUnrecognizedSchema, got %v", err)
	}
}

func TestNormalize_InvalidJSON(t *testing.T) {
	_, err := Normalize(json.RawMessage(`not json at all`))
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestNormalize_FencedJSON(t *testing.T) {
	fenced := json.RawMessage("```json\n" + string(shapeAJSON()) + "\n```")

	q, err := Normalize(fenced)
	if err != nil {
		t.Fatalf("unexpected error for fenced JSON: %v", err)
	}
	if q.Correct != "Very careful" {
		t.Errorf("unexpected correct answer: %q", q.Correct)
	}
}

func TestNormalize_WrongDistractorCount(t *testing.T) {
	raw := json.RawMessage(`{
		"question": "Q?",
		"correct_answer": "right",
		"distractors": ["a", "b"]
	}`)

	var schemaErr *ErrUnrecognizedSchema
	_, err := Normalize(raw)
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected ErrUnrecognizedSchema, got %v", err)
	}
}

func TestNormalize_DuplicateTexts(t *testing.T) {
	raw := json.RawMessage(`{
		"question": "Q?",
		"correct_answer": "same",
		"distractors": ["same", "b", "c"]
	}`)

	var schemaErr *ErrUnrecognizedSchema
	_, err := Normalize(raw)
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected ErrUnrecognizedSchema, got %v", err)
	}
}

func TestNormalize_EmptyFields(t *testing.T) {
	raw := json.RawMessage(`{
		"question": "",
		"correct_answer": "right",
		"distractors": ["a", "b", "c"]
	}`)

	var schemaErr *ErrUnrecognizedSchema
	_, err := Normalize(raw)
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected ErrUnrecognizedSchema for empty question, got %v", err)
	}
}

func TestNormalize_FourDistinctTexts(t *testing.T) {
	for _, raw := range []json.RawMessage{shapeAJSON(), shapeBJSON("correct")} {
		q, err := Normalize(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		seen := map[string]bool{q.Correct: true}
		for _, d := range q.Distractors {
			if seen[d] {
				t.Fatalf("duplicate answer text %q", d)
			}
			seen[d] = true
		}
		if len(seen) != 4 {
			t.Fatalf("expected 4 distinct texts, got %d", len(seen))
		}
	}
}
