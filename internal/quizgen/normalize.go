package quizgen

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrUnrecognizedSchema indicates backend output that matches neither of
// the two accepted response shapes.
type ErrUnrecognizedSchema struct {
	Reason string
}

func (e *ErrUnrecognizedSchema) Error() string {
	return fmt.Sprintf("unrecognized response schema: %s", e.Reason)
}

// correctLabelFields are the accepted names for Shape B's correctness
// field, probed in this order. Observed backend output varies between
// them; the order is fixed here and nowhere else.
var correctLabelFields = []string{"correct", "correct_label", "answer"}

// shapeA is the explicit-answer response shape.
type shapeA struct {
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correct_answer"`
	Distractors   []string `json:"distractors"`
	Explanation   string   `json:"explanation"`
}

// Normalize reduces backend output into a CanonicalQuestion. It accepts
// two shapes, distinguished by a single field-presence check:
//   - Shape A: "correct_answer" + "distractors" (3 texts)
//   - Shape B: "options" (4 label→text entries) + a field naming the
//     correct label
//
// Anything else fails with ErrUnrecognizedSchema. The input is never
// mutated.
func Normalize(raw json.RawMessage) (*CanonicalQuestion, error) {
	cleaned := stripFences(string(raw))

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("parse backend output: %w", err)
	}

	var q *CanonicalQuestion
	var err error

	switch {
	case hasField(parsed, "distractors"):
		q, err = normalizeShapeA(cleaned)
	case hasField(parsed, "options"):
		q, err = normalizeShapeB(cleaned, parsed)
	default:
		return nil, &ErrUnrecognizedSchema{Reason: "neither \"distractors\" nor \"options\" present"}
	}
	if err != nil {
		return nil, err
	}

	if err := checkCanonical(q); err != nil {
		return nil, err
	}
	return q, nil
}

func normalizeShapeA(cleaned string) (*CanonicalQuestion, error) {
	if err := validateShape(shapeACompiled, cleaned, "A"); err != nil {
		return nil, err
	}

	var s shapeA
	if err := json.Unmarshal([]byte(cleaned), &s); err != nil {
		return nil, fmt.Errorf("decode shape A: %w", err)
	}

	return &CanonicalQuestion{
		Prompt:      strings.TrimSpace(s.Question),
		Correct:     strings.TrimSpace(s.CorrectAnswer),
		Distractors: trimAll(s.Distractors),
		Explanation: strings.TrimSpace(s.Explanation),
	}, nil
}

func normalizeShapeB(cleaned string, parsed map[string]json.RawMessage) (*CanonicalQuestion, error) {
	if err := validateShape(shapeBCompiled, cleaned, "B"); err != nil {
		return nil, err
	}

	var question, explanation string
	if err := json.Unmarshal(parsed["question"], &question); err != nil {
		return nil, &ErrUnrecognizedSchema{Reason: "shape B: \"question\" is not a string"}
	}
	if rawExp, ok := parsed["explanation"]; ok {
		// Tolerated as optional; a non-string explanation is dropped.
		_ = json.Unmarshal(rawExp, &explanation)
	}

	var options map[string]string
	if err := json.Unmarshal(parsed["options"], &options); err != nil {
		return nil, &ErrUnrecognizedSchema{Reason: "shape B: \"options\" is not a label→text map"}
	}

	correctLabel, err := findCorrectLabel(parsed, options)
	if err != nil {
		return nil, err
	}

	// Distractors are the non-correct texts in label order. JSON objects
	// carry no order in Go, so label order means sorted labels (A..D).
	labels := make([]string, 0, len(options))
	for l := range options {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	distractors := make([]string, 0, 3)
	for _, l := range labels {
		if l == correctLabel {
			continue
		}
		distractors = append(distractors, strings.TrimSpace(options[l]))
	}

	return &CanonicalQuestion{
		Prompt:      strings.TrimSpace(question),
		Correct:     strings.TrimSpace(options[correctLabel]),
		Distractors: distractors,
		Explanation: strings.TrimSpace(explanation),
	}, nil
}

// findCorrectLabel probes the accepted correctness field names in order
// and returns the first whose value names an existing option.
func findCorrectLabel(parsed map[string]json.RawMessage, options map[string]string) (string, error) {
	for _, field := range correctLabelFields {
		rawLabel, ok := parsed[field]
		if !ok {
			continue
		}
		var label string
		if err := json.Unmarshal(rawLabel, &label); err != nil {
			continue
		}
		label = strings.TrimSpace(label)
		if _, ok := options[label]; ok {
			return label, nil
		}
		return "", &ErrUnrecognizedSchema{
			Reason: fmt.Sprintf("shape B: %q names label %q not present in options", field, label),
		}
	}
	return "", &ErrUnrecognizedSchema{Reason: "shape B: no correctness field found"}
}

// validateShape runs the compiled schema for one shape over the output.
func validateShape(compiled func() (*jsonschema.Schema, error), cleaned, shape string) error {
	v, err := compiled()
	if err != nil {
		return fmt.Errorf("compile shape %s schema: %w", shape, err)
	}

	var parsed any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return fmt.Errorf("parse backend output: %w", err)
	}

	if err := v.Validate(parsed); err != nil {
		return &ErrUnrecognizedSchema{Reason: fmt.Sprintf("shape %s validation: %v", shape, err)}
	}
	return nil
}

// checkCanonical enforces the canonical invariant: a non-empty prompt and
// exactly 4 pairwise-distinct answer texts.
func checkCanonical(q *CanonicalQuestion) error {
	if q.Prompt == "" {
		return &ErrUnrecognizedSchema{Reason: "empty question text"}
	}
	if q.Correct == "" {
		return &ErrUnrecognizedSchema{Reason: "empty correct answer"}
	}
	if len(q.Distractors) != 3 {
		return &ErrUnrecognizedSchema{Reason: fmt.Sprintf("expected 3 distractors, got %d", len(q.Distractors))}
	}

	seen := map[string]bool{q.Correct: true}
	for _, d := range q.Distractors {
		if d == "" {
			return &ErrUnrecognizedSchema{Reason: "empty distractor text"}
		}
		if seen[d] {
			return &ErrUnrecognizedSchema{Reason: fmt.Sprintf("duplicate answer text %q", d)}
		}
		seen[d] = true
	}
	return nil
}

func hasField(parsed map[string]json.RawMessage, field string) bool {
	_, ok := parsed[field]
	return ok
}

// stripFences removes a surrounding markdown code fence, which some
// models emit even when asked for bare JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
