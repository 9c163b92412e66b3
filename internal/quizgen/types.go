package quizgen

// QuestionSpec describes one question to generate. Constructed fresh per
// question; immutable once built.
type QuestionSpec struct {
	// Category is the question type to generate.
	Category Category

	// Difficulty is the target difficulty, 1 (beginner) to 10 (expert).
	// Callers clamp before constructing a spec; the builder formats as-is.
	Difficulty int

	// Sequence is the 1-based position of this question in the session.
	Sequence int
}

// CanonicalQuestion is the normalized form of a generated question,
// independent of which response shape the backend produced.
type CanonicalQuestion struct {
	// Prompt is the question text shown to the test-taker.
	Prompt string

	// Correct is the text of the correct answer.
	Correct string

	// Distractors are the three incorrect answer texts, pairwise distinct
	// and distinct from Correct.
	Distractors []string

	// Explanation is a short rationale shown after answering. May be empty.
	Explanation string
}

// Label is one of the four fixed identifiers used to present answer
// choices positionally.
type Label string

const (
	LabelA Label = "A"
	LabelB Label = "B"
	LabelC Label = "C"
	LabelD Label = "D"
)

// Labels returns the four presentation labels in fixed order.
func Labels() []Label {
	return []Label{LabelA, LabelB, LabelC, LabelD}
}

// ParseLabel validates a submitted label string.
func ParseLabel(s string) (Label, bool) {
	switch Label(s) {
	case LabelA, LabelB, LabelC, LabelD:
		return Label(s), true
	}
	return "", false
}

// PresentedQuestion is a shuffled question ready for display. The option
// order carries no meaning beyond lookup by label.
type PresentedQuestion struct {
	Prompt      string           `json:"prompt"`
	Options     map[Label]string `json:"options"`
	Explanation string           `json:"-"`
}
