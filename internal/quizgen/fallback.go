package quizgen

// FallbackQuestion returns the constant question served when every
// generation attempt fails. Content is fixed at compile time, never
// backend-derived.
func FallbackQuestion() *CanonicalQuestion {
	return &CanonicalQuestion{
		Prompt:  "Choose the correct sentence.",
		Correct: "She doesn't like coffee.",
		Distractors: []string{
			"She don't like coffee.",
			"She didn't likes coffee.",
			"She don't likes coffee.",
		},
		Explanation: "With third-person singular subjects, the negative present simple uses \"doesn't\" followed by the base verb.",
	}
}
