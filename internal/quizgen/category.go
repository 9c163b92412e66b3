package quizgen

// Category is one of the fixed question types the quiz draws from.
type Category string

const (
	CategoryGrammar        Category = "grammar"
	CategoryVocabulary     Category = "vocabulary"
	CategoryParaphrase     Category = "paraphrase"
	CategoryInference      Category = "inference"
	CategoryErrorDetection Category = "error_detection"
)

// Categories returns the full category set in fixed order.
func Categories() []Category {
	return []Category{
		CategoryGrammar,
		CategoryVocabulary,
		CategoryParaphrase,
		CategoryInference,
		CategoryErrorDetection,
	}
}

// categoryDefinitions describes each category for the generation prompt.
var categoryDefinitions = map[Category]string{
	CategoryGrammar:        "a grammar question: the test-taker picks the grammatically correct sentence or form",
	CategoryVocabulary:     "a vocabulary question: the test-taker picks the option closest in meaning to a given word or phrase",
	CategoryParaphrase:     "a sentence paraphrase question: the test-taker picks the option that best restates a given sentence",
	CategoryInference:      "an inference question: the test-taker reads a short passage and picks the conclusion it best supports",
	CategoryErrorDetection: "an error detection question: the test-taker picks the sentence (or sentence part) containing a usage error",
}

// Definition returns the prompt-facing description of the category.
// Unknown categories fall back to a grammar definition so the prompt
// builder never produces an empty instruction.
func (c Category) Definition() string {
	if d, ok := categoryDefinitions[c]; ok {
		return d
	}
	return categoryDefinitions[CategoryGrammar]
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryDefinitions[c]
	return ok
}
