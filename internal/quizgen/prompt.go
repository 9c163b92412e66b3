package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an English proficiency examiner writing multiple-choice questions for an adaptive placement quiz.

Rules:
- Generate exactly one question of the requested type at the requested difficulty.
- Prefer everyday, practical contexts (work emails, conversations, travel, shopping) over academic or literary ones.
- Exactly one option may be correct. The three distractors must be plausible but clearly wrong to a test-taker at the target level.
- All four option texts must be distinct.
- Keep the question self-contained: no references to earlier questions.
- Include a one- or two-sentence explanation of why the correct answer is right.
- Respond with JSON only, no surrounding prose, conforming to exactly one of the two accepted response shapes.`

// difficultyBand returns the qualitative band description for a difficulty
// value. Bands: 1-3 simple, 4-6 moderate, 7-8 subtle, 9-10 expert.
func difficultyBand(difficulty int) string {
	switch {
	case difficulty <= 3:
		return "simple: basic structures and high-frequency words a beginner would know"
	case difficulty <= 6:
		return "moderate: everyday usage with some less common words and constructions"
	case difficulty <= 8:
		return "subtle: fine distinctions in usage, register, and near-synonyms"
	default:
		return "expert: nuanced, idiomatic usage that challenges a near-native speaker"
	}
}

// BuildPrompt constructs the user message for one question. Same spec
// always produces the same text.
func BuildPrompt(spec QuestionSpec) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question %d of this session.\n\n", spec.Sequence)
	fmt.Fprintf(&b, "Type: %s — %s.\n", spec.Category, spec.Category.Definition())
	fmt.Fprintf(&b, "Difficulty: %d of 10 (%s).\n\n", spec.Difficulty, difficultyBand(spec.Difficulty))

	b.WriteString(`Respond with a single JSON object in ONE of these two shapes:

Shape A:
{
  "question": "<question text>",
  "correct_answer": "<correct option text>",
  "distractors": ["<wrong 1>", "<wrong 2>", "<wrong 3>"],
  "explanation": "<why the correct answer is right>"
}

Shape B:
{
  "question": "<question text>",
  "options": {"A": "<text>", "B": "<text>", "C": "<text>", "D": "<text>"},
  "correct": "<label of the correct option>",
  "explanation": "<why the correct answer is right>"
}`)

	return b.String()
}
