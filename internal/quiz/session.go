package quiz

import (
	"context"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/asmit/lexiq/internal/quizgen"
)

// Staircase constants. Difficulty starts mid-scale and moves one step per
// answer within [MinDifficulty, MaxDifficulty].
const (
	DefaultLength     = 10
	InitialDifficulty = 4
	MinDifficulty     = 1
	MaxDifficulty     = 10
)

// AnswerRecord is one history entry: the difficulty the question was
// asked at and whether it was answered correctly.
type AnswerRecord struct {
	Difficulty int  `json:"difficulty"`
	Correct    bool `json:"correct"`
}

// PendingQuestion holds the presented question awaiting an answer,
// together with the concealed correct label.
type PendingQuestion struct {
	Question     quizgen.PresentedQuestion `json:"question"`
	CorrectLabel quizgen.Label             `json:"correct_label"`
	Explanation  string                    `json:"explanation"`
}

// Session is the full per-test-taker state. It is a plain value object:
// the engine returns it from Start and mutates it through NextQuestion
// and SubmitAnswer; storing it between calls is the caller's concern.
//
// A Session supports at most one in-flight operation at a time. Callers
// that may see concurrent requests for the same session (a double-clicked
// submit, a fetch racing a submit) must serialize access themselves; the
// engine takes no locks.
type Session struct {
	ID         string             `json:"id"`
	Difficulty int                `json:"difficulty"`
	Position   int                `json:"position"`
	Categories []quizgen.Category `json:"categories"`
	History    []AnswerRecord     `json:"history"`
	Pending    *PendingQuestion   `json:"pending,omitempty"`
}

// Completed reports whether every position has been answered.
func (s *Session) Completed() bool {
	return s.Position >= len(s.Categories)
}

// AnswerResult is the outcome of one submitted answer.
type AnswerResult struct {
	Correct      bool          `json:"correct"`
	CorrectLabel quizgen.Label `json:"correct_label"`
	Explanation  string        `json:"explanation"`
}

// QuestionSource produces a canonical question for a spec. Satisfied by
// *quizgen.Assembler; tests substitute a deterministic source.
type QuestionSource interface {
	Assemble(ctx context.Context, spec quizgen.QuestionSpec) *quizgen.CanonicalQuestion
}

// Config controls engine behavior.
type Config struct {
	// Length is the number of questions per session. Default: DefaultLength.
	Length int

	// Rand is the random source for category sequencing and option
	// shuffling. Nil uses the shared global source.
	Rand *rand.Rand
}

// Engine drives the difficulty staircase over a QuestionSource.
type Engine struct {
	source QuestionSource
	length int
	rng    *rand.Rand
}

// NewEngine creates an Engine.
func NewEngine(source QuestionSource, cfg Config) *Engine {
	length := cfg.Length
	if length <= 0 {
		length = DefaultLength
	}
	return &Engine{source: source, length: length, rng: cfg.Rand}
}

// Start creates a fresh Session: mid-scale difficulty, empty history, and
// a category sequence drawn as repeated full shuffled passes over the
// category set, so no category is over-represented.
func (e *Engine) Start() *Session {
	return &Session{
		ID:         uuid.NewString(),
		Difficulty: InitialDifficulty,
		Categories: e.drawCategories(),
	}
}

// NextQuestion returns the question for the session's current position.
// While an answer is outstanding it returns the already-presented
// question unchanged; generation happens exactly once per position.
func (e *Engine) NextQuestion(ctx context.Context, s *Session) (*quizgen.PresentedQuestion, error) {
	if s.Pending != nil {
		q := s.Pending.Question
		return &q, nil
	}

	if s.Completed() {
		return nil, ErrSessionExhausted
	}

	spec := quizgen.QuestionSpec{
		Category:   s.Categories[s.Position],
		Difficulty: s.Difficulty,
		Sequence:   s.Position + 1,
	}

	cq := e.source.Assemble(ctx, spec)
	options, correctLabel := quizgen.Shuffle(e.rng, cq.Correct, cq.Distractors)

	presented := quizgen.PresentedQuestion{
		Prompt:      cq.Prompt,
		Options:     options,
		Explanation: cq.Explanation,
	}

	s.Pending = &PendingQuestion{
		Question:     presented,
		CorrectLabel: correctLabel,
		Explanation:  cq.Explanation,
	}

	q := presented
	return &q, nil
}

// SubmitAnswer grades the submitted label against the pending question,
// records the answer at the current difficulty, and moves the staircase:
// one step up on correct (capped), one step down on incorrect (floored).
// A submit without a pending question — including a second submit for the
// same position — is rejected with ErrNoPendingQuestion.
func (e *Engine) SubmitAnswer(s *Session, label quizgen.Label) (*AnswerResult, error) {
	if s.Pending == nil {
		return nil, ErrNoPendingQuestion
	}

	correct := label == s.Pending.CorrectLabel

	s.History = append(s.History, AnswerRecord{
		Difficulty: s.Difficulty,
		Correct:    correct,
	})

	if correct {
		if s.Difficulty < MaxDifficulty {
			s.Difficulty++
		}
	} else {
		if s.Difficulty > MinDifficulty {
			s.Difficulty--
		}
	}

	result := &AnswerResult{
		Correct:      correct,
		CorrectLabel: s.Pending.CorrectLabel,
		Explanation:  s.Pending.Explanation,
	}

	s.Position++
	s.Pending = nil

	return result, nil
}

// drawCategories samples the category sequence: whole shuffled passes
// over the category set, concatenated and truncated to the session
// length.
func (e *Engine) drawCategories() []quizgen.Category {
	base := quizgen.Categories()
	out := make([]quizgen.Category, 0, e.length)

	for len(out) < e.length {
		pass := make([]quizgen.Category, len(base))
		copy(pass, base)
		swap := func(i, j int) { pass[i], pass[j] = pass[j], pass[i] }
		if e.rng != nil {
			e.rng.Shuffle(len(pass), swap)
		} else {
			rand.Shuffle(len(pass), swap)
		}
		out = append(out, pass...)
	}

	return out[:e.length]
}
