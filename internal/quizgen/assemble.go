package quizgen

import (
	"context"

	"go.uber.org/zap"

	"github.com/asmit/lexiq/internal/llm"
)

// Config controls the Assembler.
type Config struct {
	// MaxAttempts is the number of full generate→normalize cycles to try
	// before falling back to the constant question.
	MaxAttempts int

	// MaxTokens is the token budget for one backend response.
	MaxTokens int

	// Temperature controls backend output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns recommended Assembler defaults.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		MaxTokens:   512,
		Temperature: 0.8,
	}
}

// Assembler orchestrates prompt building, backend invocation, and
// normalization, with a constant fallback question as the availability
// guarantee: Assemble never fails.
type Assembler struct {
	provider llm.Provider
	config   Config
	log      *zap.Logger
}

// New creates an Assembler over the given provider.
func New(provider llm.Provider, cfg Config, log *zap.Logger) *Assembler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assembler{provider: provider, config: cfg, log: log}
}

// Assemble produces one CanonicalQuestion for the spec. Each attempt
// builds a fresh prompt, invokes the backend, and normalizes the result;
// any failure in that cycle starts the next attempt. When all attempts
// fail the constant fallback question is returned. No error ever
// propagates out of this method.
func (a *Assembler) Assemble(ctx context.Context, spec QuestionSpec) *CanonicalQuestion {
	ctx = llm.WithPurpose(ctx, "question-gen")

	for attempt := 1; attempt <= a.config.MaxAttempts; attempt++ {
		q, err := a.tryOnce(ctx, spec)
		if err == nil {
			return q
		}
		a.log.Warn("question generation attempt failed",
			zap.Int("attempt", attempt),
			zap.String("category", string(spec.Category)),
			zap.Int("difficulty", spec.Difficulty),
			zap.Error(err),
		)
	}

	a.log.Warn("all generation attempts failed, serving fallback question",
		zap.String("category", string(spec.Category)),
		zap.Int("difficulty", spec.Difficulty),
	)
	return FallbackQuestion()
}

func (a *Assembler) tryOnce(ctx context.Context, spec QuestionSpec) (*CanonicalQuestion, error) {
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: BuildPrompt(spec)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
	}

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.StopReason == "max_tokens" {
		return nil, &llm.ErrMaxTokensExceeded{Content: resp.Content}
	}

	return Normalize(resp.Content)
}
