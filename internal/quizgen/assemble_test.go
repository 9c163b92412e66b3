package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/asmit/lexiq/internal/llm"
)

func testSpec() QuestionSpec {
	return QuestionSpec{Category: CategoryGrammar, Difficulty: 4, Sequence: 1}
}

func TestAssemble_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: shapeAJSON()})
	a := New(mock, DefaultConfig(), nil)

	q := a.Assemble(context.Background(), testSpec())

	if q.Correct != "Very careful" {
		t.Errorf("unexpected correct answer: %q", q.Correct)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 backend call, got %d", mock.CallCount())
	}
}

func TestAssemble_RetriesOnMalformedResponse(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`this is not JSON`)},
		llm.MockResponse{Content: shapeBJSON("correct")},
	)
	a := New(mock, DefaultConfig(), nil)

	q := a.Assemble(context.Background(), testSpec())

	if q.Correct != "He is senior to me." {
		t.Errorf("unexpected correct answer: %q", q.Correct)
	}
	if mock.CallCount() != 2 {
		t.Errorf("expected 2 backend calls, got %d", mock.CallCount())
	}
}

func TestAssemble_FallsBackAfterAllAttempts(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	a := New(mock, DefaultConfig(), nil)

	q := a.Assemble(context.Background(), testSpec())

	want := FallbackQuestion()
	if q.Prompt != want.Prompt || q.Correct != want.Correct {
		t.Errorf("expected fallback question, got %q", q.Prompt)
	}
	if mock.CallCount() != 3 {
		t.Errorf("expected 3 backend calls, got %d", mock.CallCount())
	}
}

func TestAssemble_TransientErrorsExhaustRetriesThenFallback(t *testing.T) {
	// Four consecutive transient errors exhaust the client's retry budget;
	// the assembler's remaining attempts find the queue empty and it must
	// serve the fallback without raising.
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("503")}},
		llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("503")}},
		llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}},
	)
	provider := llm.WithRetry(mock, llm.RetryConfig{
		MaxAttempts: 4,
		InitialWait: time.Millisecond,
		MaxWait:     4 * time.Millisecond,
		Multiplier:  2.0,
	})
	a := New(provider, DefaultConfig(), nil)

	q := a.Assemble(context.Background(), testSpec())

	want := FallbackQuestion()
	if q.Prompt != want.Prompt {
		t.Errorf("expected fallback question, got %q", q.Prompt)
	}
}

func TestAssemble_UnrecognizedSchemaRegenerates(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"question": "Q?", "answers": ["a"]}`)},
		llm.MockResponse{Content: shapeAJSON()},
	)
	a := New(mock, DefaultConfig(), nil)

	q := a.Assemble(context.Background(), testSpec())

	if q.Correct != "Very careful" {
		t.Errorf("unexpected correct answer: %q", q.Correct)
	}
}

func TestAssemble_SendsSchemaAndPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: shapeAJSON()})
	a := New(mock, DefaultConfig(), nil)

	a.Assemble(context.Background(), testSpec())

	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "quiz-question" {
		t.Error("request missing structured-output schema")
	}
	if req.System == "" {
		t.Error("request missing system prompt")
	}
	if len(req.Messages) != 1 || req.Messages[0].Content != BuildPrompt(testSpec()) {
		t.Error("request user message is not the built prompt")
	}
}
