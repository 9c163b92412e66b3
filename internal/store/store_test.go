package store

import (
	"context"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndStats(t *testing.T) {
	s := testStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []GenerationEventData{
		{Model: "gemini-2.0-flash", Purpose: "question-gen", InputTokens: 120, OutputTokens: 80, LatencyMs: 900, Success: true},
		{Model: "gemini-2.0-flash", Purpose: "question-gen", InputTokens: 130, OutputTokens: 0, LatencyMs: 300, Success: false, ErrorMessage: "rate limited"},
		{Model: "gemini-2.0-flash", Purpose: "question-gen", InputTokens: 110, OutputTokens: 90, LatencyMs: 600, Success: true},
	}
	for _, e := range events {
		if err := repo.AppendGeneration(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	st, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if st.Requests != 3 {
		t.Errorf("Requests = %d, want 3", st.Requests)
	}
	if st.Failures != 1 {
		t.Errorf("Failures = %d, want 1", st.Failures)
	}
	if st.InputTokens != 360 {
		t.Errorf("InputTokens = %d, want 360", st.InputTokens)
	}
	if st.OutputTokens != 170 {
		t.Errorf("OutputTokens = %d, want 170", st.OutputTokens)
	}
	if st.AvgLatencyMs != 600 {
		t.Errorf("AvgLatencyMs = %v, want 600", st.AvgLatencyMs)
	}
	if got := st.SuccessRate(); got < 0.66 || got > 0.67 {
		t.Errorf("SuccessRate = %v, want 2/3", got)
	}
}

func TestStats_Empty(t *testing.T) {
	s := testStore(t)

	st, err := s.EventRepo().Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Requests != 0 {
		t.Errorf("Requests = %d, want 0", st.Requests)
	}
	if st.SuccessRate() != 0 {
		t.Errorf("SuccessRate = %v, want 0", st.SuccessRate())
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := s1.EventRepo().AppendGeneration(context.Background(), GenerationEventData{
		Model: "mock", Purpose: "question-gen", Success: true,
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	st, err := s2.EventRepo().Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Requests != 1 {
		t.Errorf("Requests after reopen = %d, want 1", st.Requests)
	}
}
