package store

import (
	"context"
	"database/sql"
	"fmt"
)

// GenerationEventData captures a single generation backend call.
type GenerationEventData struct {
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRepo provides append and aggregate access to generation events.
type EventRepo interface {
	// AppendGeneration records one backend call.
	AppendGeneration(ctx context.Context, data GenerationEventData) error

	// Stats returns aggregate counters over all recorded events.
	Stats(ctx context.Context) (*Stats, error)
}

// Stats holds aggregate counters over the event log.
type Stats struct {
	Requests     int64
	Failures     int64
	InputTokens  int64
	OutputTokens int64
	AvgLatencyMs float64
}

// SuccessRate returns the fraction of successful requests, or 0 when
// no requests have been recorded.
func (s *Stats) SuccessRate() float64 {
	if s.Requests == 0 {
		return 0
	}
	return float64(s.Requests-s.Failures) / float64(s.Requests)
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendGeneration(ctx context.Context, data GenerationEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO generation_events
			(model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
		data.LatencyMs, boolToInt(data.Success), data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save generation event: %w", err)
	}
	return nil
}

func (r *eventRepo) Stats(ctx context.Context) (*Stats, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(input_tokens), 0),
			COALESCE(SUM(output_tokens), 0),
			COALESCE(AVG(latency_ms), 0)
		FROM generation_events`)

	var st Stats
	if err := row.Scan(&st.Requests, &st.Failures, &st.InputTokens, &st.OutputTokens, &st.AvgLatencyMs); err != nil {
		return nil, fmt.Errorf("query event stats: %w", err)
	}
	return &st, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
