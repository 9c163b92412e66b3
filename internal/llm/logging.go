package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/asmit/lexiq/internal/store"
)

// LoggingProvider is a decorator that logs every generation request and
// appends it to the event store. Logging failures never fail the request.
type LoggingProvider struct {
	inner     Provider
	log       *zap.Logger
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with structured logging and event recording.
// eventRepo may be nil, in which case only the log line is emitted.
func WithLogging(p Provider, log *zap.Logger, repo store.EventRepo) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingProvider{inner: p, log: log, eventRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latency := time.Since(start)

	fields := []zap.Field{
		zap.String("model", l.inner.ModelID()),
		zap.String("purpose", purpose),
		zap.Duration("latency", latency),
	}

	data := store.GenerationEventData{
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: latency.Milliseconds(),
		Success:   err == nil,
	}

	if resp != nil {
		fields = append(fields,
			zap.Int("input_tokens", resp.Usage.InputTokens),
			zap.Int("output_tokens", resp.Usage.OutputTokens),
		)
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
	}

	if err != nil {
		data.ErrorMessage = err.Error()
		l.log.Warn("generation request failed", append(fields, zap.Error(err))...)
	} else {
		l.log.Debug("generation request served", fields...)
	}

	if l.eventRepo != nil {
		if logErr := l.eventRepo.AppendGeneration(ctx, data); logErr != nil {
			l.log.Warn("failed to record generation event", zap.Error(logErr))
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
