package engine

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// UseCaseEvent captures lightweight execution telemetry for one abstract
// engine operation (spec.md §6.1), mirroring the teacher's service-layer
// observer payload.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// Observer receives one UseCaseEvent per Engine operation.
type Observer interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopObserver discards every event; New installs it when no observer is
// given.
type NoopObserver struct{}

func (NoopObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type slogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver writes use-case events to w via log/slog's text handler,
// matching the teacher's NewLogUseCaseObserver. A nil writer yields a
// NoopObserver.
func NewSlogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &slogObserver{logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))}
}

func (o *slogObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 6+len(event.Fields)*2)
	attrs = append(attrs,
		"operation", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "engine_operation", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "engine_operation", attrs...)
}

func observerOrNoop(obs Observer) Observer {
	if obs == nil {
		return NoopObserver{}
	}
	return obs
}
