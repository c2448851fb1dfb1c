package service

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"time"
)

// UseCaseEvent describes one finished service call. PlanID is empty for
// calls that are not scoped to a plan, such as product edits.
type UseCaseEvent struct {
	Name     string
	PlanID   string
	Duration time.Duration
	Err      error
	Fields   map[string]any
}

// Failed reports whether the call returned an error.
func (e UseCaseEvent) Failed() bool { return e.Err != nil }

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

// ObserverFunc adapts a plain function to UseCaseObserver.
type ObserverFunc func(ctx context.Context, event UseCaseEvent)

func (f ObserverFunc) ObserveUseCase(ctx context.Context, event UseCaseEvent) { f(ctx, event) }

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver logs each event through logger, at error level
// when the call failed. Event fields go under a "detail" group.
func NewLogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := []slog.Attr{slog.String("use_case", event.Name)}
	if event.PlanID != "" {
		attrs = append(attrs, slog.String("plan", event.PlanID))
	}
	attrs = append(attrs,
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
		slog.Bool("success", !event.Failed()),
	)
	if len(event.Fields) > 0 {
		detail := make([]any, 0, len(event.Fields))
		for _, k := range slices.Sorted(maps.Keys(event.Fields)) {
			detail = append(detail, slog.Any(k, event.Fields[k]))
		}
		attrs = append(attrs, slog.Group("detail", detail...))
	}

	level := slog.LevelInfo
	if event.Failed() {
		level = slog.LevelError
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	o.logger.LogAttrs(ctx, level, "service_use_case", attrs...)
}

type multiObserver []UseCaseObserver

func (m multiObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range m {
		obs.ObserveUseCase(ctx, event)
	}
}

// combineObservers fans events out to every non-nil observer.
func combineObservers(observers []UseCaseObserver) UseCaseObserver {
	var live multiObserver
	for _, obs := range observers {
		if obs != nil {
			live = append(live, obs)
		}
	}
	switch len(live) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return live[0]
	default:
		return live
	}
}

// useCase times one service call. Start it at the top of a method and
// finish it from a defer with the named error result.
type useCase struct {
	obs     UseCaseObserver
	event   UseCaseEvent
	started time.Time
}

func startUseCase(obs UseCaseObserver, name, planID string) *useCase {
	return &useCase{
		obs:     obs,
		event:   UseCaseEvent{Name: name, PlanID: planID, Fields: map[string]any{}},
		started: time.Now(),
	}
}

// forPlan sets the plan once it is known, e.g. after loading a phase.
func (u *useCase) forPlan(planID string) { u.event.PlanID = planID }

func (u *useCase) set(key string, value any) { u.event.Fields[key] = value }

func (u *useCase) finish(ctx context.Context, err error) {
	u.event.Duration = time.Since(u.started)
	u.event.Err = err
	u.obs.ObserveUseCase(ctx, u.event)
}
