package api

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Observer receives callbacks from the flow runtime for logging and metrics.
//
// Implementations should be fast and non-blocking; heavy work should be done
// asynchronously so as not to delay flow execution.
type Observer interface {
	// OnFlowStart is called once when a flow run starts, before setup of
	// the first actor pass.
	OnFlowStart(ctx context.Context, flow Actor)

	// OnFlowCompleted is called when a flow run finishes without error.
	OnFlowCompleted(ctx context.Context, flow Actor)

	// OnFlowFailed is called when a flow run returns an error.
	OnFlowFailed(ctx context.Context, flow Actor, err error)

	// OnActorStart is called before a director executes a child actor.
	OnActorStart(ctx context.Context, actor Actor)

	// OnActorCompleted is called after a child actor pass returns, for
	// both successes and failures (err != nil).
	OnActorCompleted(ctx context.Context, actor Actor, err error, duration time.Duration)
}

// NoopObserver is an Observer that does nothing.
// It is used as the default when no observer is configured.
type NoopObserver struct{}

func (NoopObserver) OnFlowStart(ctx context.Context, flow Actor)               {}
func (NoopObserver) OnFlowCompleted(ctx context.Context, flow Actor)           {}
func (NoopObserver) OnFlowFailed(ctx context.Context, flow Actor, err error)   {}
func (NoopObserver) OnActorStart(ctx context.Context, actor Actor)             {}
func (NoopObserver) OnActorCompleted(ctx context.Context, actor Actor, err error, d time.Duration) {
}

// CompositeObserver fans out events to multiple observers.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an Observer that forwards events to each
// non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnFlowStart(ctx context.Context, flow Actor) {
	for _, o := range c.observers {
		o.OnFlowStart(ctx, flow)
	}
}

func (c *CompositeObserver) OnFlowCompleted(ctx context.Context, flow Actor) {
	for _, o := range c.observers {
		o.OnFlowCompleted(ctx, flow)
	}
}

func (c *CompositeObserver) OnFlowFailed(ctx context.Context, flow Actor, err error) {
	for _, o := range c.observers {
		o.OnFlowFailed(ctx, flow, err)
	}
}

func (c *CompositeObserver) OnActorStart(ctx context.Context, actor Actor) {
	for _, o := range c.observers {
		o.OnActorStart(ctx, actor)
	}
}

func (c *CompositeObserver) OnActorCompleted(ctx context.Context, actor Actor, err error, d time.Duration) {
	for _, o := range c.observers {
		o.OnActorCompleted(ctx, actor, err, d)
	}
}

// LoggingObserver writes structured logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver creates an Observer that logs flow / actor lifecycle
// events using the provided slog.Logger. If logger is nil, slog.Default()
// is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnFlowStart(ctx context.Context, flow Actor) {
	o.Logger.InfoContext(ctx, "flow_start",
		slog.String("flow", flow.Name()),
	)
}

func (o *LoggingObserver) OnFlowCompleted(ctx context.Context, flow Actor) {
	o.Logger.InfoContext(ctx, "flow_completed",
		slog.String("flow", flow.Name()),
	)
}

func (o *LoggingObserver) OnFlowFailed(ctx context.Context, flow Actor, err error) {
	o.Logger.ErrorContext(ctx, "flow_failed",
		slog.String("flow", flow.Name()),
		slog.Any("error", err),
	)
}

func (o *LoggingObserver) OnActorStart(ctx context.Context, actor Actor) {
	o.Logger.DebugContext(ctx, "actor_start",
		slog.String("actor", actor.FullName()),
	)
}

func (o *LoggingObserver) OnActorCompleted(ctx context.Context, actor Actor, err error, d time.Duration) {
	level := slog.LevelDebug
	if err != nil {
		level = slog.LevelError
	}
	o.Logger.Log(ctx, level, "actor_completed",
		slog.String("actor", actor.FullName()),
		slog.Duration("duration", d),
		slog.Any("error", err),
	)
}

// BasicMetrics collects simple counters and aggregate actor durations.
// It implements Observer, and can be combined with LoggingObserver via
// NewCompositeObserver.
type BasicMetrics struct {
	NoopObserver

	flowsStarted   atomic.Int64
	flowsCompleted atomic.Int64
	flowsFailed    atomic.Int64
	actorPasses    atomic.Int64
	totalPassTime  atomic.Int64 // nanoseconds
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	FlowsStarted   int64
	FlowsCompleted int64
	FlowsFailed    int64

	ActorPasses     int64
	AvgPassDuration time.Duration
}

func (m *BasicMetrics) OnFlowStart(ctx context.Context, flow Actor) {
	m.flowsStarted.Add(1)
}

func (m *BasicMetrics) OnFlowCompleted(ctx context.Context, flow Actor) {
	m.flowsCompleted.Add(1)
}

func (m *BasicMetrics) OnFlowFailed(ctx context.Context, flow Actor, err error) {
	m.flowsFailed.Add(1)
}

func (m *BasicMetrics) OnActorCompleted(ctx context.Context, actor Actor, err error, d time.Duration) {
	// Only count successful passes for average duration.
	if err == nil {
		m.actorPasses.Add(1)
		m.totalPassTime.Add(d.Nanoseconds())
	}
}

// Snapshot returns a snapshot of the current metrics.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	passes := m.actorPasses.Load()
	totalNs := m.totalPassTime.Load()

	var avg time.Duration
	if passes > 0 {
		avg = time.Duration(totalNs / passes)
	}

	return BasicMetricsSnapshot{
		FlowsStarted:    m.flowsStarted.Load(),
		FlowsCompleted:  m.flowsCompleted.Load(),
		FlowsFailed:     m.flowsFailed.Load(),
		ActorPasses:     passes,
		AvgPassDuration: avg,
	}
}
