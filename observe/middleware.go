package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Middleware brackets probe invocations with tracing, metrics and logging.
//
// Contract:
//   - Concurrency: safe for concurrent use; each Invocation belongs to one
//     goroutine.
//   - Errors: errors passed to End are recorded, never swallowed or altered.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = newNoopTracer()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// NopMiddleware returns a Middleware that records nothing.
func NopMiddleware() *Middleware {
	return NewMiddleware(nil, nil, nil)
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

// Logger returns the middleware's logger.
func (m *Middleware) Logger() Logger {
	return m.logger
}

// Invocation is one in-flight probe invocation.
type Invocation struct {
	m     *Middleware
	ctx   context.Context
	meta  ProbeMeta
	span  trace.Span
	start time.Time
}

// Start opens a span for an invocation of the probe. The returned context
// carries the span and should be passed to the probe.
func (m *Middleware) Start(ctx context.Context, meta ProbeMeta) (context.Context, *Invocation) {
	ctx, span := m.tracer.StartSpan(ctx, meta)
	return ctx, &Invocation{
		m:     m,
		ctx:   ctx,
		meta:  meta,
		span:  span,
		start: time.Now(),
	}
}

// End closes the invocation with the resulting status, or the error that
// replaced it, and returns the wall-clock duration observed.
func (inv *Invocation) End(status string, err error) time.Duration {
	duration := time.Since(inv.start)

	inv.m.tracer.EndSpan(inv.span, status, err)
	inv.m.metrics.RecordInvocation(inv.ctx, inv.meta, duration, status, err)

	logger := inv.m.logger.WithProbe(inv.meta)
	fields := []Field{
		{Key: "duration_ms", Value: float64(duration.Milliseconds())},
	}
	if err != nil {
		fields = append(fields, Field{Key: "error", Value: err.Error()})
		logger.Warn(inv.ctx, "probe invocation failed", fields...)
	} else {
		fields = append(fields, Field{Key: "status", Value: status})
		logger.Debug(inv.ctx, "probe invocation completed", fields...)
	}

	return duration
}

// CacheHit records that a probe's result was served from cache.
func (m *Middleware) CacheHit(ctx context.Context, meta ProbeMeta) {
	m.metrics.RecordCacheHit(ctx, meta)
}
