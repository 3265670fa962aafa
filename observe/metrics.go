package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records probe activity.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordInvocation records one actual probe invocation.
	RecordInvocation(ctx context.Context, meta ProbeMeta, duration time.Duration, status string, err error)

	// RecordCacheHit records a call answered from the probe's cache.
	RecordCacheHit(ctx context.Context, meta ProbeMeta)
}

type metricsImpl struct {
	invocations  metric.Int64Counter
	failures     metric.Int64Counter
	cacheHits    metric.Int64Counter
	durationHist metric.Float64Histogram
}

// NewMetrics creates probe metrics on the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	invocations, err := meter.Int64Counter(
		"canary.probe.invocations",
		metric.WithDescription("Total number of probe invocations"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter(
		"canary.probe.failures",
		metric.WithDescription("Total number of probe invocations that failed"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	cacheHits, err := meter.Int64Counter(
		"canary.probe.cache_hits",
		metric.WithDescription("Total number of probe results served from cache"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"canary.probe.duration_ms",
		metric.WithDescription("Probe invocation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		invocations:  invocations,
		failures:     failures,
		cacheHits:    cacheHits,
		durationHist: durationHist,
	}, nil
}

func (m *metricsImpl) RecordInvocation(ctx context.Context, meta ProbeMeta, duration time.Duration, status string, err error) {
	attrs := meta.attributes()
	if status != "" {
		attrs = append(attrs, attribute.String("probe.status", status))
	}
	opt := metric.WithAttributes(attrs...)

	m.invocations.Add(ctx, 1, opt)
	if err != nil {
		m.failures.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

func (m *metricsImpl) RecordCacheHit(ctx context.Context, meta ProbeMeta) {
	m.cacheHits.Add(ctx, 1, metric.WithAttributes(meta.attributes()...))
}

type noopMetrics struct{}

func (noopMetrics) RecordInvocation(ctx context.Context, meta ProbeMeta, duration time.Duration, status string, err error) {
}

func (noopMetrics) RecordCacheHit(ctx context.Context, meta ProbeMeta) {}
