package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/canary/health"
)

// LatencyProbe downgrades a healthy result to DEGRADED when the wrapped
// probe takes longer than a threshold.
type LatencyProbe struct {
	inner         health.Probe
	degradedAfter time.Duration
	now           func() time.Time
}

// Latency wraps p. Non-healthy results and errors pass through unchanged.
func Latency(p health.Probe, degradedAfter time.Duration) *LatencyProbe {
	return &LatencyProbe{inner: p, degradedAfter: degradedAfter, now: time.Now}
}

// Descriptor returns the wrapped probe's descriptor, or the zero
// descriptor when it has none.
func (l *LatencyProbe) Descriptor() health.Descriptor {
	if d, ok := l.inner.(health.Describer); ok {
		return d.Descriptor()
	}
	return health.Descriptor{}
}

// Check implements health.Probe.
func (l *LatencyProbe) Check(ctx context.Context) (health.Result, error) {
	start := l.now()
	result, err := l.inner.Check(ctx)
	if err != nil || result.Status != health.StatusHealthy {
		return result, err
	}

	if elapsed := l.now().Sub(start); l.degradedAfter > 0 && elapsed > l.degradedAfter {
		text := fmt.Sprintf("slow response: %s", elapsed.Round(time.Millisecond))
		if result.Text != "" {
			text = result.Text + "; " + text
		}
		return health.Degraded(text), nil
	}
	return result, nil
}
