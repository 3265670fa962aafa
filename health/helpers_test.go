package health

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// fakeClock is a manually advanced Clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// countingProbe returns a fixed result and counts invocations.
type countingProbe struct {
	calls  atomic.Int32
	result Result
	err    error
}

func (p *countingProbe) Check(ctx context.Context) (Result, error) {
	p.calls.Add(1)
	return p.result, p.err
}

func (p *countingProbe) Calls() int {
	return int(p.calls.Load())
}

func healthyProbe() *countingProbe {
	return &countingProbe{result: Healthy("ok")}
}
