package health

import (
	"context"
	"sync"
	"time"

	"github.com/jonwraymond/canary/cache"
	"github.com/jonwraymond/canary/observe"
	"github.com/jonwraymond/canary/resilience"
)

// Clock returns the current time. Tests inject a controllable one.
type Clock func() time.Time

// TweeterConfig configures a Tweeter.
type TweeterConfig struct {
	// Clock defaults to time.Now.
	Clock Clock

	// Timeout bounds an invocation when the descriptor sets none.
	Timeout time.Duration

	// Middleware defaults to observe.NopMiddleware.
	Middleware *observe.Middleware
}

// Tweeter wraps a probe with a TTL cache of its last tweet.
//
// Contract:
//   - Concurrency: safe for concurrent use. The cache check, invocation and
//     cache update run as one critical section, so concurrent callers of an
//     expired tweeter trigger a single invocation.
//   - Errors: probe errors and panics are returned as errors and leave the
//     cached tweet untouched.
type Tweeter struct {
	probe      Probe
	dependency Dependency
	policy     cache.Policy
	timeout    time.Duration
	clock      Clock
	mw         *observe.Middleware
	meta       observe.ProbeMeta

	mu   sync.Mutex
	slot cache.Slot[Tweet]
}

// NewTweeter validates desc and wraps probe.
func NewTweeter(probe Probe, desc Descriptor, config ...TweeterConfig) (*Tweeter, error) {
	if isNilProbe(probe) {
		return nil, &ConfigError{Probe: desc.Name, Err: ErrNilProbe}
	}
	if err := validateDescriptor(probe, desc); err != nil {
		return nil, err
	}

	var cfg TweeterConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Middleware == nil {
		cfg.Middleware = observe.NopMiddleware()
	}

	desc = desc.normalized()
	timeout := desc.Timeout
	if timeout == 0 {
		timeout = cfg.Timeout
	}

	return &Tweeter{
		probe:      probe,
		dependency: desc.Dependency(),
		policy:     desc.Policy(),
		timeout:    timeout,
		clock:      cfg.Clock,
		mw:         cfg.Middleware,
		meta: observe.ProbeMeta{
			Name:       desc.Name,
			Kind:       string(desc.Kind),
			Importance: string(desc.Importance),
		},
	}, nil
}

// Dependency returns the dependency the tweeter reports on.
func (t *Tweeter) Dependency() Dependency {
	return t.dependency
}

// Tweet returns the cached tweet while it is fresh, otherwise invokes the
// probe and caches the new tweet for the TTL its status selects.
func (t *Tweeter) Tweet(ctx context.Context) (Tweet, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	start := t.clock()
	if cached, ok := t.slot.Get(start); ok {
		t.mw.CacheHit(ctx, t.meta)
		return cached, nil
	}

	ctx, inv := t.mw.Start(ctx, t.meta)
	result, err := t.invoke(ctx)
	elapsed := t.clock().Sub(start)
	if err != nil {
		inv.End("", err)
		return Tweet{}, err
	}
	inv.End(result.Status.String(), nil)

	tweet := Tweet{
		Dependency:      t.dependency,
		Result:          result,
		ExecutionTimeMs: max(elapsed.Milliseconds(), 0),
	}
	t.slot.Set(tweet, t.policy.Expiry(t.clock(), result.Status == StatusHealthy))
	return tweet, nil
}

// Last returns the most recent tweet, fresh or not.
func (t *Tweeter) Last() (Tweet, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.slot.Last()
}

// NextEligible returns the instant from which the probe will be invoked
// again. It is the zero time before the first invocation.
func (t *Tweeter) NextEligible() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.slot.ExpiresAt()
}

func (t *Tweeter) invoke(ctx context.Context) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &resilience.PanicError{Value: r}
		}
	}()
	return resilience.Call(ctx, t.timeout, t.probe.Check)
}
