package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonwraymond/canary/observe"
	"github.com/jonwraymond/canary/resilience"
)

// FailureText is the status text of a tweet whose probe failed.
const FailureText = "Error while trying to compute status"

// AggregatorConfig configures an Aggregator.
type AggregatorConfig struct {
	// Clock defaults to time.Now.
	Clock Clock

	// Pool runs probes during Collect. Defaults to resilience.Sequential.
	Pool resilience.Pool

	// ProbeTimeout bounds probes whose descriptor sets no timeout.
	// Zero means no timeout.
	ProbeTimeout time.Duration

	// Middleware defaults to observe.NopMiddleware.
	Middleware *observe.Middleware
}

// Aggregator is an ordered registry of cached probes.
//
// Contract:
//   - Concurrency: safe for concurrent use.
//   - Ordering: Collect returns tweets in registration order.
//   - Errors: Collect and Produce never surface probe failures as errors;
//     a failing probe yields an UNKNOWN tweet with FailureText.
type Aggregator struct {
	config AggregatorConfig

	mu       sync.RWMutex
	tweeters []*Tweeter
	index    map[string]*Tweeter
}

// NewAggregator creates a new, empty aggregator.
func NewAggregator(config ...AggregatorConfig) *Aggregator {
	var cfg AggregatorConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Pool == nil {
		cfg.Pool = resilience.Sequential()
	}
	if cfg.Middleware == nil {
		cfg.Middleware = observe.NopMiddleware()
	}
	return &Aggregator{
		config: cfg,
		index:  make(map[string]*Tweeter),
	}
}

// Register adds probe under desc.Name. On error the registry is unchanged.
// The aggregator is returned for chaining.
func (a *Aggregator) Register(probe Probe, desc Descriptor) (*Aggregator, error) {
	t, err := NewTweeter(probe, desc, TweeterConfig{
		Clock:      a.config.Clock,
		Timeout:    a.config.ProbeTimeout,
		Middleware: a.config.Middleware,
	})
	if err != nil {
		return a, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.index[desc.Name]; exists {
		return a, &ConfigError{Probe: desc.Name, Err: ErrDuplicateProbe}
	}
	a.index[desc.Name] = t
	a.tweeters = append(a.tweeters, t)
	return a, nil
}

// RegisterProbe registers a probe that carries its own descriptor.
func (a *Aggregator) RegisterProbe(probe Probe) (*Aggregator, error) {
	if isNilProbe(probe) {
		return a, &ConfigError{Err: ErrNilProbe}
	}
	d, ok := probe.(Describer)
	if !ok {
		return a, &ConfigError{Probe: fmt.Sprintf("%T", probe), Err: ErrMissingDescriptor}
	}
	return a.Register(probe, d.Descriptor())
}

// MustRegister is like Register but panics on a configuration error.
func (a *Aggregator) MustRegister(probe Probe, desc Descriptor) *Aggregator {
	if _, err := a.Register(probe, desc); err != nil {
		panic(err)
	}
	return a
}

// Len returns the number of registered probes.
func (a *Aggregator) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.tweeters)
}

// Names returns the registered probe names in registration order.
func (a *Aggregator) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	names := make([]string, len(a.tweeters))
	for i, t := range a.tweeters {
		names[i] = t.dependency.Name
	}
	return names
}

// Dependencies returns the registered dependencies in registration order.
func (a *Aggregator) Dependencies() []Dependency {
	a.mu.RLock()
	defer a.mu.RUnlock()
	deps := make([]Dependency, len(a.tweeters))
	for i, t := range a.tweeters {
		deps[i] = t.dependency
	}
	return deps
}

// Collect returns one tweet per registered probe, in registration order.
// Probes registered while Collect runs are not included.
func (a *Aggregator) Collect(ctx context.Context) []Tweet {
	a.mu.RLock()
	tweeters := make([]*Tweeter, len(a.tweeters))
	copy(tweeters, a.tweeters)
	a.mu.RUnlock()

	tweets := make([]Tweet, len(tweeters))
	a.config.Pool.Run(ctx, len(tweeters), func(ctx context.Context, i int) {
		tweets[i] = a.tweet(ctx, tweeters[i])
	})
	return tweets
}

// Produce returns the tweet of the probe registered under name.
func (a *Aggregator) Produce(ctx context.Context, name string) (Tweet, error) {
	a.mu.RLock()
	t, ok := a.index[name]
	a.mu.RUnlock()
	if !ok {
		return Tweet{}, fmt.Errorf("%w: %s", ErrProbeNotFound, name)
	}
	return a.tweet(ctx, t), nil
}

// tweet isolates a single tweeter: whatever goes wrong becomes data.
func (a *Aggregator) tweet(ctx context.Context, t *Tweeter) (tweet Tweet) {
	start := a.config.Clock()
	defer func() {
		if r := recover(); r != nil {
			tweet = a.failed(t, start)
		}
	}()

	tw, err := t.Tweet(ctx)
	if err != nil {
		return a.failed(t, start)
	}
	return tw
}

func (a *Aggregator) failed(t *Tweeter, start time.Time) Tweet {
	elapsed := a.config.Clock().Sub(start)
	return Tweet{
		Dependency:      t.dependency,
		Result:          Unknown(FailureText),
		ExecutionTimeMs: max(elapsed.Milliseconds(), 0),
	}
}
