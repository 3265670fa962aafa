package canary

import (
	"context"
	"fmt"

	"github.com/jonwraymond/canary/health"
	"github.com/jonwraymond/canary/observe"
)

// Collector produces one tweet per dependency. *health.Aggregator
// implements it.
type Collector interface {
	Collect(ctx context.Context) []health.Tweet
}

var _ Collector = (*health.Aggregator)(nil)

// Config configures a Canary.
type Config struct {
	// ServiceName defaults to UnknownService.
	ServiceName string

	// Gate defaults to an open gate.
	Gate *Gate

	// Logger defaults to observe.NopLogger.
	Logger observe.Logger
}

// Canary produces reports for one service.
type Canary struct {
	collector Collector
	service   string
	gate      *Gate
	logger    observe.Logger
}

// New creates a Canary over collector.
func New(collector Collector, cfg Config) *Canary {
	if cfg.ServiceName == "" {
		cfg.ServiceName = UnknownService
	}
	if cfg.Gate == nil {
		cfg.Gate = OpenGate()
	}
	if cfg.Logger == nil {
		cfg.Logger = observe.NopLogger()
	}
	return &Canary{
		collector: collector,
		service:   cfg.ServiceName,
		gate:      cfg.Gate,
		logger:    cfg.Logger,
	}
}

// ServiceName returns the name reports are produced for.
func (c *Canary) ServiceName() string {
	return c.service
}

// Report checks provided against the gate and collects every tweet.
// It never fails: a rejected secret yields FORBIDDEN and a failure outside
// the probes yields ERROR.
func (c *Canary) Report(ctx context.Context, provided string) (report Report) {
	if !c.gate.Allow(provided) {
		c.logger.Warn(ctx, "canary request rejected",
			observe.Field{Key: "service", Value: c.service},
		)
		return Forbidden(c.service)
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error(ctx, "canary collection failed",
				observe.Field{Key: "service", Value: c.service},
				observe.Field{Key: "error", Value: fmt.Sprint(r)},
			)
			report = Error(c.service)
		}
	}()

	tweets := c.collector.Collect(ctx)
	c.logger.Debug(ctx, "canary collected",
		observe.Field{Key: "service", Value: c.service},
		observe.Field{Key: "tweets", Value: len(tweets)},
	)
	return OK(c.service, tweets)
}
