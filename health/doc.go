// Package health aggregates the health of a service's dependencies.
//
// Each dependency is checked by a Probe. A Tweeter wraps a probe with a TTL
// cache that keeps healthy and unhealthy results for independently configured
// durations. An Aggregator holds tweeters in registration order and collects
// one Tweet per probe, turning probe failures into UNKNOWN tweets so a single
// broken probe never hides the others.
//
// # Basic Usage
//
//	agg := health.NewAggregator()
//	agg.MustRegister(dbProbe, health.NewDescriptor("db",
//	    health.WithKind(health.KindDatabase),
//	    health.WithHealthyTTL(60),
//	    health.WithUnhealthyTTL(5),
//	))
//
//	tweets := agg.Collect(ctx)
//	overall := health.Summarize(tweets)
//
// # Caching
//
// A tweet is served from cache until its TTL elapses, measured from the end
// of the invocation that produced it. A HEALTHY status selects the healthy
// TTL; every other status selects the unhealthy TTL. A negative TTL disables
// caching for that outcome.
//
// # Concurrency
//
// Collect runs probes through a resilience.Pool. The default pool is
// sequential; resilience.NewBoundedPool fans probes out over a fixed number
// of goroutines while preserving registration order in the output.
package health
