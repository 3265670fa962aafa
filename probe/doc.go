// Package probe provides stock health probes for common dependencies.
//
// Every probe carries a default descriptor, so it can be registered with
// health.Aggregator.RegisterProbe directly. Descriptor options passed to a
// constructor are applied over the probe's defaults:
//
//	agg.RegisterProbe(probe.SQL("orders-db", db, health.WithUnhealthyTTL(5)))
//	agg.RegisterProbe(probe.Redis("sessions", rdb))
//	agg.RegisterProbe(probe.HTTP("billing", "https://billing.internal/healthz", probe.HTTPOptions{}))
//
// A probe reports an unreachable dependency as CRITICAL. It returns an error
// only when it cannot compute a status at all, e.g. because its context was
// cancelled; the aggregator reports such failures as UNKNOWN.
package probe
