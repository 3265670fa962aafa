// Package observe provides observability primitives for probe invocations.
//
// It is a pure instrumentation library: no probe execution and no transport
// beyond exporter setup. The health aggregator drives it through a
// Middleware, which opens one span per actual probe invocation, records
// invocation, failure and cache-hit metrics, and writes structured JSON logs
// scoped to the probe.
package observe
