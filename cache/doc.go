// Package cache provides the time-bounded storage behind probe caching.
//
// A Policy picks a TTL from the outcome of a computation (healthy or not),
// and a Slot holds the single most recent value together with the instant
// it stops being eligible for reuse.
package cache
