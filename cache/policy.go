package cache

import (
	"math"
	"time"
)

// DefaultTTLSeconds is the TTL applied when a descriptor does not set one.
const DefaultTTLSeconds = 60

// MaxTTLSeconds is the largest TTL a time.Duration can hold.
const MaxTTLSeconds int64 = math.MaxInt64 / int64(time.Second)

// Policy configures caching behavior for one probe.
//
// A negative TTL disables caching for the outcome it applies to: the value is
// still stored, but it is already expired when stored.
type Policy struct {
	// HealthyTTL is how long a healthy outcome is reused.
	// Default: 60 seconds
	HealthyTTL time.Duration

	// UnhealthyTTL is how long any other outcome is reused.
	// Default: 60 seconds
	UnhealthyTTL time.Duration
}

// DefaultPolicy returns the default caching policy.
// HealthyTTL: 60s, UnhealthyTTL: 60s
func DefaultPolicy() Policy {
	return PolicyFromSeconds(DefaultTTLSeconds, DefaultTTLSeconds)
}

// NoCachePolicy returns a policy that recomputes on every call.
func NoCachePolicy() Policy {
	return Policy{
		HealthyTTL:   -time.Second,
		UnhealthyTTL: -time.Second,
	}
}

// PolicyFromSeconds builds a policy from whole-second TTLs. Values beyond
// MaxTTLSeconds saturate instead of wrapping, so a huge TTL still caches.
func PolicyFromSeconds(healthy, unhealthy int) Policy {
	return Policy{
		HealthyTTL:   secondsToTTL(healthy),
		UnhealthyTTL: secondsToTTL(unhealthy),
	}
}

func secondsToTTL(seconds int) time.Duration {
	switch s := int64(seconds); {
	case s > MaxTTLSeconds:
		return time.Duration(math.MaxInt64)
	case s < -MaxTTLSeconds:
		return time.Duration(math.MinInt64)
	default:
		return time.Duration(s) * time.Second
	}
}

// TTL returns the TTL selected by the outcome.
func (p Policy) TTL(healthy bool) time.Duration {
	if healthy {
		return p.HealthyTTL
	}
	return p.UnhealthyTTL
}

// ShouldCache returns true if an outcome of this kind is ever reused.
func (p Policy) ShouldCache(healthy bool) bool {
	return p.TTL(healthy) > 0
}

// Expiry returns the instant after which an outcome computed at now must be
// recomputed. For a non-positive TTL the result is not after now.
func (p Policy) Expiry(now time.Time, healthy bool) time.Time {
	return now.Add(p.TTL(healthy))
}
