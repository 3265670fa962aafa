package cache

import (
	"testing"
	"time"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	if p.HealthyTTL != 60*time.Second {
		t.Errorf("HealthyTTL = %v, want 60s", p.HealthyTTL)
	}
	if p.UnhealthyTTL != 60*time.Second {
		t.Errorf("UnhealthyTTL = %v, want 60s", p.UnhealthyTTL)
	}
}

func TestPolicy_TTLSelection(t *testing.T) {
	p := PolicyFromSeconds(100, 10)

	if got := p.TTL(true); got != 100*time.Second {
		t.Errorf("TTL(healthy) = %v, want 100s", got)
	}
	if got := p.TTL(false); got != 10*time.Second {
		t.Errorf("TTL(unhealthy) = %v, want 10s", got)
	}
}

func TestPolicy_ShouldCache(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		healthy bool
		want    bool
	}{
		{"default healthy", DefaultPolicy(), true, true},
		{"default unhealthy", DefaultPolicy(), false, true},
		{"no cache", NoCachePolicy(), true, false},
		{"zero ttl", PolicyFromSeconds(0, 0), true, false},
		{"negative healthy only", PolicyFromSeconds(-1, 30), true, false},
		{"negative healthy, unhealthy cached", PolicyFromSeconds(-1, 30), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.ShouldCache(tt.healthy); got != tt.want {
				t.Errorf("ShouldCache(%v) = %v, want %v", tt.healthy, got, tt.want)
			}
		})
	}
}

func TestPolicy_ExpiryNegativeIsInThePast(t *testing.T) {
	now := time.Unix(1_000, 0)
	p := PolicyFromSeconds(-1, -1)

	if exp := p.Expiry(now, true); exp.After(now) {
		t.Errorf("Expiry() = %v, want not after %v", exp, now)
	}
}

func TestPolicyFromSeconds_Saturates(t *testing.T) {
	tests := []struct {
		name      string
		seconds   int
		wantCache bool
	}{
		{name: "max", seconds: int(MaxTTLSeconds), wantCache: true},
		{name: "beyond max", seconds: 10_000_000_000, wantCache: true},
		{name: "far negative", seconds: -10_000_000_000, wantCache: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PolicyFromSeconds(tt.seconds, tt.seconds)
			if got := p.ShouldCache(true); got != tt.wantCache {
				t.Errorf("ShouldCache = %v, want %v (TTL %v)", got, tt.wantCache, p.HealthyTTL)
			}
			now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
			expiry := p.Expiry(now, true)
			if tt.wantCache && !expiry.After(now.Add(24*time.Hour)) {
				t.Errorf("Expiry = %v, want far in the future", expiry)
			}
			if !tt.wantCache && expiry.After(now) {
				t.Errorf("Expiry = %v, want not after %v", expiry, now)
			}
		})
	}
}
