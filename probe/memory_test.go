package probe

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/jonwraymond/canary/health"
)

func TestMemory_Defaults(t *testing.T) {
	p := Memory("memory", MemoryConfig{})

	if p.config.WarningThreshold != 0.8 {
		t.Errorf("WarningThreshold = %v, want 0.8", p.config.WarningThreshold)
	}
	if p.config.CriticalThreshold != 0.95 {
		t.Errorf("CriticalThreshold = %v, want 0.95", p.config.CriticalThreshold)
	}
	if p.Descriptor().Kind != health.KindResource {
		t.Errorf("Kind = %q, want RESOURCE", p.Descriptor().Kind)
	}
}

func TestMemory_InvalidThresholds(t *testing.T) {
	p := Memory("memory", MemoryConfig{WarningThreshold: 1.5})
	if p.config.WarningThreshold != 0.8 {
		t.Errorf("invalid warning should default to 0.8, got %v", p.config.WarningThreshold)
	}

	p = Memory("memory", MemoryConfig{WarningThreshold: 0.9, CriticalThreshold: 0.7})
	if p.config.CriticalThreshold <= p.config.WarningThreshold {
		t.Error("critical threshold should be adjusted above warning threshold")
	}
}

func TestMemory_Check(t *testing.T) {
	tests := []struct {
		name  string
		alloc uint64
		want  health.Status
	}{
		{"normal", 100, health.StatusHealthy},
		{"high", 850, health.StatusDegraded},
		{"critical", 990, health.StatusCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Memory("memory", MemoryConfig{MaxAlloc: 1000})
			p.stats = func(s *runtime.MemStats) { s.Alloc = tt.alloc }

			result, err := p.Check(context.Background())
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if result.Status != tt.want {
				t.Errorf("Status = %v, want %v (%s)", result.Status, tt.want, result.Text)
			}
		})
	}
}

func TestMemory_StatsUnavailable(t *testing.T) {
	p := Memory("memory", MemoryConfig{})
	p.stats = func(s *runtime.MemStats) {}

	result, err := p.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if result.Status != health.StatusUnknown {
		t.Errorf("Status = %v, want UNKNOWN", result.Status)
	}
}

func TestMemory_RealStats(t *testing.T) {
	result, err := Memory("memory", MemoryConfig{}).Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if result.Text == "" {
		t.Error("Text should describe memory usage")
	}
}

func TestMemory_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Memory("memory", MemoryConfig{}).Check(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Check() error = %v, want context.Canceled", err)
	}
}
