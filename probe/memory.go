package probe

import (
	"context"
	"fmt"
	"runtime"

	"github.com/jonwraymond/canary/health"
)

// MemoryConfig configures the memory probe.
type MemoryConfig struct {
	// WarningThreshold is the fraction of MaxAlloc that reports DEGRADED.
	// Value should be between 0 and 1. Default: 0.8
	WarningThreshold float64

	// CriticalThreshold is the fraction of MaxAlloc that reports CRITICAL.
	// Value should be between 0 and 1. Default: 0.95
	CriticalThreshold float64

	// MaxAlloc is the maximum expected heap allocation in bytes.
	// If zero, the memory obtained from the OS is used.
	MaxAlloc uint64
}

// MemoryProbe checks heap usage of the current process.
type MemoryProbe struct {
	described
	config MemoryConfig
	stats  func(*runtime.MemStats)
}

// Memory returns a RESOURCE probe over the process heap.
func Memory(name string, config MemoryConfig, opts ...health.DescriptorOption) *MemoryProbe {
	if config.WarningThreshold <= 0 || config.WarningThreshold >= 1 {
		config.WarningThreshold = 0.8
	}
	if config.CriticalThreshold <= 0 || config.CriticalThreshold >= 1 {
		config.CriticalThreshold = 0.95
	}
	if config.CriticalThreshold < config.WarningThreshold {
		config.CriticalThreshold = config.WarningThreshold + 0.1
		if config.CriticalThreshold > 1 {
			config.CriticalThreshold = 0.99
		}
	}

	return &MemoryProbe{
		described: describe(name, health.KindResource, opts),
		config:    config,
		stats:     runtime.ReadMemStats,
	}
}

// Check implements health.Probe.
func (m *MemoryProbe) Check(ctx context.Context) (health.Result, error) {
	if err := ctx.Err(); err != nil {
		return health.Result{}, err
	}

	var stats runtime.MemStats
	m.stats(&stats)

	maxAlloc := m.config.MaxAlloc
	if maxAlloc == 0 {
		maxAlloc = stats.Sys
	}
	if maxAlloc == 0 {
		return health.Unknown("memory stats unavailable"), nil
	}

	usage := float64(stats.Alloc) / float64(maxAlloc)
	switch {
	case usage >= m.config.CriticalThreshold:
		return health.Critical(fmt.Sprintf("memory usage critical: %.1f%%", usage*100)), nil
	case usage >= m.config.WarningThreshold:
		return health.Degraded(fmt.Sprintf("memory usage high: %.1f%%", usage*100)), nil
	default:
		return health.Healthy(fmt.Sprintf("memory usage normal: %.1f%%", usage*100)), nil
	}
}
