package probe

import (
	"context"
	"errors"
	"testing"

	"github.com/jonwraymond/canary/health"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestKafka_Check(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want health.Status
	}{
		{"reachable", nil, health.StatusHealthy},
		{"no brokers", errors.New("unable to dial"), health.StatusCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Kafka("events", pingFunc(func(ctx context.Context) error { return tt.err }))

			result, err := p.Check(context.Background())
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if result.Status != tt.want {
				t.Errorf("Status = %v, want %v", result.Status, tt.want)
			}
			if p.Descriptor().Kind != health.KindStream {
				t.Errorf("Kind = %q, want STREAM", p.Descriptor().Kind)
			}
		})
	}
}
