package probe

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/jonwraymond/canary/health"
)

// KafkaPinger is the subset of *kgo.Client used by KafkaProbe.
type KafkaPinger interface {
	Ping(ctx context.Context) error
}

var _ KafkaPinger = (*kgo.Client)(nil)

// KafkaProbe checks connectivity to a Kafka cluster.
type KafkaProbe struct {
	described
	client KafkaPinger
}

// Kafka returns a STREAM probe that pings the cluster behind client.
func Kafka(name string, client KafkaPinger, opts ...health.DescriptorOption) *KafkaProbe {
	return &KafkaProbe{
		described: describe(name, health.KindStream, opts),
		client:    client,
	}
}

// Check implements health.Probe.
func (p *KafkaProbe) Check(ctx context.Context) (health.Result, error) {
	if err := ctx.Err(); err != nil {
		return health.Result{}, err
	}
	if err := p.client.Ping(ctx); err != nil {
		return health.Critical(fmt.Sprintf("kafka ping failed: %v", err)), nil
	}
	return health.Healthy("kafka reachable"), nil
}
