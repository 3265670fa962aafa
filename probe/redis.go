package probe

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jonwraymond/canary/health"
)

// RedisPinger is the subset of a go-redis client used by RedisProbe.
type RedisPinger interface {
	Ping(ctx context.Context) *goredis.StatusCmd
}

var (
	_ RedisPinger = (*goredis.Client)(nil)
	_ RedisPinger = (*goredis.ClusterClient)(nil)
)

// RedisProbe checks a Redis server.
type RedisProbe struct {
	described
	client RedisPinger
}

// Redis returns a CACHE probe that sends PING to client.
func Redis(name string, client RedisPinger, opts ...health.DescriptorOption) *RedisProbe {
	return &RedisProbe{
		described: describe(name, health.KindCache, opts),
		client:    client,
	}
}

// Check implements health.Probe.
func (p *RedisProbe) Check(ctx context.Context) (health.Result, error) {
	if err := ctx.Err(); err != nil {
		return health.Result{}, err
	}
	reply, err := p.client.Ping(ctx).Result()
	if err != nil {
		return health.Critical(fmt.Sprintf("redis ping failed: %v", err)), nil
	}
	if reply != "PONG" {
		return health.Degraded(fmt.Sprintf("unexpected redis reply %q", reply)), nil
	}
	return health.Healthy("redis reachable"), nil
}
