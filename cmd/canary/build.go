package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/jonwraymond/canary/canary"
	"github.com/jonwraymond/canary/config"
	"github.com/jonwraymond/canary/health"
	"github.com/jonwraymond/canary/observe"
	"github.com/jonwraymond/canary/probe"
	"github.com/jonwraymond/canary/resilience"
	"github.com/jonwraymond/canary/secret"
)

// app holds everything built from a configuration.
type app struct {
	canary     *canary.Canary
	aggregator *health.Aggregator
	observer   observe.Observer
	resolver   *secret.Resolver
	closers    []func() error
}

func build(ctx context.Context, cfg *config.Config) (_ *app, err error) {
	rt := &app{}
	defer func() {
		if err != nil {
			_ = rt.Close(context.Background())
		}
	}()

	rt.observer, err = observe.NewObserver(ctx, cfg.ObserveConfig())
	if err != nil {
		return nil, fmt.Errorf("observer: %w", err)
	}
	mw, err := observe.MiddlewareFromObserver(rt.observer)
	if err != nil {
		return nil, fmt.Errorf("middleware: %w", err)
	}

	providerCfg := map[string]any{"dir": cfg.Secrets.FileDir}
	rt.resolver, err = secret.NewResolverFromRegistry(cfg.Secrets.Strict, secret.BuiltinRegistry(), cfg.Secrets.Providers, providerCfg)
	if err != nil {
		return nil, fmt.Errorf("secrets: %w", err)
	}

	pool, err := resilience.NewPool(cfg.Collect.Parallelism)
	if err != nil {
		return nil, fmt.Errorf("pool: %w", err)
	}

	rt.aggregator = health.NewAggregator(health.AggregatorConfig{
		Pool:         pool,
		ProbeTimeout: cfg.Collect.ProbeTimeout,
		Middleware:   mw,
	})

	for _, pc := range cfg.Probes {
		p, closer, err := buildProbe(ctx, rt.resolver, pc)
		if err != nil {
			return nil, fmt.Errorf("probe %q: %w", pc.Name, err)
		}
		if closer != nil {
			rt.closers = append(rt.closers, closer)
		}
		if _, err := rt.aggregator.RegisterProbe(p); err != nil {
			return nil, err
		}
	}

	gate, err := canary.NewGate(ctx, rt.resolver, cfg.Service.Secret)
	if err != nil {
		return nil, err
	}

	rt.canary = canary.New(rt.aggregator, canary.Config{
		ServiceName: cfg.Service.Name,
		Gate:        gate,
		Logger:      rt.observer.Logger(),
	})
	return rt, nil
}

// Close releases probe clients, secret providers and telemetry.
func (rt *app) Close(ctx context.Context) error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if err := rt.resolver.Close(); err != nil {
		errs = append(errs, err)
	}
	if rt.observer != nil {
		if err := rt.observer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// buildProbe creates the probe declared by pc. The returned closer, when
// non-nil, releases the probe's client.
func buildProbe(ctx context.Context, resolver *secret.Resolver, pc config.ProbeConfig) (health.Probe, func() error, error) {
	opts, err := pc.DescriptorOptions()
	if err != nil {
		return nil, nil, err
	}
	target, err := resolver.ResolveValue(ctx, pc.Target)
	if err != nil {
		return nil, nil, fmt.Errorf("target: %w", err)
	}
	settings, err := resolver.ResolveMap(ctx, pc.Settings)
	if err != nil {
		return nil, nil, fmt.Errorf("settings: %w", err)
	}

	var (
		p      health.Probe
		closer func() error
	)
	switch pc.Type {
	case config.ProbeSQL:
		driver := settings["driver"]
		if driver == "" {
			driver = "postgres"
		}
		db, err := sql.Open(driver, target)
		if err != nil {
			return nil, nil, err
		}
		p, closer = probe.SQL(pc.Name, db, opts...), db.Close

	case config.ProbeRedis:
		client, err := newRedisClient(target, settings)
		if err != nil {
			return nil, nil, err
		}
		p, closer = probe.Redis(pc.Name, client, opts...), client.Close

	case config.ProbeKafka:
		client, err := kgo.NewClient(kgo.SeedBrokers(splitList(target)...))
		if err != nil {
			return nil, nil, err
		}
		p, closer = probe.Kafka(pc.Name, client, opts...), func() error { client.Close(); return nil }

	case config.ProbeHTTP:
		httpOpts := probe.HTTPOptions{}
		if httpOpts.MinStatus, err = intSetting(settings, "min_status"); err != nil {
			return nil, nil, err
		}
		if httpOpts.MaxStatus, err = intSetting(settings, "max_status"); err != nil {
			return nil, nil, err
		}
		p = probe.HTTP(pc.Name, target, httpOpts, opts...)

	case config.ProbeMemory:
		memCfg := probe.MemoryConfig{}
		if memCfg.WarningThreshold, err = floatSetting(settings, "warning_threshold"); err != nil {
			return nil, nil, err
		}
		if memCfg.CriticalThreshold, err = floatSetting(settings, "critical_threshold"); err != nil {
			return nil, nil, err
		}
		maxAlloc, err := intSetting(settings, "max_alloc_bytes")
		if err != nil {
			return nil, nil, err
		}
		memCfg.MaxAlloc = uint64(max(maxAlloc, 0))
		p = probe.Memory(pc.Name, memCfg, opts...)

	case config.ProbeConfiguration:
		p = probe.Configuration(pc.Name, os.Getenv, splitList(settings["required"]), opts...)

	default:
		return nil, nil, fmt.Errorf("unknown probe type %q", pc.Type)
	}

	if raw := settings["degraded_after"]; raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			if closer != nil {
				_ = closer()
			}
			return nil, nil, fmt.Errorf("degraded_after: %w", err)
		}
		p = probe.Latency(p, d)
	}
	return p, closer, nil
}

func newRedisClient(target string, settings map[string]string) (*goredis.Client, error) {
	if strings.HasPrefix(target, "redis://") || strings.HasPrefix(target, "rediss://") {
		opts, err := goredis.ParseURL(target)
		if err != nil {
			return nil, err
		}
		return goredis.NewClient(opts), nil
	}
	db, err := intSetting(settings, "db")
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     target,
		Password: settings["password"],
		DB:       db,
	}), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func intSetting(settings map[string]string, key string) (int, error) {
	raw := settings[key]
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("setting %s: %w", key, err)
	}
	return v, nil
}

func floatSetting(settings map[string]string, key string) (float64, error) {
	raw := settings[key]
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("setting %s: %w", key, err)
	}
	return v, nil
}
