package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonwraymond/canary/canary"
	"github.com/jonwraymond/canary/health"
	"github.com/jonwraymond/canary/observe"
)

// EnvPrefix prefixes environment overrides, e.g. CANARY_SERVICE_SECRET.
const EnvPrefix = "CANARY"

// Probe types.
const (
	ProbeHTTP          = "http"
	ProbeSQL           = "sql"
	ProbeRedis         = "redis"
	ProbeKafka         = "kafka"
	ProbeMemory        = "memory"
	ProbeConfiguration = "configuration"
)

// ProbeTypes lists every supported probe type.
var ProbeTypes = []string{ProbeHTTP, ProbeSQL, ProbeRedis, ProbeKafka, ProbeMemory, ProbeConfiguration}

type ServiceConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`

	// Secret is the shared secret callers must present. It may be a
	// secret reference. Empty disables the check.
	Secret string `mapstructure:"secret"`
}

type CollectConfig struct {
	// Parallelism is the number of probes run at once. 0 runs them
	// sequentially.
	Parallelism  int           `mapstructure:"parallelism"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
}

type TracingConfig struct {
	Enabled   bool    `mapstructure:"enabled"`
	Exporter  string  `mapstructure:"exporter"`
	SamplePct float64 `mapstructure:"sample_pct"`
}

type MetricsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Exporter string `mapstructure:"exporter"`
}

type LoggingConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Level   string `mapstructure:"level"`
}

type ObserveConfig struct {
	Tracing TracingConfig `mapstructure:"tracing"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type SecretsConfig struct {
	// Providers names the secret providers to enable.
	Providers []string `mapstructure:"providers"`

	// FileDir is the base directory for relative file references.
	FileDir string `mapstructure:"file_dir"`

	// Strict rejects secret references resolving to empty values.
	Strict bool `mapstructure:"strict"`
}

// ProbeConfig declares one probe.
type ProbeConfig struct {
	Name       string `mapstructure:"name"`
	Type       string `mapstructure:"type"`
	Kind       string `mapstructure:"kind"`
	Importance string `mapstructure:"importance"`

	// Nil TTLs default to 60 seconds. Negative disables caching.
	HealthyTTLSeconds   *int `mapstructure:"healthy_ttl_seconds"`
	UnhealthyTTLSeconds *int `mapstructure:"unhealthy_ttl_seconds"`

	Timeout time.Duration `mapstructure:"timeout"`

	// Target is the URL, DSN, address or broker list of the dependency.
	Target string `mapstructure:"target"`

	// Settings holds type-specific options.
	Settings map[string]string `mapstructure:"settings"`
}

type Config struct {
	Service ServiceConfig `mapstructure:"service"`
	Collect CollectConfig `mapstructure:"collect"`
	Observe ObserveConfig `mapstructure:"observe"`
	Secrets SecretsConfig `mapstructure:"secrets"`
	Probes  []ProbeConfig `mapstructure:"probes"`
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("service.name", canary.UnknownService)
	v.SetDefault("service.version", "")
	v.SetDefault("service.secret", "")
	v.SetDefault("collect.parallelism", 0)
	v.SetDefault("collect.probe_timeout", "0s")
	v.SetDefault("observe.tracing.enabled", false)
	v.SetDefault("observe.tracing.exporter", "none")
	v.SetDefault("observe.tracing.sample_pct", 1.0)
	v.SetDefault("observe.metrics.enabled", false)
	v.SetDefault("observe.metrics.exporter", "none")
	v.SetDefault("observe.logging.enabled", true)
	v.SetDefault("observe.logging.level", "info")
	v.SetDefault("secrets.providers", []string{"env", "file"})
	v.SetDefault("secrets.file_dir", "")
	v.SetDefault("secrets.strict", true)

	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration file at path. An empty path searches for
// canary.yaml in the working directory and ./config, falling back to
// defaults and environment variables when none exists.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("canary")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}
	return decode(v)
}

// Parse reads YAML configuration from r.
func Parse(r io.Reader) (*Config, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid: %w", err)
	}
	return &cfg, nil
}

// ObserveConfig converts the telemetry settings for observe.NewObserver.
func (c *Config) ObserveConfig() observe.Config {
	probes := make([]string, len(c.Probes))
	for i, p := range c.Probes {
		probes[i] = p.Name
	}
	return observe.Config{
		ServiceName: c.Service.Name,
		Version:     c.Service.Version,
		Probes:      probes,
		Parallelism: c.Collect.Parallelism,
		Tracing: observe.TracingConfig{
			Enabled:   c.Observe.Tracing.Enabled,
			Exporter:  c.Observe.Tracing.Exporter,
			SamplePct: c.Observe.Tracing.SamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  c.Observe.Metrics.Enabled,
			Exporter: c.Observe.Metrics.Exporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: c.Observe.Logging.Enabled,
			Level:   c.Observe.Logging.Level,
		},
	}
}

// DescriptorOptions returns the descriptor overrides the probe declares.
// Unset fields keep the defaults of the probe type.
func (p ProbeConfig) DescriptorOptions() ([]health.DescriptorOption, error) {
	var opts []health.DescriptorOption
	if p.Kind != "" {
		k, err := health.ParseKind(p.Kind)
		if err != nil {
			return nil, err
		}
		opts = append(opts, health.WithKind(k))
	}
	if p.Importance != "" {
		i, err := health.ParseImportance(p.Importance)
		if err != nil {
			return nil, err
		}
		opts = append(opts, health.WithImportance(i))
	}
	if p.HealthyTTLSeconds != nil {
		opts = append(opts, health.WithHealthyTTL(*p.HealthyTTLSeconds))
	}
	if p.UnhealthyTTLSeconds != nil {
		opts = append(opts, health.WithUnhealthyTTL(*p.UnhealthyTTLSeconds))
	}
	if p.Timeout > 0 {
		opts = append(opts, health.WithTimeout(p.Timeout))
	}
	return opts, nil
}
