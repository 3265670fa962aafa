package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonwraymond/canary/health"
)

const sampleYAML = `
service:
  name: orders
  secret: secretref:env:CANARY_SECRET
collect:
  parallelism: 4
  probe_timeout: 2s
observe:
  logging:
    level: debug
probes:
  - name: orders-db
    type: sql
    target: postgres://localhost/orders
    importance: primary
    healthy_ttl_seconds: 30
    unhealthy_ttl_seconds: 5
  - name: sessions
    type: redis
    target: localhost:6379
    timeout: 500ms
  - name: billing
    type: http
    kind: api
    target: https://billing.internal/healthz
    settings:
      min_status: "200"
  - name: memory
    type: memory
    healthy_ttl_seconds: -1
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "canary.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Service.Name != "orders" {
		t.Errorf("Service.Name = %q, want orders", cfg.Service.Name)
	}
	if cfg.Collect.Parallelism != 4 || cfg.Collect.ProbeTimeout != 2*time.Second {
		t.Errorf("Collect = %+v", cfg.Collect)
	}
	if cfg.Observe.Logging.Level != "debug" || !cfg.Observe.Logging.Enabled {
		t.Errorf("Observe.Logging = %+v, want enabled debug", cfg.Observe.Logging)
	}
	if len(cfg.Probes) != 4 {
		t.Fatalf("len(Probes) = %d, want 4", len(cfg.Probes))
	}
	if p := cfg.Probes[1]; p.Timeout != 500*time.Millisecond || p.HealthyTTLSeconds != nil {
		t.Errorf("Probes[1] = %+v", p)
	}
	if got := cfg.Probes[2].Settings["min_status"]; got != "200" {
		t.Errorf("Settings = %v, want min_status", cfg.Probes[2].Settings)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "probes: []\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Service.Name != "unknown-service" {
		t.Errorf("Service.Name = %q, want unknown-service", cfg.Service.Name)
	}
	if cfg.Collect.Parallelism != 0 {
		t.Errorf("Parallelism = %d, want 0", cfg.Collect.Parallelism)
	}
	if got := strings.Join(cfg.Secrets.Providers, ","); got != "env,file" {
		t.Errorf("Secrets.Providers = %q, want env,file", got)
	}
	if !cfg.Secrets.Strict {
		t.Error("Secrets.Strict should default to true")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CANARY_SERVICE_NAME", "from-env")
	t.Setenv("CANARY_COLLECT_PARALLELISM", "8")

	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Service.Name != "from-env" {
		t.Errorf("Service.Name = %q, want from-env", cfg.Service.Name)
	}
	if cfg.Collect.Parallelism != 8 {
		t.Errorf("Parallelism = %d, want 8", cfg.Collect.Parallelism)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() should fail for an explicit missing file")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown type", "probes:\n  - name: x\n    type: ftp\n", "type"},
		{"missing name", "probes:\n  - type: memory\n", "name"},
		{"missing target", "probes:\n  - name: db\n    type: sql\n", "target"},
		{"bad http scheme", "probes:\n  - name: api\n    type: http\n    target: ftp://x\n", "scheme"},
		{"bad kind", "probes:\n  - name: m\n    type: memory\n    kind: mainframe\n", "kind"},
		{"bad importance", "probes:\n  - name: m\n    type: memory\n    importance: vital\n", "importance"},
		{"duplicate", "probes:\n  - name: m\n    type: memory\n  - name: m\n    type: memory\n", "duplicate"},
		{"healthy ttl beyond max", "probes:\n  - name: m\n    type: memory\n    healthy_ttl_seconds: 10000000000\n", "healthyttlseconds"},
		{"unhealthy ttl beyond max", "probes:\n  - name: m\n    type: memory\n    unhealthy_ttl_seconds: 9223372037\n", "no greater than"},
		{"negative parallelism", "collect:\n  parallelism: -1\n", "parallelism"},
		{"bad log level", "observe:\n  logging:\n    level: loud\n", "level"},
		{"bad exporter", "observe:\n  metrics:\n    exporter: statsd\n", "exporter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.yaml))
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if !strings.Contains(strings.ToLower(err.Error()), tt.want) {
				t.Errorf("Parse() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestProbeConfig_DescriptorOptions(t *testing.T) {
	healthy, unhealthy := 30, -1
	pc := ProbeConfig{
		Name:                "orders-db",
		Kind:                "database",
		Importance:          "secondary",
		HealthyTTLSeconds:   &healthy,
		UnhealthyTTLSeconds: &unhealthy,
		Timeout:             time.Second,
	}

	opts, err := pc.DescriptorOptions()
	if err != nil {
		t.Fatalf("DescriptorOptions() error = %v", err)
	}
	d := health.NewDescriptor(pc.Name, opts...)

	want := health.Descriptor{
		Name:                "orders-db",
		Kind:                health.KindDatabase,
		Importance:          health.ImportanceSecondary,
		HealthyTTLSeconds:   30,
		UnhealthyTTLSeconds: -1,
		Timeout:             time.Second,
	}
	if d != want {
		t.Errorf("descriptor = %+v, want %+v", d, want)
	}
}

func TestProbeConfig_DescriptorOptionsDefaults(t *testing.T) {
	opts, err := ProbeConfig{Name: "m"}.DescriptorOptions()
	if err != nil {
		t.Fatalf("DescriptorOptions() error = %v", err)
	}
	d := health.NewDescriptor("m", opts...)
	if d.HealthyTTLSeconds != 60 || d.UnhealthyTTLSeconds != 60 {
		t.Errorf("TTLs = %d/%d, want 60/60", d.HealthyTTLSeconds, d.UnhealthyTTLSeconds)
	}
}

func TestConfig_ObserveConfig(t *testing.T) {
	cfg, err := Parse(strings.NewReader("service:\n  name: orders\n  version: 1.2.3\ncollect:\n  parallelism: 3\nprobes:\n  - name: heap\n    type: memory\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	oc := cfg.ObserveConfig()
	if oc.ServiceName != "orders" || oc.Version != "1.2.3" {
		t.Errorf("ObserveConfig() = %+v", oc)
	}
	if oc.Parallelism != 3 || len(oc.Probes) != 1 || oc.Probes[0] != "heap" {
		t.Errorf("ObserveConfig() probes = %v parallelism = %d, want [heap] 3", oc.Probes, oc.Parallelism)
	}
	if err := oc.Validate(); err != nil {
		t.Errorf("ObserveConfig().Validate() error = %v", err)
	}
}
