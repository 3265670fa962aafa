package secret

import (
	"context"
	"errors"
	"testing"
)

type staticProvider struct {
	name   string
	values map[string]string
	closed bool
}

func (p *staticProvider) Name() string { return p.name }

func (p *staticProvider) Resolve(ctx context.Context, ref string) (string, error) {
	v, ok := p.values[ref]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (p *staticProvider) Close() error {
	p.closed = true
	return nil
}

func TestParseSecretRef(t *testing.T) {
	tests := []struct {
		value    string
		provider string
		ref      string
		ok       bool
	}{
		{"secretref:env:TOKEN", "env", "TOKEN", true},
		{"secretref:file:/run/a:b", "file", "/run/a:b", true},
		{"secretref:env:", "", "", false},
		{"secretref::x", "", "", false},
		{"plain", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			provider, ref, ok := ParseSecretRef(tt.value)
			if provider != tt.provider || ref != tt.ref || ok != tt.ok {
				t.Errorf("ParseSecretRef() = %q, %q, %v", provider, ref, ok)
			}
		})
	}
}

func TestResolver_ResolveValue(t *testing.T) {
	vault := &staticProvider{name: "vault", values: map[string]string{
		"db/password": "hunter2",
		"empty":       "",
	}}
	r := NewResolver(false, vault)
	ctx := context.Background()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"plain", "plain", "plain"},
		{"full ref", "secretref:vault:db/password", "hunter2"},
		{"inline ref", "postgres://canary:secretref:vault:db/password@db:5432/app", "postgres://canary:hunter2@db:5432/app"},
		{"empty allowed", "secretref:vault:empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveValue(ctx, tt.value)
			if err != nil {
				t.Fatalf("ResolveValue() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolver_Errors(t *testing.T) {
	vault := &staticProvider{name: "vault", values: map[string]string{"empty": ""}}
	strict := NewResolver(true, vault)
	ctx := context.Background()

	if _, err := strict.ResolveValue(ctx, "secretref:vault:empty"); !errors.Is(err, ErrEmptySecret) {
		t.Errorf("strict empty error = %v, want ErrEmptySecret", err)
	}
	if _, err := strict.ResolveValue(ctx, "secretref:aws:key"); !errors.Is(err, ErrProviderNotRegistered) {
		t.Errorf("unknown provider error = %v, want ErrProviderNotRegistered", err)
	}
	if _, err := strict.ResolveValue(ctx, "secretref:vault:missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing ref error = %v, want ErrNotFound", err)
	}
	if _, err := strict.ResolveValue(ctx, "${CANARY_TEST_NEVER_SET}"); !errors.Is(err, ErrMissingEnv) {
		t.Errorf("missing env error = %v, want ErrMissingEnv", err)
	}
}

func TestResolver_Nil(t *testing.T) {
	var r *Resolver
	got, err := r.ResolveValue(context.Background(), "secretref:env:X")
	if err != nil || got != "secretref:env:X" {
		t.Errorf("nil ResolveValue() = %q, %v", got, err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("nil Close() error = %v", err)
	}
}

func TestResolver_ResolveMap(t *testing.T) {
	t.Setenv("CANARY_TEST_ADDR", "redis:6379")
	r := NewResolver(false)

	got, err := r.ResolveMap(context.Background(), map[string]string{"addr": "${CANARY_TEST_ADDR}"})
	if err != nil {
		t.Fatalf("ResolveMap() error = %v", err)
	}
	if got["addr"] != "redis:6379" {
		t.Errorf("ResolveMap()[addr] = %q", got["addr"])
	}

	if m, err := r.ResolveMap(context.Background(), nil); m != nil || err != nil {
		t.Errorf("ResolveMap(nil) = %v, %v", m, err)
	}
}

func TestNewResolverFromRegistry(t *testing.T) {
	t.Setenv("CANARY_TEST_SECRET", "abc")

	r, err := NewResolverFromRegistry(true, BuiltinRegistry(), []string{"env", "file"}, nil)
	if err != nil {
		t.Fatalf("NewResolverFromRegistry() error = %v", err)
	}
	defer r.Close()

	got, err := r.ResolveValue(context.Background(), "secretref:env:CANARY_TEST_SECRET")
	if err != nil || got != "abc" {
		t.Errorf("ResolveValue() = %q, %v, want abc", got, err)
	}

	if _, err := NewResolverFromRegistry(true, BuiltinRegistry(), []string{"vault"}, nil); !errors.Is(err, ErrProviderNotRegistered) {
		t.Errorf("unknown provider error = %v, want ErrProviderNotRegistered", err)
	}
}

func TestResolver_Close(t *testing.T) {
	p := &staticProvider{name: "vault"}
	r := NewResolver(false, p)

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !p.closed {
		t.Error("Close() should close providers")
	}
}
