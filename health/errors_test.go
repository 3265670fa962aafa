package health

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := &ConfigError{Probe: "db", Err: ErrDuplicateProbe}

	if !errors.Is(err, ErrConfig) {
		t.Error("ConfigError should match ErrConfig")
	}
	if !errors.Is(err, ErrDuplicateProbe) {
		t.Error("ConfigError should unwrap to its cause")
	}
	if errors.Is(err, ErrNilProbe) {
		t.Error("ConfigError should not match an unrelated sentinel")
	}
	if !strings.Contains(err.Error(), `"db"`) {
		t.Errorf("Error() = %q, want probe name", err.Error())
	}
}

func TestConfigError_NoProbe(t *testing.T) {
	err := &ConfigError{Err: ErrNilProbe}

	if got := err.Error(); strings.Contains(got, `""`) {
		t.Errorf("Error() = %q, should omit empty probe name", got)
	}
}

func TestConfigError_As(t *testing.T) {
	var wrapped error = &ConfigError{Probe: "cache", Err: ErrMissingDescriptor}

	var ce *ConfigError
	if !errors.As(wrapped, &ce) {
		t.Fatal("errors.As should find ConfigError")
	}
	if ce.Probe != "cache" {
		t.Errorf("Probe = %q, want cache", ce.Probe)
	}
}
