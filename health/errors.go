package health

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig matches every configuration error returned by registration.
	ErrConfig = errors.New("health: invalid configuration")

	// ErrNilProbe indicates a nil probe was registered.
	ErrNilProbe = errors.New("health: probe is nil")

	// ErrDuplicateProbe indicates a probe name is already registered.
	ErrDuplicateProbe = errors.New("health: probe already registered")

	// ErrInvalidDescriptor indicates a descriptor failed validation.
	ErrInvalidDescriptor = errors.New("health: invalid descriptor")

	// ErrMissingDescriptor indicates a probe carries no descriptor.
	ErrMissingDescriptor = errors.New("health: probe has no descriptor")

	// ErrProbeNotFound indicates no probe is registered under a name.
	ErrProbeNotFound = errors.New("health: probe not found")
)

// ConfigError is returned synchronously when a probe cannot be registered.
// The probe is not added.
type ConfigError struct {
	// Probe identifies the offending probe: its descriptor name when known,
	// otherwise its Go type.
	Probe string

	// Err is the underlying cause.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Probe == "" {
		return fmt.Sprintf("health: configuration error: %v", e.Err)
	}
	return fmt.Sprintf("health: configuration error for probe %q: %v", e.Probe, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is reports ErrConfig as a match so callers need not know the cause.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
