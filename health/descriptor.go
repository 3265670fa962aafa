package health

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jonwraymond/canary/cache"
)

// Descriptor is the cache and identity metadata attached to a probe.
//
// A negative TTL means the corresponding outcome is never served from cache.
type Descriptor struct {
	Name                string
	Kind                Kind
	Importance          Importance
	HealthyTTLSeconds   int
	UnhealthyTTLSeconds int

	// Timeout bounds a single invocation. Zero inherits the aggregator's
	// ProbeTimeout.
	Timeout time.Duration
}

// DescriptorOption configures a Descriptor.
type DescriptorOption func(*Descriptor)

// WithKind sets the dependency kind.
func WithKind(k Kind) DescriptorOption {
	return func(d *Descriptor) { d.Kind = k }
}

// WithImportance sets the dependency importance.
func WithImportance(i Importance) DescriptorOption {
	return func(d *Descriptor) { d.Importance = i }
}

// WithTTL sets both the healthy and unhealthy TTL.
func WithTTL(seconds int) DescriptorOption {
	return func(d *Descriptor) {
		d.HealthyTTLSeconds = seconds
		d.UnhealthyTTLSeconds = seconds
	}
}

// WithHealthyTTL sets how long a healthy result is served from cache.
func WithHealthyTTL(seconds int) DescriptorOption {
	return func(d *Descriptor) { d.HealthyTTLSeconds = seconds }
}

// WithUnhealthyTTL sets how long a non-healthy result is served from cache.
func WithUnhealthyTTL(seconds int) DescriptorOption {
	return func(d *Descriptor) { d.UnhealthyTTLSeconds = seconds }
}

// WithTimeout bounds a single invocation of the probe.
func WithTimeout(timeout time.Duration) DescriptorOption {
	return func(d *Descriptor) { d.Timeout = timeout }
}

// NewDescriptor returns a descriptor for name with defaults applied:
// RESOURCE, PRIMARY and a 60 second TTL for both outcomes.
func NewDescriptor(name string, opts ...DescriptorOption) Descriptor {
	d := Descriptor{
		Name:                name,
		Kind:                KindResource,
		Importance:          ImportancePrimary,
		HealthyTTLSeconds:   cache.DefaultTTLSeconds,
		UnhealthyTTLSeconds: cache.DefaultTTLSeconds,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// normalized fills an empty Kind or Importance with its default.
func (d Descriptor) normalized() Descriptor {
	if d.Kind == "" {
		d.Kind = KindResource
	}
	if d.Importance == "" {
		d.Importance = ImportancePrimary
	}
	return d
}

var errBlankName = validation.NewError("validation_blank_name", "must not be blank")

func notBlank(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errBlankName
	}
	return nil
}

// Validate reports whether the descriptor can be registered. Empty Kind and
// Importance are accepted since registration defaults them.
func (d Descriptor) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.By(notBlank)),
		validation.Field(&d.Kind, validation.In(kindValues()...)),
		validation.Field(&d.Importance, validation.In(importanceValues()...)),
		validation.Field(&d.HealthyTTLSeconds, validation.Max(cache.MaxTTLSeconds)),
		validation.Field(&d.UnhealthyTTLSeconds, validation.Max(cache.MaxTTLSeconds)),
		validation.Field(&d.Timeout, validation.Min(time.Duration(0))),
	)
}

// Dependency returns the dependency identified by the descriptor.
func (d Descriptor) Dependency() Dependency {
	d = d.normalized()
	return Dependency{Importance: d.Importance, Kind: d.Kind, Name: d.Name}
}

// Policy returns the cache policy for the descriptor's TTLs.
func (d Descriptor) Policy() cache.Policy {
	return cache.PolicyFromSeconds(d.HealthyTTLSeconds, d.UnhealthyTTLSeconds)
}

func kindValues() []any {
	out := make([]any, len(Kinds))
	for i, k := range Kinds {
		out[i] = k
	}
	return out
}

func importanceValues() []any {
	out := make([]any, len(Importances))
	for i, v := range Importances {
		out[i] = v
	}
	return out
}

// validateDescriptor wraps validation failures as a ConfigError naming the
// probe, by its type when the descriptor has no usable name.
func validateDescriptor(p Probe, d Descriptor) error {
	if err := d.Validate(); err != nil {
		return &ConfigError{Probe: probeIdentity(p, d), Err: fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)}
	}
	return nil
}

func probeIdentity(p Probe, d Descriptor) string {
	if strings.TrimSpace(d.Name) != "" {
		return d.Name
	}
	return fmt.Sprintf("%T", p)
}
