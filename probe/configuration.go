package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonwraymond/canary/health"
)

// Lookup returns the value of a configuration key, or "" when unset.
type Lookup func(key string) string

// MapLookup returns a Lookup over a fixed map.
func MapLookup(values map[string]string) Lookup {
	return func(key string) string { return values[key] }
}

// ConfigurationProbe checks that required settings are present.
type ConfigurationProbe struct {
	described
	lookup   Lookup
	required []string
}

// Configuration returns a CONFIGURATION probe reporting CRITICAL when any
// of the required keys resolves to an empty value.
func Configuration(name string, lookup Lookup, required []string, opts ...health.DescriptorOption) *ConfigurationProbe {
	return &ConfigurationProbe{
		described: describe(name, health.KindConfiguration, opts),
		lookup:    lookup,
		required:  append([]string(nil), required...),
	}
}

// Check implements health.Probe.
func (p *ConfigurationProbe) Check(ctx context.Context) (health.Result, error) {
	var missing []string
	for _, key := range p.required {
		if strings.TrimSpace(p.lookup(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return health.Critical("missing configuration: " + strings.Join(missing, ", ")), nil
	}
	return health.Healthy(fmt.Sprintf("%d settings present", len(p.required))), nil
}
