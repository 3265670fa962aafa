package config

import (
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jonwraymond/canary/cache"
	"github.com/jonwraymond/canary/health"
	"github.com/jonwraymond/canary/observe"
)

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Service, validation.By(func(value interface{}) error {
			sc, ok := value.(ServiceConfig)
			if !ok {
				return validation.NewError("validation_invalid_type", "must be a ServiceConfig")
			}
			return validation.ValidateStruct(&sc,
				validation.Field(&sc.Name, validation.Required),
			)
		})),
		validation.Field(&c.Collect, validation.By(func(value interface{}) error {
			cc, ok := value.(CollectConfig)
			if !ok {
				return validation.NewError("validation_invalid_type", "must be a CollectConfig")
			}
			return validation.ValidateStruct(&cc,
				validation.Field(&cc.Parallelism, validation.Min(0)),
				validation.Field(&cc.ProbeTimeout, validation.Min(int64(0))),
			)
		})),
		validation.Field(&c.Observe, validation.By(func(value interface{}) error {
			oc, ok := value.(ObserveConfig)
			if !ok {
				return validation.NewError("validation_invalid_type", "must be an ObserveConfig")
			}
			return validation.ValidateStruct(&oc,
				validation.Field(&oc.Tracing, validation.By(func(value interface{}) error {
					tc, _ := value.(TracingConfig)
					return validation.ValidateStruct(&tc,
						validation.Field(&tc.Exporter, validation.In(stringsToAny(observe.ValidTracingExporters)...)),
						validation.Field(&tc.SamplePct, validation.Min(observe.MinSamplePct), validation.Max(observe.MaxSamplePct)),
					)
				})),
				validation.Field(&oc.Metrics, validation.By(func(value interface{}) error {
					mc, _ := value.(MetricsConfig)
					return validation.ValidateStruct(&mc,
						validation.Field(&mc.Exporter, validation.In(stringsToAny(observe.ValidMetricsExporters)...)),
					)
				})),
				validation.Field(&oc.Logging, validation.By(func(value interface{}) error {
					lc, _ := value.(LoggingConfig)
					return validation.ValidateStruct(&lc,
						validation.Field(&lc.Level, validation.In(stringsToAny(observe.ValidLogLevels)...)),
					)
				})),
			)
		})),
		validation.Field(&c.Probes,
			validation.Each(validation.By(validateProbeConfig)),
			validation.By(validateUniqueNames),
		),
	)
}

func validateProbeConfig(value interface{}) error {
	pc, ok := value.(ProbeConfig)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a ProbeConfig")
	}
	return validation.ValidateStruct(&pc,
		validation.Field(&pc.Name, validation.Required),
		validation.Field(&pc.Type, validation.Required, validation.In(stringsToAny(ProbeTypes)...)),
		validation.Field(&pc.Kind, validation.By(func(value interface{}) error {
			if s, _ := value.(string); s != "" {
				if _, err := health.ParseKind(s); err != nil {
					return validation.NewError("validation_invalid_kind", err.Error())
				}
			}
			return nil
		})),
		validation.Field(&pc.Importance, validation.By(func(value interface{}) error {
			if s, _ := value.(string); s != "" {
				if _, err := health.ParseImportance(s); err != nil {
					return validation.NewError("validation_invalid_importance", err.Error())
				}
			}
			return nil
		})),
		validation.Field(&pc.HealthyTTLSeconds, validation.Max(cache.MaxTTLSeconds)),
		validation.Field(&pc.UnhealthyTTLSeconds, validation.Max(cache.MaxTTLSeconds)),
		validation.Field(&pc.Timeout, validation.Min(int64(0))),
		validation.Field(&pc.Target,
			validation.When(needsTarget(pc.Type), validation.Required),
			validation.When(pc.Type == ProbeHTTP, validation.By(validateHTTPTarget)),
		),
	)
}

func needsTarget(probeType string) bool {
	switch probeType {
	case ProbeHTTP, ProbeSQL, ProbeRedis, ProbeKafka:
		return true
	}
	return false
}

func validateHTTPTarget(value interface{}) error {
	target, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	if target == "" {
		return nil
	}

	parsedURL, err := url.Parse(target)
	if err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return validation.NewError("validation_invalid_scheme", "URL must use http or https scheme")
	}
	if parsedURL.Host == "" {
		return validation.NewError("validation_missing_host", "URL must have a host")
	}
	return nil
}

func validateUniqueNames(value interface{}) error {
	probes, _ := value.([]ProbeConfig)
	seen := make(map[string]struct{}, len(probes))
	for _, p := range probes {
		if _, dup := seen[p.Name]; dup {
			return validation.NewError("validation_duplicate_probe", "duplicate probe name "+p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}

func stringsToAny(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
