// Package config loads the canary configuration from a YAML file and
// CANARY_-prefixed environment variables. It defines the service identity,
// collection settings, telemetry, secret providers and the list of probes.
package config
