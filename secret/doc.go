// Package secret resolves secret references in configuration values.
//
// Values may contain strict environment references (${VAR}, which must be
// set) and secret references handled by a Provider:
//   - Full value:  secretref:file:/var/run/secrets/canary/token
//   - Inline use:  postgres://canary:secretref:env:DB_PASSWORD@db:5432/app
//
// Two providers are built in: "env" reads an environment variable and
// "file" reads a file, trimming surrounding whitespace. BuiltinRegistry
// returns a Registry with both factories registered.
package secret
