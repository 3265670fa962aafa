package secret

import "errors"

var (
	// ErrMissingEnv indicates a ${VAR} reference to an unset variable.
	ErrMissingEnv = errors.New("secret: missing required environment variables")

	// ErrProviderNotRegistered indicates a reference names an unknown provider.
	ErrProviderNotRegistered = errors.New("secret: provider not registered")

	// ErrProviderExists indicates a factory name is already taken.
	ErrProviderExists = errors.New("secret: provider already registered")

	// ErrInvalidRegistration indicates an empty name or nil factory.
	ErrInvalidRegistration = errors.New("secret: invalid provider registration")

	// ErrInvalidRef indicates a malformed or empty reference.
	ErrInvalidRef = errors.New("secret: invalid reference")

	// ErrEmptySecret indicates a provider resolved to an empty value in
	// strict mode.
	ErrEmptySecret = errors.New("secret: empty value")

	// ErrNotFound indicates a provider has no secret for a reference.
	ErrNotFound = errors.New("secret: not found")
)
