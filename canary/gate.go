package canary

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/jonwraymond/canary/secret"
)

// Gate checks a caller-provided shared secret.
type Gate struct {
	secret []byte
}

// OpenGate returns a gate that admits everyone.
func OpenGate() *Gate {
	return &Gate{}
}

// NewGate resolves configured through resolver and returns a gate for the
// result. An empty secret yields an open gate.
func NewGate(ctx context.Context, resolver *secret.Resolver, configured string) (*Gate, error) {
	value, err := resolver.ResolveValue(ctx, configured)
	if err != nil {
		return nil, fmt.Errorf("canary: resolve secret: %w", err)
	}
	return &Gate{secret: []byte(value)}, nil
}

// Open reports whether the gate admits every caller.
func (g *Gate) Open() bool {
	return g == nil || len(g.secret) == 0
}

// Allow reports whether provided matches the shared secret.
func (g *Gate) Allow(provided string) bool {
	if g.Open() {
		return true
	}
	return subtle.ConstantTimeCompare(g.secret, []byte(provided)) == 1
}
