package identity

import (
	"context"
	"errors"
	"fmt"
)

// Provider names an identity provider a [Verifier] can be registered under.
type Provider string

// Google is the only provider shipped with the engine. Additional providers
// plug in through [Registry.Register].
const Google Provider = "google"

// Claim is the verified subset of a provider assertion. It deliberately
// carries no subject ID, issue time, or expiry: account creation must never
// inherit those from a caller-supplied token.
type Claim struct {
	Name  string
	Email string
}

// ErrVerificationFailed is the single failure value for assertion
// verification. The underlying cause is never attached.
var ErrVerificationFailed = errors.New("identity assertion rejected")

// Verifier checks a raw provider assertion and extracts the claim.
type Verifier interface {
	Provider() Provider
	Verify(ctx context.Context, assertion string) (Claim, error)
}

// Registry dispatches assertions to the verifier registered for their
// provider. It is populated during engine construction and read-only
// afterwards, so lookups need no locking.
type Registry struct {
	verifiers map[Provider]Verifier
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{verifiers: make(map[Provider]Verifier)}
}

// Register adds a verifier under its provider name. Registering the same
// provider twice is a construction error.
func (r *Registry) Register(v Verifier) error {
	if v == nil {
		return errors.New("nil verifier")
	}
	p := v.Provider()
	if p == "" {
		return errors.New("verifier has empty provider name")
	}
	if _, ok := r.verifiers[p]; ok {
		return fmt.Errorf("verifier already registered for provider %q", p)
	}
	r.verifiers[p] = v
	return nil
}

// Lookup returns the verifier for p, if one is registered.
func (r *Registry) Lookup(p Provider) (Verifier, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.verifiers[p]
	return v, ok
}

// Providers returns the registered provider names.
func (r *Registry) Providers() []Provider {
	if r == nil {
		return nil
	}
	out := make([]Provider, 0, len(r.verifiers))
	for p := range r.verifiers {
		out = append(out, p)
	}
	return out
}
