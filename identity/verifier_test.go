package identity

import (
	"context"
	"testing"
)

type fakeVerifier struct {
	name  Provider
	claim Claim
}

func (f fakeVerifier) Provider() Provider { return f.name }

func (f fakeVerifier) Verify(_ context.Context, assertion string) (Claim, error) {
	if assertion == "" {
		return Claim{}, ErrVerificationFailed
	}
	return f.claim, nil
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	v := fakeVerifier{name: Google, claim: Claim{Name: "Alice", Email: "alice@example.com"}}
	if err := r.Register(v); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	got, ok := r.Lookup(Google)
	if !ok {
		t.Fatal("expected verifier registered for google")
	}

	claim, err := got.Verify(context.Background(), "anything")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claim.Email != "alice@example.com" {
		t.Fatalf("unexpected claim %+v", claim)
	}
}

func TestRegistryRejectsDuplicate(t *testing.T) {
	r := NewRegistry()

	v := fakeVerifier{name: Google}
	if err := r.Register(v); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := r.Register(v); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestRegistryRejectsNilAndUnnamed(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(nil); err == nil {
		t.Fatal("expected nil verifier to be rejected")
	}
	if err := r.Register(fakeVerifier{name: ""}); err == nil {
		t.Fatal("expected empty provider name to be rejected")
	}
}

func TestRegistryLookupUnknownProvider(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Lookup(Provider("github")); ok {
		t.Fatal("expected no verifier for unregistered provider")
	}

	var nilRegistry *Registry
	if _, ok := nilRegistry.Lookup(Google); ok {
		t.Fatal("nil registry must report absence")
	}
}

func TestRegistryProviders(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(fakeVerifier{name: Google}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := r.Register(fakeVerifier{name: Provider("custom")}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	providers := r.Providers()
	if len(providers) != 2 {
		t.Fatalf("expected 2 providers, got %v", providers)
	}
}
