package goFed

import (
	"context"
	"testing"
	"time"

	"github.com/MrEthical07/goFed/identity"
)

func TestBuildRequiresUserStore(t *testing.T) {
	_, err := New().WithConfig(testConfig()).Build()
	if err == nil {
		t.Fatal("expected build to fail without a user store")
	}
}

func TestBuildRejectsMissingSigningKey(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.PrivateKey = nil

	_, err := New().WithConfig(cfg).WithUserStore(newMockUserStore()).Build()
	if err == nil {
		t.Fatal("expected build to fail without a signing key")
	}
}

func TestBuildRejectsInvalidTTL(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.AccessTTL = 0

	_, err := New().WithConfig(cfg).WithUserStore(newMockUserStore()).Build()
	if err == nil {
		t.Fatal("expected build to fail with zero TTL")
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := New().WithConfig(testConfig()).WithUserStore(newMockUserStore())

	engine, err := b.Build()
	if err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	defer engine.Close()

	if _, err := b.Build(); err == nil {
		t.Fatal("expected second build to fail")
	}
}

func TestBuildRejectsDuplicateVerifier(t *testing.T) {
	v := stubVerifier{name: identity.Google, claims: map[string]identity.Claim{}}

	_, err := New().
		WithConfig(testConfig()).
		WithUserStore(newMockUserStore()).
		WithVerifier(v).
		WithVerifier(v).
		Build()
	if err == nil {
		t.Fatal("expected build to fail with duplicate provider")
	}
}

func TestWithConfigClonesInput(t *testing.T) {
	cfg := testConfig()
	b := New().WithConfig(cfg).WithUserStore(newMockUserStore())

	// Mutating the caller's copy after WithConfig must not leak into the
	// engine.
	cfg.JWT.PrivateKey[0] = 'X'
	cfg.JWT.AccessTTL = time.Nanosecond

	engine, err := b.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	defer engine.Close()

	if engine.config.JWT.AccessTTL != 5*time.Minute {
		t.Fatalf("config mutation leaked into engine: TTL %v", engine.config.JWT.AccessTTL)
	}
	if engine.config.JWT.PrivateKey[0] == 'X' {
		t.Fatal("signing key mutation leaked into engine")
	}
}

func TestBuildDefaultsWorkEndToEnd(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JWT.PrivateKey = []byte("default-config-key")

	users := newMockUserStore()
	engine, err := New().
		WithConfig(cfg).
		WithUserStore(users).
		WithVerifier(stubVerifier{
			name:   identity.Google,
			claims: map[string]identity.Claim{"a": {Name: "Alice", Email: "alice@example.com"}},
		}).
		Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	defer engine.Close()

	pair, err := engine.Login(context.Background(), identity.Google, "a")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := engine.Validate(context.Background(), pair.AccessToken); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
}
