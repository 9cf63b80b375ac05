package jwt

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"
)

func hsConfig() Config {
	return Config{
		AccessTTL:     5 * time.Minute,
		SigningMethod: MethodHS256,
		PrivateKey:    []byte("manager-test-signing-key"),
	}
}

func TestNewManagerValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid hs256",
			mutate: func(c *Config) {},
		},
		{
			name: "zero ttl",
			mutate: func(c *Config) {
				c.AccessTTL = 0
			},
			wantErr: true,
		},
		{
			name: "negative leeway",
			mutate: func(c *Config) {
				c.Leeway = -time.Second
			},
			wantErr: true,
		},
		{
			name: "excessive leeway",
			mutate: func(c *Config) {
				c.Leeway = 3 * time.Minute
			},
			wantErr: true,
		},
		{
			name: "hs256 missing key",
			mutate: func(c *Config) {
				c.PrivateKey = nil
			},
			wantErr: true,
		},
		{
			name: "unsupported method",
			mutate: func(c *Config) {
				c.SigningMethod = "rs256"
			},
			wantErr: true,
		},
		{
			name: "ed25519 bad private key",
			mutate: func(c *Config) {
				c.SigningMethod = MethodEd25519
				c.PrivateKey = []byte("too short")
				c.PublicKey = []byte("too short")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := hsConfig()
			tt.mutate(&cfg)

			_, err := NewManager(cfg)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCreateAndParseRoundTrip(t *testing.T) {
	m, err := NewManager(hsConfig())
	if err != nil {
		t.Fatalf("manager init: %v", err)
	}

	token, err := m.CreateAccess("u1", "Alice", "alice@example.com", []int{1, 2}, []int{7})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	claims, err := m.ParseAccess(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != "u1" || claims.Name != "Alice" || claims.Email != "alice@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if len(claims.Permissions) != 2 || claims.Permissions[1] != 2 {
		t.Fatalf("unexpected permissions %v", claims.Permissions)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != 7 {
		t.Fatalf("unexpected roles %v", claims.Roles)
	}
}

func TestExpiryIsIssueTimePlusTTL(t *testing.T) {
	cfg := hsConfig()
	cfg.AccessTTL = 300 * time.Second

	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("manager init: %v", err)
	}

	before := time.Now()
	token, err := m.CreateAccess("u1", "", "", nil, nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	after := time.Now()

	claims, err := m.ParseAccess(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	gap := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if gap != 300*time.Second {
		t.Fatalf("expected exp = iat + 300s, got gap %v", gap)
	}
	iat := claims.IssuedAt.Time
	if iat.Before(before.Truncate(time.Second)) || iat.After(after.Add(time.Second)) {
		t.Fatalf("iat %v outside issue window [%v, %v]", iat, before, after)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := hsConfig()
	cfg.AccessTTL = time.Millisecond

	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("manager init: %v", err)
	}

	token, err := m.CreateAccess("u1", "", "", nil, nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, err := m.ParseAccess(token); err == nil {
		t.Fatal("expected expired token to fail parsing")
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	m1, err := NewManager(hsConfig())
	if err != nil {
		t.Fatalf("manager init: %v", err)
	}

	cfg2 := hsConfig()
	cfg2.PrivateKey = []byte("a completely different key")
	m2, err := NewManager(cfg2)
	if err != nil {
		t.Fatalf("manager init: %v", err)
	}

	token, err := m1.CreateAccess("u1", "", "", nil, nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := m2.ParseAccess(token); err == nil {
		t.Fatal("expected signature mismatch to fail parsing")
	}
}

func TestParseEnforcesIssuerAndAudience(t *testing.T) {
	cfg := hsConfig()
	cfg.Issuer = "issuer-a"
	cfg.Audience = "aud-a"

	issuerA, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("manager init: %v", err)
	}

	cfg.Issuer = "issuer-b"
	issuerB, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("manager init: %v", err)
	}

	token, err := issuerB.CreateAccess("u1", "", "", nil, nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := issuerA.ParseAccess(token); err == nil {
		t.Fatal("expected issuer mismatch to fail parsing")
	}
}

func TestLeewayToleratesRecentExpiry(t *testing.T) {
	cfg := hsConfig()
	cfg.AccessTTL = 50 * time.Millisecond
	cfg.Leeway = 30 * time.Second

	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("manager init: %v", err)
	}

	token, err := m.CreateAccess("u1", "", "", nil, nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	// Expired by wall clock, still inside the configured leeway.
	if _, err := m.ParseAccess(token); err != nil {
		t.Fatalf("expected leeway to tolerate recent expiry: %v", err)
	}
}

func TestDecodeUnverifiedRecoversExpiredClaims(t *testing.T) {
	cfg := hsConfig()
	cfg.AccessTTL = time.Millisecond

	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("manager init: %v", err)
	}

	token, err := m.CreateAccess("u1", "Alice", "alice@example.com", nil, nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, err := m.ParseAccess(token); err == nil {
		t.Fatal("precondition failed: token should be expired")
	}

	claims, err := m.DecodeUnverified(token)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if claims.UserID != "u1" {
		t.Fatalf("expected uid recovered from expired token, got %q", claims.UserID)
	}
}

func TestDecodeUnverifiedRejectsGarbage(t *testing.T) {
	m, err := NewManager(hsConfig())
	if err != nil {
		t.Fatalf("manager init: %v", err)
	}

	if _, err := m.DecodeUnverified("not.a.token"); err == nil {
		t.Fatal("expected garbage to fail decoding")
	}
	if _, err := m.DecodeUnverified(""); err == nil {
		t.Fatal("expected empty string to fail decoding")
	}
}

func TestEd25519RoundTrip(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("keygen failed: %v", err)
	}

	m, err := NewManager(Config{
		AccessTTL:     time.Minute,
		SigningMethod: MethodEd25519,
		PrivateKey:    priv,
		PublicKey:     pub,
	})
	if err != nil {
		t.Fatalf("manager init: %v", err)
	}

	token, err := m.CreateAccess("u1", "Alice", "alice@example.com", nil, nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	claims, err := m.ParseAccess(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != "u1" {
		t.Fatalf("unexpected uid %q", claims.UserID)
	}
}

func TestHS256RejectsAlgorithmConfusion(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("keygen failed: %v", err)
	}

	edManager, err := NewManager(Config{
		AccessTTL:     time.Minute,
		SigningMethod: MethodEd25519,
		PrivateKey:    priv,
		PublicKey:     pub,
	})
	if err != nil {
		t.Fatalf("manager init: %v", err)
	}

	hsManager, err := NewManager(hsConfig())
	if err != nil {
		t.Fatalf("manager init: %v", err)
	}

	token, err := edManager.CreateAccess("u1", "", "", nil, nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := hsManager.ParseAccess(token); err == nil {
		t.Fatal("expected cross-algorithm token to be rejected")
	}
}
