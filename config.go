package goFed

import (
	"errors"
	"time"
)

// Config holds every tunable of the engine. Instances are cloned at Build
// time and treated as immutable afterwards.
type Config struct {
	JWT      JWTConfig
	Identity IdentityConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig configures the access token codec.
type JWTConfig struct {
	AccessTTL     time.Duration
	SigningMethod string // "hs256" (default), "ed25519" optional
	PrivateKey    []byte
	PublicKey     []byte
	Issuer        string
	Audience      string
	Leeway        time.Duration
}

/*
====================================
IDENTITY CONFIG
====================================
*/

// IdentityConfig carries provider client registrations. Verifiers themselves
// are constructed by the caller and attached through [Builder.WithVerifier];
// this block only validates that registrations look sane.
type IdentityConfig struct {
	Google GoogleClientConfig
}

// GoogleClientConfig is the OAuth client registration for the Google
// identity provider.
type GoogleClientConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	IssuerURL    string
}

// AuditConfig controls the background audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the in-process counters and the optional validate
// latency histogram.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

func defaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTTL:     5 * time.Minute,
			SigningMethod: "hs256",
		},
		Identity: IdentityConfig{
			Google: GoogleClientConfig{
				IssuerURL: "https://accounts.google.com",
			},
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

// DefaultConfig returns the engine defaults: 5 minute access tokens signed
// with hs256, audit and metrics disabled.
func DefaultConfig() Config {
	return defaultConfig()
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.JWT.PrivateKey = cloneBytes(cfg.JWT.PrivateKey)
	out.JWT.PublicKey = cloneBytes(cfg.JWT.PublicKey)
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate checks the configuration for fatal errors. [Builder.Build] calls
// it and refuses to construct an engine from an invalid config.
func (c *Config) Validate() error {
	// JWT
	if c.JWT.AccessTTL <= 0 {
		return errors.New("JWT AccessTTL must be > 0")
	}
	if c.JWT.Leeway < 0 || c.JWT.Leeway > 2*time.Minute {
		return errors.New("JWT Leeway must be between 0 and 2m")
	}

	if c.JWT.SigningMethod != "ed25519" && c.JWT.SigningMethod != "hs256" {
		return errors.New("unsupported JWT signing method")
	}

	if c.JWT.SigningMethod == "ed25519" && len(c.JWT.PrivateKey) == 0 {
		return errors.New("ed25519 requires PrivateKey")
	}
	if c.JWT.SigningMethod == "ed25519" && len(c.JWT.PublicKey) == 0 {
		return errors.New("ed25519 requires PublicKey")
	}
	if c.JWT.SigningMethod == "hs256" && len(c.JWT.PrivateKey) == 0 {
		return errors.New("hs256 requires PrivateKey")
	}

	// Identity
	if c.Identity.Google.ClientID != "" && c.Identity.Google.IssuerURL == "" {
		return errors.New("Google ClientID requires IssuerURL")
	}

	// Audit
	if c.Audit.Enabled {
		if c.Audit.BufferSize <= 0 {
			return errors.New("Audit BufferSize must be > 0 when audit is enabled")
		}
	}

	return nil
}
