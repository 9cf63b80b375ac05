package goFed

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// fedEnv holds raw env values for engine configuration.
type fedEnv struct {
	AccessTTL          time.Duration `env:"GOFED_JWT_ACCESS_TTL"      envDefault:"5m"`
	SigningMethod      string        `env:"GOFED_JWT_SIGNING_METHOD"  envDefault:"hs256"`
	SigningKey         string        `env:"GOFED_JWT_SIGNING_KEY"`
	PublicKey          string        `env:"GOFED_JWT_PUBLIC_KEY"`
	Issuer             string        `env:"GOFED_JWT_ISSUER"`
	Audience           string        `env:"GOFED_JWT_AUDIENCE"`
	Leeway             time.Duration `env:"GOFED_JWT_LEEWAY"          envDefault:"0s"`
	GoogleClientID     string        `env:"GOFED_GOOGLE_CLIENT_ID"`
	GoogleClientSecret string        `env:"GOFED_GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string        `env:"GOFED_GOOGLE_REDIRECT_URL"`
	GoogleIssuerURL    string        `env:"GOFED_GOOGLE_ISSUER_URL"   envDefault:"https://accounts.google.com"`
	AuditEnabled       bool          `env:"GOFED_AUDIT_ENABLED"       envDefault:"false"`
	AuditBufferSize    int           `env:"GOFED_AUDIT_BUFFER_SIZE"   envDefault:"1024"`
	MetricsEnabled     bool          `env:"GOFED_METRICS_ENABLED"     envDefault:"false"`
	LatencyHistograms  bool          `env:"GOFED_METRICS_LATENCY"     envDefault:"false"`
}

// ConfigFromEnv loads engine configuration from GOFED_* environment
// variables on top of [DefaultConfig]. The returned config still goes
// through [Config.Validate] at Build, so a missing signing key surfaces
// there rather than here.
func ConfigFromEnv() (Config, error) {
	var raw fedEnv
	if err := env.Parse(&raw); err != nil {
		return Config{}, err
	}

	cfg := defaultConfig()
	cfg.JWT.AccessTTL = raw.AccessTTL
	cfg.JWT.SigningMethod = raw.SigningMethod
	cfg.JWT.PrivateKey = []byte(raw.SigningKey)
	if raw.PublicKey != "" {
		cfg.JWT.PublicKey = []byte(raw.PublicKey)
	}
	cfg.JWT.Issuer = raw.Issuer
	cfg.JWT.Audience = raw.Audience
	cfg.JWT.Leeway = raw.Leeway
	cfg.Identity.Google = GoogleClientConfig{
		ClientID:     raw.GoogleClientID,
		ClientSecret: raw.GoogleClientSecret,
		RedirectURL:  raw.GoogleRedirectURL,
		IssuerURL:    raw.GoogleIssuerURL,
	}
	cfg.Audit.Enabled = raw.AuditEnabled
	cfg.Audit.BufferSize = raw.AuditBufferSize
	cfg.Metrics.Enabled = raw.MetricsEnabled
	cfg.Metrics.EnableLatencyHistograms = raw.LatencyHistograms

	return cfg, nil
}
