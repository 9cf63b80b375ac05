package goFed

import (
	"errors"

	"github.com/MrEthical07/goFed/identity"
	"github.com/MrEthical07/goFed/jwt"
)

// Builder assembles an [Engine]. Construction is allocation-only; nothing
// here performs I/O. Provider verifiers that need network discovery (such as
// [identity.NewGoogleVerifier]) are constructed by the caller beforehand and
// attached with [Builder.WithVerifier].
type Builder struct {
	config Config

	users     UserStore
	verifiers []identity.Verifier
	auditSink AuditSink

	built bool
}

// New returns a builder preloaded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the configuration. The config is cloned; later
// mutation of cfg does not affect the builder.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithUserStore attaches the user database adapter. Required.
func (b *Builder) WithUserStore(users UserStore) *Builder {
	b.users = users
	return b
}

// WithVerifier registers an identity provider verifier. At least one is
// required for [Engine.Login] to succeed; the other operations work without
// any.
func (b *Builder) WithVerifier(v identity.Verifier) *Builder {
	b.verifiers = append(b.verifiers, v)
	return b
}

// WithAuditSink attaches the audit event sink. Only consulted when
// Config.Audit.Enabled is set.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles metric counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the validate latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and constructs the engine. Any
// configuration problem — including a missing signing key — is fatal here,
// never deferred to request time.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.users == nil {
		return nil, errors.New("user store required")
	}

	registry := identity.NewRegistry()
	for _, v := range b.verifiers {
		if err := registry.Register(v); err != nil {
			return nil, err
		}
	}

	jm, err := jwt.NewManager(jwt.Config{
		AccessTTL:     cfg.JWT.AccessTTL,
		SigningMethod: jwt.SigningMethod(cfg.JWT.SigningMethod),
		PrivateKey:    cloneBytes(cfg.JWT.PrivateKey),
		PublicKey:     cloneBytes(cfg.JWT.PublicKey),
		Issuer:        cfg.JWT.Issuer,
		Audience:      cfg.JWT.Audience,
		Leeway:        cfg.JWT.Leeway,
	})
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config:     cfg,
		verifiers:  registry,
		jwtManager: jm,
		users:      b.users,
	}
	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	b.built = true

	return engine, nil
}
