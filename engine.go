package goFed

import (
	"context"
	"log"
	"time"

	"github.com/MrEthical07/goFed/identity"
	"github.com/MrEthical07/goFed/internal"
	"github.com/MrEthical07/goFed/jwt"
)

// Engine orchestrates the token lifecycle: provider login, silent login,
// refresh exchange, and logout. Construct one through [Builder.Build]; all
// methods are safe for concurrent use afterwards.
type Engine struct {
	config     Config
	verifiers  *identity.Registry
	jwtManager *jwt.Manager
	users      UserStore
	audit      *auditDispatcher
	metrics    *Metrics
}

// Close flushes the audit dispatcher. The engine must not be used after.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped reports audit events discarded under backpressure.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a deep copy of all engine metrics.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// Validate verifies an access token and returns the identity it carries.
// This is the stateless hot path: no store round-trip, no rotation. The
// context is accepted for interface symmetry with the stateful operations.
func (e *Engine) Validate(_ context.Context, accessToken string) (*AuthResult, error) {
	if e == nil || e.jwtManager == nil {
		return nil, ErrEngineNotReady
	}
	if e.metrics != nil && e.metrics.LatencyEnabled() {
		start := time.Now()
		defer e.metrics.Observe(MetricValidateLatency, time.Since(start))
	}

	claims, err := e.jwtManager.ParseAccess(accessToken)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	return resultFromClaims(claims), nil
}

func resultFromClaims(claims *jwt.AccessClaims) *AuthResult {
	return &AuthResult{
		UserID:      claims.UserID,
		Name:        claims.Name,
		Email:       claims.Email,
		Permissions: claims.Permissions,
		Roles:       claims.Roles,
	}
}

// issuePair mints a fresh access token, rotates the refresh token, and
// persists the new refresh value. Persistence failure means no pair: a
// token the store never saw must not reach the caller.
func (e *Engine) issuePair(ctx context.Context, user UserRecord) (TokenPair, error) {
	access, err := e.jwtManager.CreateAccess(user.ID, user.Name, user.Email, user.Permissions, user.Roles)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := internal.NewRefreshToken()
	if err != nil {
		return TokenPair{}, err
	}

	if err := e.users.SaveRefreshToken(ctx, user.ID, refresh); err != nil {
		log.Print("goFed: refresh token save failed during issuance")
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
