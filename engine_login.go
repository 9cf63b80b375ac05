package goFed

import (
	"context"

	"github.com/MrEthical07/goFed/identity"
)

// Login verifies a provider assertion and establishes a session. A user seen
// for the first time is registered transparently: first login and explicit
// registration return the same token pair.
//
// Every verification failure — unknown provider, bad signature, wrong
// audience, expired assertion — surfaces as [ErrIdentityVerificationFailed]
// with no further detail.
func (e *Engine) Login(ctx context.Context, provider identity.Provider, assertion string) (TokenPair, error) {
	if e == nil || e.users == nil {
		return TokenPair{}, ErrEngineNotReady
	}

	verifier, ok := e.verifiers.Lookup(provider)
	if !ok {
		e.metricInc(MetricLoginFailure)
		e.metricInc(MetricIdentityRejected)
		e.emitAudit(ctx, auditEventIdentityRejected, false, "", string(provider), ErrIdentityVerificationFailed, func() map[string]string {
			return map[string]string{
				"reason": "provider_not_registered",
			}
		})
		return TokenPair{}, ErrIdentityVerificationFailed
	}

	claim, err := verifier.Verify(ctx, assertion)
	if err != nil {
		e.metricInc(MetricLoginFailure)
		e.metricInc(MetricIdentityRejected)
		e.emitAudit(ctx, auditEventIdentityRejected, false, "", string(provider), ErrIdentityVerificationFailed, nil)
		return TokenPair{}, ErrIdentityVerificationFailed
	}

	user, found, err := e.users.FindByEmail(ctx, claim.Email)
	if err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, "", string(provider), err, func() map[string]string {
			return map[string]string{
				"reason": "store_lookup_failed",
			}
		})
		return TokenPair{}, err
	}

	if !found {
		pair, err := e.register(ctx, string(provider), claim)
		if err != nil {
			e.metricInc(MetricLoginFailure)
			return TokenPair{}, err
		}
		e.metricInc(MetricLoginSuccess)
		e.emitAudit(ctx, auditEventLoginSuccess, true, "", string(provider), nil, func() map[string]string {
			return map[string]string{
				"first_login": "true",
			}
		})
		return pair, nil
	}

	pair, err := e.issuePair(ctx, user)
	if err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, user.ID, string(provider), err, func() map[string]string {
			return map[string]string{
				"reason": "issue_pair_failed",
			}
		})
		return TokenPair{}, err
	}

	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLoginSuccess, true, user.ID, string(provider), nil, nil)

	return pair, nil
}

// Register creates an account from a verified claim and establishes the
// first session. The claim type carries only name and email, so a stale
// user ID or token timestamps can never leak into the new account.
func (e *Engine) Register(ctx context.Context, provider identity.Provider, claim identity.Claim) (TokenPair, error) {
	if e == nil || e.users == nil {
		return TokenPair{}, ErrEngineNotReady
	}
	return e.register(ctx, string(provider), claim)
}

func (e *Engine) register(ctx context.Context, provider string, claim identity.Claim) (TokenPair, error) {
	user, err := e.users.Create(ctx, claim.Name, claim.Email)
	if err != nil {
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", provider, err, func() map[string]string {
			return map[string]string{
				"reason": "store_create_failed",
			}
		})
		return TokenPair{}, err
	}

	pair, err := e.issuePair(ctx, user)
	if err != nil {
		e.emitAudit(ctx, auditEventRegisterFailure, false, user.ID, provider, err, func() map[string]string {
			return map[string]string{
				"reason": "issue_pair_failed",
			}
		})
		return TokenPair{}, err
	}

	e.metricInc(MetricRegisterSuccess)
	e.emitAudit(ctx, auditEventRegisterSuccess, true, user.ID, provider, nil, nil)

	return pair, nil
}
