package goFed

import "context"

// SilentLogin re-establishes a session from a still-valid access token,
// rotating both tokens. The store is consulted so a deleted account cannot
// silently resurrect: [ErrUserNotFound] propagates to the caller here,
// unlike during Login.
func (e *Engine) SilentLogin(ctx context.Context, accessToken string) (TokenPair, error) {
	if e == nil || e.users == nil {
		return TokenPair{}, ErrEngineNotReady
	}

	claims, err := e.jwtManager.ParseAccess(accessToken)
	if err != nil {
		e.metricInc(MetricSilentLoginFailure)
		e.emitAudit(ctx, auditEventSilentLoginFailure, false, "", "", ErrTokenInvalid, func() map[string]string {
			return map[string]string{
				"reason": "invalid_access_token",
			}
		})
		return TokenPair{}, ErrTokenInvalid
	}

	user, err := e.users.GetByID(ctx, claims.UserID)
	if err != nil {
		e.metricInc(MetricSilentLoginFailure)
		e.emitAudit(ctx, auditEventSilentLoginFailure, false, claims.UserID, "", err, func() map[string]string {
			return map[string]string{
				"reason": "store_lookup_failed",
			}
		})
		return TokenPair{}, err
	}

	pair, err := e.issuePair(ctx, user)
	if err != nil {
		e.metricInc(MetricSilentLoginFailure)
		e.emitAudit(ctx, auditEventSilentLoginFailure, false, user.ID, "", err, func() map[string]string {
			return map[string]string{
				"reason": "issue_pair_failed",
			}
		})
		return TokenPair{}, err
	}

	e.metricInc(MetricSilentLoginSuccess)
	e.emitAudit(ctx, auditEventSilentLoginSuccess, true, user.ID, "", nil, nil)

	return pair, nil
}
