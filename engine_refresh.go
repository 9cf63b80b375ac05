package goFed

import (
	"context"
	"errors"
)

// RefreshExchange trades an expired access token plus the current refresh
// token for a fresh pair.
//
// The access token is decoded WITHOUT verification: it is expected to be
// expired, and its only job is to name the user. Trust comes exclusively
// from the refresh token matching the single stored value. On success both
// tokens rotate; the presented refresh token is dead either way.
func (e *Engine) RefreshExchange(ctx context.Context, accessToken, refreshToken string) (TokenPair, error) {
	if e == nil || e.users == nil {
		return TokenPair{}, ErrEngineNotReady
	}

	if accessToken == "" || refreshToken == "" {
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefreshInvalid, false, "", "", ErrBadRequest, func() map[string]string {
			return map[string]string{
				"reason": "missing_values",
			}
		})
		return TokenPair{}, ErrBadRequest
	}

	claims, err := e.jwtManager.DecodeUnverified(accessToken)
	if err != nil || claims.UserID == "" {
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefreshInvalid, false, "", "", ErrBadRequest, func() map[string]string {
			return map[string]string{
				"reason": "undecodable_access_token",
			}
		})
		return TokenPair{}, ErrBadRequest
	}

	user, err := e.users.GetIfRefreshTokenMatches(ctx, claims.UserID, refreshToken)
	if err != nil {
		e.metricInc(MetricRefreshFailure)
		if errors.Is(err, ErrUserNotFound) {
			// Absent user and token mismatch are deliberately
			// indistinguishable.
			e.emitAudit(ctx, auditEventRefreshInvalid, false, claims.UserID, "", ErrRefreshInvalid, nil)
			return TokenPair{}, ErrRefreshInvalid
		}
		e.emitAudit(ctx, auditEventRefreshInvalid, false, claims.UserID, "", err, func() map[string]string {
			return map[string]string{
				"reason": "store_lookup_failed",
			}
		})
		return TokenPair{}, err
	}

	pair, err := e.issuePair(ctx, user)
	if err != nil {
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefreshInvalid, false, user.ID, "", err, func() map[string]string {
			return map[string]string{
				"reason": "issue_pair_failed",
			}
		})
		return TokenPair{}, err
	}

	e.metricInc(MetricRefreshSuccess)
	e.emitAudit(ctx, auditEventRefreshSuccess, true, user.ID, "", nil, nil)

	return pair, nil
}
