package goFed

import "context"

// Logout clears the stored refresh token for the user named by the access
// token. Outstanding access tokens stay valid until they expire; only the
// refresh path dies immediately.
func (e *Engine) Logout(ctx context.Context, accessToken string) error {
	if e == nil || e.users == nil {
		return ErrEngineNotReady
	}

	claims, err := e.jwtManager.ParseAccess(accessToken)
	if err != nil {
		e.emitAudit(ctx, auditEventLogout, false, "", "", ErrTokenInvalid, func() map[string]string {
			return map[string]string{
				"reason": "invalid_access_token",
			}
		})
		return ErrTokenInvalid
	}

	if err := e.users.SaveRefreshToken(ctx, claims.UserID, ""); err != nil {
		e.emitAudit(ctx, auditEventLogout, false, claims.UserID, "", err, func() map[string]string {
			return map[string]string{
				"reason": "store_clear_failed",
			}
		})
		return err
	}

	e.metricInc(MetricLogout)
	e.emitAudit(ctx, auditEventLogout, true, claims.UserID, "", nil, nil)

	return nil
}
