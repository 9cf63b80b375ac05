package goFed

import (
	"context"
	"errors"
	"time"
)

const (
	auditEventLoginSuccess       = "login_success"
	auditEventLoginFailure       = "login_failure"
	auditEventRegisterSuccess    = "register_success"
	auditEventRegisterFailure    = "register_failure"
	auditEventSilentLoginSuccess = "silent_login_success"
	auditEventSilentLoginFailure = "silent_login_failure"
	auditEventRefreshSuccess     = "refresh_success"
	auditEventRefreshInvalid     = "refresh_invalid"
	auditEventLogout             = "logout"
	auditEventIdentityRejected   = "identity_rejected"
)

// AuditErrorCode is the stable, non-leaking error label attached to audit
// events. Raw error text never reaches sinks.
type AuditErrorCode string

const (
	auditErrIdentityRejected AuditErrorCode = "identity_rejected"
	auditErrInvalidToken     AuditErrorCode = "invalid_token"
	auditErrRefreshInvalid   AuditErrorCode = "refresh_invalid"
	auditErrBadRequest       AuditErrorCode = "bad_request"
	auditErrUserNotFound     AuditErrorCode = "user_not_found"
	auditErrInternal         AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID string,
	provider string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		UserID:    userID,
		Provider:  provider,
		IP:        clientIPFromContext(ctx),
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrIdentityVerificationFailed):
		return auditErrIdentityRejected
	case errors.Is(err, ErrTokenInvalid):
		return auditErrInvalidToken
	case errors.Is(err, ErrRefreshInvalid):
		return auditErrRefreshInvalid
	case errors.Is(err, ErrBadRequest):
		return auditErrBadRequest
	case errors.Is(err, ErrUserNotFound):
		return auditErrUserNotFound
	default:
		return auditErrInternal
	}
}
