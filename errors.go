package goFed

import "errors"

var (
	// ErrIdentityVerificationFailed covers every provider assertion failure:
	// unknown provider, bad signature, wrong audience, expired assertion.
	// Callers never learn which check rejected the assertion.
	ErrIdentityVerificationFailed = errors.New("identity verification failed")
	// ErrTokenInvalid is returned when an access token fails signature or
	// expiry verification.
	ErrTokenInvalid = errors.New("invalid access token")
	// ErrRefreshInvalid is returned when a presented refresh token does not
	// match the single stored value for the user.
	ErrRefreshInvalid = errors.New("invalid refresh token")
	// ErrBadRequest is returned when a token exchange request is missing
	// required values or the expired access token cannot be decoded.
	ErrBadRequest = errors.New("malformed token exchange request")
	// ErrUserNotFound is returned by store lookups for absent users.
	ErrUserNotFound = errors.New("user not found")
	// ErrEngineNotReady is returned when an Engine method is called on a
	// nil or partially constructed engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
