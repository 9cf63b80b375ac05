package goFed

import "context"

// TokenPair is the result of every successful session operation: a freshly
// signed access token and the newly rotated refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserRecord is the full account record returned by [UserStore]. RefreshToken
// holds the single active refresh value, empty when the user is logged out.
type UserRecord struct {
	ID           string
	Name         string
	Email        string
	RefreshToken string
	Permissions  []int
	Roles        []int
}

// AuthResult is returned by [Engine.Validate]. It contains the authenticated
// user's identity and the permission/role sets carried in the access token.
type AuthResult struct {
	UserID      string
	Name        string
	Email       string
	Permissions []int
	Roles       []int
}

// UserStore is the interface that callers must implement to integrate goFed
// with their user database. It covers identity lookup, first-login account
// creation, and refresh token persistence.
//
// FindByEmail reports absence through the found flag rather than an error:
// an absent user during login is an expected outcome, not a failure.
//
// SaveRefreshToken with an empty token clears the stored value. Concurrent
// saves are last-write-wins; the store never arbitrates between racing
// sessions.
//
// GetIfRefreshTokenMatches is the sole authorization check of the refresh
// exchange: it returns the user only when the presented token equals the
// stored one, and [ErrUserNotFound] otherwise.
type UserStore interface {
	GetByID(ctx context.Context, userID string) (UserRecord, error)
	FindByEmail(ctx context.Context, email string) (UserRecord, bool, error)
	Create(ctx context.Context, name, email string) (UserRecord, error)
	SaveRefreshToken(ctx context.Context, userID, token string) error
	GetIfRefreshTokenMatches(ctx context.Context, userID, token string) (UserRecord, error)
}
