package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// GoogleConfig is the OAuth client registration used to verify Google ID
// tokens. IssuerURL is overridable for tests; production use leaves the
// default.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	IssuerURL    string
	Scopes       []string
}

// GoogleIssuer is the production Google OIDC issuer.
const GoogleIssuer = "https://accounts.google.com"

// GoogleVerifier verifies Google ID tokens against the provider's published
// signing keys, with the registered client ID as the expected audience.
type GoogleVerifier struct {
	provider     *oidc.Provider
	verifier     *oidc.IDTokenVerifier
	oauth2Config *oauth2.Config
}

// NewGoogleVerifier performs OIDC discovery against the issuer and prepares
// the ID token verifier. Discovery is network I/O, so construction takes a
// context and happens before the engine is built.
func NewGoogleVerifier(ctx context.Context, cfg GoogleConfig) (*GoogleVerifier, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("google: client id is required")
	}
	issuer := cfg.IssuerURL
	if issuer == "" {
		issuer = GoogleIssuer
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, err
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "email", "profile"}
	}

	return &GoogleVerifier{
		provider: provider,
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     provider.Endpoint(),
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
		},
	}, nil
}

// Provider returns [Google].
func (g *GoogleVerifier) Provider() Provider {
	return Google
}

// Verify checks the raw ID token's signature, issuer, audience, and expiry,
// then extracts the name and email claims. Any failure collapses to
// [ErrVerificationFailed].
func (g *GoogleVerifier) Verify(ctx context.Context, assertion string) (Claim, error) {
	if strings.TrimSpace(assertion) == "" {
		return Claim{}, ErrVerificationFailed
	}

	idToken, err := g.verifier.Verify(ctx, assertion)
	if err != nil {
		return Claim{}, ErrVerificationFailed
	}

	var raw struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := idToken.Claims(&raw); err != nil {
		return Claim{}, ErrVerificationFailed
	}
	if raw.Email == "" {
		return Claim{}, ErrVerificationFailed
	}

	return Claim{Name: raw.Name, Email: raw.Email}, nil
}

// AuthCodeURL returns the provider authorization URL for the given CSRF
// state. Useful for servers driving the full authorization-code flow.
func (g *GoogleVerifier) AuthCodeURL(state string) string {
	return g.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange swaps an authorization code for the raw ID token assertion that
// [GoogleVerifier.Verify] accepts.
func (g *GoogleVerifier) Exchange(ctx context.Context, code string) (string, error) {
	token, err := g.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return "", ErrVerificationFailed
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", ErrVerificationFailed
	}
	return rawIDToken, nil
}
