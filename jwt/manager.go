package jwt

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SigningMethod selects the signature algorithm for access tokens.
type SigningMethod string

const (
	// MethodHS256 signs with a shared HMAC secret.
	MethodHS256 SigningMethod = "hs256"
	// MethodEd25519 signs with an Ed25519 key pair.
	MethodEd25519 SigningMethod = "ed25519"
)

// Config holds the token codec parameters. AccessTTL bounds every issued
// token: expiry is always issue time plus AccessTTL.
type Config struct {
	AccessTTL     time.Duration
	SigningMethod SigningMethod
	PrivateKey    []byte
	PublicKey     []byte
	Issuer        string
	Audience      string
	Leeway        time.Duration
}

// Manager creates, verifies, and decodes access tokens.
type Manager struct {
	config Config
}

// AccessClaims is the payload of an access token: the user's identity plus
// the standard registered claims (iat, exp, iss, aud).
type AccessClaims struct {
	UserID      string `json:"uid"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Permissions []int  `json:"perms,omitempty"`
	Roles       []int  `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// NewManager validates the codec configuration. A missing signing key is a
// construction-time error; nothing here is recoverable at request time.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.AccessTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	switch cfg.SigningMethod {
	case MethodHS256:
		if len(cfg.PrivateKey) == 0 {
			return nil, errors.New("hs256 requires private key")
		}
	case MethodEd25519:
		if len(cfg.PrivateKey) == 0 {
			return nil, errors.New("ed25519 requires private key")
		}
		if _, err := parseEdPrivateKey(cfg.PrivateKey); err != nil {
			return nil, err
		}
		if len(cfg.PublicKey) == 0 {
			return nil, errors.New("ed25519 requires public key")
		}
		if _, err := parseEdPublicKey(cfg.PublicKey); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("unsupported signing method")
	}

	return &Manager{config: cfg}, nil
}

// CreateAccess signs a new access token for the user. Issue time is now;
// expiry is now plus the configured AccessTTL.
func (j *Manager) CreateAccess(userID, name, email string, permissions, roles []int) (string, error) {
	now := time.Now()

	claims := AccessClaims{
		UserID:      userID,
		Name:        name,
		Email:       email,
		Permissions: permissions,
		Roles:       roles,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.config.AccessTTL)),
			Issuer:    j.config.Issuer,
		},
	}
	if j.config.Audience != "" {
		claims.Audience = jwt.ClaimStrings{j.config.Audience}
	}

	token := jwt.NewWithClaims(j.getMethod(), claims)

	signKey, err := j.getSignKey()
	if err != nil {
		return "", err
	}

	return token.SignedString(signKey)
}

// ParseAccess verifies the token's signature and registered claims and
// returns its payload. Expired or tampered tokens fail here.
func (j *Manager) ParseAccess(tokenStr string) (*AccessClaims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{j.getMethod().Alg()}),
		jwt.WithExpirationRequired(),
	}
	if j.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(j.config.Leeway))
	}
	if j.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(j.config.Issuer))
	}
	if j.config.Audience != "" {
		options = append(options, jwt.WithAudience(j.config.Audience))
	}

	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(tokenStr, &AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != j.getMethod().Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return j.getVerifyKey()
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// DecodeUnverified extracts the claims of a token WITHOUT verifying its
// signature or expiry. The refresh exchange relies on it to recover the user
// ID from an expired access token; trust comes from the stored refresh token
// match, never from this decode.
func (j *Manager) DecodeUnverified(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (j *Manager) getMethod() jwt.SigningMethod {
	switch j.config.SigningMethod {
	case MethodEd25519:
		return jwt.SigningMethodEdDSA
	default:
		return jwt.SigningMethodHS256
	}
}

func (j *Manager) getSignKey() (interface{}, error) {
	switch j.config.SigningMethod {
	case MethodEd25519:
		return parseEdPrivateKey(j.config.PrivateKey)
	default:
		return j.config.PrivateKey, nil
	}
}

func (j *Manager) getVerifyKey() (interface{}, error) {
	switch j.config.SigningMethod {
	case MethodEd25519:
		return parseEdPublicKey(j.config.PublicKey)
	default:
		return j.config.PrivateKey, nil
	}
}

func parseEdPrivateKey(key []byte) (ed25519.PrivateKey, error) {
	if len(key) == ed25519.PrivateKeySize {
		return ed25519.PrivateKey(key), nil
	}
	parsed, err := jwt.ParseEdPrivateKeyFromPEM(key)
	if err != nil {
		return nil, errors.New("invalid ed25519 private key")
	}
	edKey, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("invalid ed25519 private key type")
	}
	return edKey, nil
}

func parseEdPublicKey(key []byte) (ed25519.PublicKey, error) {
	if len(key) == ed25519.PublicKeySize {
		return ed25519.PublicKey(key), nil
	}
	parsed, err := jwt.ParseEdPublicKeyFromPEM(key)
	if err != nil {
		return nil, errors.New("invalid ed25519 public key")
	}
	edKey, ok := parsed.(ed25519.PublicKey)
	if !ok {
		return nil, errors.New("invalid ed25519 public key type")
	}
	return edKey, nil
}
