package internal

import (
	"crypto/rand"
	"encoding/base64"
)

const refreshTokenSize = 32

// NewRefreshToken returns a fresh opaque refresh token: 32 bytes of
// cryptographic randomness, base64url encoded without padding. The token
// carries no structure; it is only ever compared byte-for-byte against the
// stored value.
func NewRefreshToken() (string, error) {
	var raw [refreshTokenSize]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw[:]), nil
}
