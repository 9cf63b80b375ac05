// Package jwt manages access-token issuance and verification using configured signing keys
// and strict validation semantics suitable for low-latency authentication paths.
//
// [Manager.DecodeUnverified] is the one deliberate exception: it reads claims
// out of a token without checking signature or expiry, for flows whose trust
// anchor is elsewhere (the stored refresh token match).
package jwt
