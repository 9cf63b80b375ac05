// Package goFed provides a federated-identity session engine: short-lived JWT
// access tokens minted from verified identity-provider assertions, and rotating
// opaque refresh tokens with a single active value per user.
//
// The package is designed for concurrent server workloads: Engine methods are safe to call
// from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// goFed is the public surface. It exposes [Engine], [Builder], [Config], and value types
// (TokenPair, AuthResult, MetricsSnapshot, etc.). Token encoding lives in the jwt
// sub-package, provider verification in identity, and store adapters in store.
// Random token material generation lives under internal/ and is never exported.
//
// # What this package must NOT do
//
//   - Expose store clients or provider SDK types in its public API.
//   - Perform I/O outside of Engine methods (construction via Builder is allocation-only
//     until Build).
//   - Import any sub-package that re-imports goFed (no import cycles).
//
// # Performance contract
//
// Validate is the hot path. It must not allocate beyond the returned AuthResult and
// must complete without store round-trips. Login, SilentLogin, RefreshExchange, and
// Logout are allowed store round-trips per call.
package goFed
