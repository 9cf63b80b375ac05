// Package store ships two ready-made [goFed.UserStore] implementations:
// a Redis-backed adapter for production and an in-memory adapter for tests
// and examples.
//
// The Redis adapter keeps refresh-token operations atomic with Lua scripts,
// so a rotation can never observe a half-written record. Both adapters obey
// the store contract exactly: one refresh token per user, last write wins,
// and GetIfRefreshTokenMatches as the only comparison point.
package store
