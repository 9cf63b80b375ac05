// Package middleware exposes the HTTP adapter for access-token enforcement
// built on top of goFed.Engine validation.
//
// [Guard] reads the Authorization header, calls Engine.Validate, and injects
// the validated identity into the request context.
//
// # What this package must NOT do
//
//   - Parse or create JWTs directly (delegates to Engine).
//   - Touch the user store (validation is stateless).
//   - Make authorization decisions beyond pass/reject from Engine.Validate.
package middleware
