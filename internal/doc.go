// Package internal contains helper utilities that are intentionally private
// to goFed, currently secure random generation for refresh tokens.
//
// # What this package must NOT do
//
//   - Export types that appear in the public goFed API.
//   - Be imported by any package outside the goFed module.
package internal
