// Package identity verifies federated identity-provider assertions and
// reduces them to the minimal claim the engine needs: a display name and a
// verified email address.
//
// Verifiers are registered per provider in a [Registry]; the engine never
// switches on provider names itself. Every verification failure is reported
// through [ErrVerificationFailed] so callers cannot distinguish a forged
// assertion from an expired one.
package identity
