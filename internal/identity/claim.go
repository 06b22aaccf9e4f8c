// Copyright (c) 2026 BoiBritto. All rights reserved.

// Package identity implements the token-verification boundary against the
// external identity provider.
//
// # Architecture
//
// BoiBritto never stores or checks passwords. Callers present an opaque
// bearer token minted by the identity provider; this package verifies the
// token's signature and yields a decoded [Claim]. Everything downstream
// (profile resolution, ownership checks) works from that claim.
package identity

import (
	"context"

	"github.com/SillyCatto/boibritto-sub001/internal/platform/ctxkey"
)

// Claim is the decoded identity asserted by a verified bearer token.
//
// # Lifetime
//
// A Claim is ephemeral: it is produced per-request by the [Verifier] and
// exists only for the duration of request handling. It is never persisted.
type Claim struct {
	// Subject is the stable, provider-issued subject identifier. It is the
	// immutable binding key between an identity and an application user.
	Subject string `json:"subject"`

	// Email is the identity's email address as attested by the provider.
	Email string `json:"email"`

	// Name is the identity's display name as attested by the provider.
	Name string `json:"name"`
}

// WithClaim returns a new context carrying the decoded claim.
//
// Only the identity-only authorization policy attaches a raw claim; routes
// behind the full policy receive a resolved application user instead.
func WithClaim(ctx context.Context, claim *Claim) context.Context {
	return context.WithValue(ctx, ctxkey.KeyClaim, claim)
}

// FromContext retrieves the decoded claim from the context.
// Returns nil if the request did not pass the identity-only policy.
func FromContext(ctx context.Context) *Claim {
	claim, ok := ctx.Value(ctxkey.KeyClaim).(*Claim)
	if !ok {
		return nil
	}
	return claim
}
