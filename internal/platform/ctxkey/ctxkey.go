// Copyright (c) 2026 BoiBritto. All rights reserved.

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// # Safety
//
// It is used to store and retrieve per-request values (identity claim,
// resolved user, request ID, logger). Using a private, unexported type
// for keys prevents collisions with third-party packages that might also
// use context for storage.
package ctxkey

// key is an unexported type used for context keys to ensure type safety.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyClaim is the context key for the decoded identity claim
	// ([identity.Claim]) attached by the identity-only policy.
	KeyClaim key = "claim"

	// KeyUser is the context key for the resolved application user
	// ([user.User]) attached by the full policy.
	KeyUser key = "user"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"

	// KeyDebug is the context key for the development-mode flag that
	// controls whether error responses carry a debug block.
	KeyDebug key = "debug"
)
