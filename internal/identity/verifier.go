// Copyright (c) 2026 BoiBritto. All rights reserved.

package identity

import (
	"context"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SillyCatto/boibritto-sub001/internal/platform/apperr"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/constants"
)

// ClaimCache is the volatile store for already-verified claims.
//
// # Why an interface?
//
// The canonical implementation is Redis ([RedisClaimCache]), but the
// verifier must keep working when the cache is down, and unit tests must
// not require a Redis instance.
type ClaimCache interface {
	// Get returns the cached claim for a token hash, or (nil, nil) on a miss.
	Get(ctx context.Context, tokenHash string) (*Claim, error)

	// Set stores a verified claim under the token hash for the given TTL.
	Set(ctx context.Context, tokenHash string, claim *Claim, ttl time.Duration) error
}

// providerClaims is the JWT payload shape the identity provider signs.
type providerClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`
	Name  string `json:"name"`
}

// Verifier validates opaque bearer credentials against the identity
// provider's RS256 signing key.
//
// # Failure Collapsing
//
// Every verification failure — absent header, wrong scheme, malformed
// token, expired token, signature mismatch, unexpected issuer — collapses
// to a single UNAUTHENTICATED outcome. The concrete sub-case is kept in
// the error's cause for server-side logging and is never surfaced to the
// caller in a production configuration.
type Verifier struct {
	publicKey *rsa.PublicKey
	issuer    string
	cache     ClaimCache
	logger    *slog.Logger
}

// NewVerifier constructs a [Verifier] from the provider's PEM public key.
//
// # Parameters
//   - publicKeyPath: Filesystem path to the PEM-encoded RSA public key.
//   - issuer: Expected 'iss' claim; tokens from other issuers are rejected.
//   - cache: Verified-claim cache, may be nil to disable caching.
//   - logger: Structured logger for verification events.
func NewVerifier(publicKeyPath, issuer string, cache ClaimCache, logger *slog.Logger) (*Verifier, error) {
	keyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("identity: failed to read provider public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(keyData)
	if err != nil {
		return nil, fmt.Errorf("identity: failed to parse provider public key: %w", err)
	}

	return &Verifier{
		publicKey: publicKey,
		issuer:    issuer,
		cache:     cache,
		logger:    logger,
	}, nil
}

// Verify validates a raw Authorization header value and returns the
// decoded claim.
//
// # Flow
//
//  1. Extract the credential from the 'Bearer <token>' scheme.
//  2. Consult the claim cache by SHA-256 of the token.
//  3. On a miss, verify the token signature, issuer, and expiry.
//  4. Cache the verified claim for hot traffic.
//
// The whole call is bounded by [constants.IdentityVerifyTimeout] so a
// slow cache can never hang the request.
func (verifier *Verifier) Verify(ctx context.Context, authorizationHeader string) (*Claim, error) {
	// ── 1. Bearer Scheme Extraction ───────────────────────────────────────

	token, err := extractBearer(authorizationHeader)
	if err != nil {
		return nil, err
	}

	verifyCtx, cancel := context.WithTimeout(ctx, constants.IdentityVerifyTimeout)
	defer cancel()

	// ── 2. Claim Cache Lookup ─────────────────────────────────────────────

	tokenHash := hashToken(token)
	if verifier.cache != nil {
		cached, cacheErr := verifier.cache.Get(verifyCtx, tokenHash)
		if cacheErr != nil {
			// A broken cache degrades to direct verification; it never
			// fails the request.
			verifier.logger.WarnContext(ctx, "claim_cache_read_failed", slog.Any("error", cacheErr))
		}
		if cached != nil {
			return cached, nil
		}
	}

	// ── 3. Signature Verification ─────────────────────────────────────────

	claim, remaining, err := verifier.decode(token)
	if err != nil {
		verifier.logger.InfoContext(ctx, "token_verification_failed", slog.Any("error", err))
		unauthenticated := apperr.Unauthenticated("Invalid or expired token")
		unauthenticated.Cause = err
		return nil, unauthenticated
	}

	// ── 4. Cache Population ───────────────────────────────────────────────

	if verifier.cache != nil {
		ttl := constants.ClaimCacheTTL
		if remaining < ttl {
			ttl = remaining
		}
		if ttl > 0 {
			if cacheErr := verifier.cache.Set(verifyCtx, tokenHash, claim, ttl); cacheErr != nil {
				verifier.logger.WarnContext(ctx, "claim_cache_write_failed", slog.Any("error", cacheErr))
			}
		}
	}

	return claim, nil
}

// decode parses and validates the token, returning the claim and the
// remaining token lifetime.
func (verifier *Verifier) decode(token string) (*Claim, time.Duration, error) {
	parsed, err := jwt.ParseWithClaims(token, &providerClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("identity: unexpected signing method: %v", t.Header["alg"])
		}
		return verifier.publicKey, nil
	}, jwt.WithIssuer(verifier.issuer), jwt.WithExpirationRequired())

	if err != nil {
		return nil, 0, fmt.Errorf("identity: invalid token: %w", err)
	}

	payload, ok := parsed.Claims.(*providerClaims)
	if !ok || !parsed.Valid {
		return nil, 0, fmt.Errorf("identity: invalid token claims")
	}

	if payload.Subject == "" {
		return nil, 0, fmt.Errorf("identity: token missing subject")
	}

	remaining := time.Until(payload.ExpiresAt.Time)

	return &Claim{
		Subject: payload.Subject,
		Email:   payload.Email,
		Name:    payload.Name,
	}, remaining, nil
}

// extractBearer pulls the credential out of an Authorization header value.
func extractBearer(header string) (string, error) {
	if header == "" {
		return "", apperr.Unauthenticated("Authorization header required")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", apperr.Unauthenticated("Invalid authorization format")
	}

	return parts[1], nil
}

// hashToken derives the cache key for a token.
//
// Raw tokens must never be stored; a SHA-256 digest keeps the cache key
// stable without keeping the credential itself.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
