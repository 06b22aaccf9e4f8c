// Copyright (c) 2026 BoiBritto. All rights reserved.

package identity_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SillyCatto/boibritto-sub001/internal/identity"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/apperr"
)

const testIssuer = "identity.boibritto.test"

// memoryClaimCache is an in-test ClaimCache double.
type memoryClaimCache struct {
	mu      sync.Mutex
	entries map[string]*identity.Claim
	sets    int
}

func newMemoryClaimCache() *memoryClaimCache {
	return &memoryClaimCache{entries: make(map[string]*identity.Claim)}
}

func (c *memoryClaimCache) Get(_ context.Context, tokenHash string) (*identity.Claim, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[tokenHash], nil
}

func (c *memoryClaimCache) Set(_ context.Context, tokenHash string, claim *identity.Claim, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[tokenHash] = claim
	c.sets++
	return nil
}

// newTestVerifier generates a throwaway RSA key pair, writes the public
// half to disk, and returns a verifier plus a token-minting function.
func newTestVerifier(t *testing.T, cache identity.ClaimCache) (*identity.Verifier, func(subject, issuer string, expiresIn time.Duration) string) {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	publicDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)

	keyPath := filepath.Join(t.TempDir(), "provider.pem")
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})
	require.NoError(t, os.WriteFile(keyPath, keyPEM, 0o600))

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	verifier, err := identity.NewVerifier(keyPath, testIssuer, cache, logger)
	require.NoError(t, err)

	mint := func(subject, issuer string, expiresIn time.Duration) string {
		claims := jwt.MapClaims{
			"sub":   subject,
			"iss":   issuer,
			"email": subject + "@example.com",
			"name":  "Test Reader",
			"iat":   time.Now().Unix(),
			"exp":   time.Now().Add(expiresIn).Unix(),
		}
		token, signErr := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(privateKey)
		require.NoError(t, signErr)
		return token
	}

	return verifier, mint
}

/*
TestVerifier_ValidToken verifies the happy path: a provider-signed bearer
token yields a decoded claim.
*/
func TestVerifier_ValidToken(t *testing.T) {
	verifier, mint := newTestVerifier(t, nil)
	token := mint("uid-123", testIssuer, time.Hour)

	claim, err := verifier.Verify(context.Background(), "Bearer "+token)

	require.NoError(t, err)
	assert.Equal(t, "uid-123", claim.Subject)
	assert.Equal(t, "uid-123@example.com", claim.Email)
	assert.Equal(t, "Test Reader", claim.Name)
}

/*
TestVerifier_FailuresCollapse verifies that every bad-credential sub-case
produces the same UNAUTHENTICATED outcome.
*/
func TestVerifier_FailuresCollapse(t *testing.T) {
	verifier, mint := newTestVerifier(t, nil)

	tests := []struct {
		name   string
		header string
	}{
		{"missing_header", ""},
		{"wrong_scheme", "Basic dXNlcjpwYXNz"},
		{"bare_token_no_scheme", mint("uid-123", testIssuer, time.Hour)},
		{"garbage_token", "Bearer not-a-jwt"},
		{"expired_token", "Bearer " + mint("uid-123", testIssuer, -time.Minute)},
		{"wrong_issuer", "Bearer " + mint("uid-123", "evil.example.com", time.Hour)},
		{"empty_subject", "Bearer " + mint("", testIssuer, time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim, err := verifier.Verify(context.Background(), tt.header)

			assert.Nil(t, claim)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "UNAUTHENTICATED", ae.Code)
			assert.Equal(t, 401, ae.HTTPStatus)
		})
	}
}

/*
TestVerifier_ClaimCache verifies that a second verification of the same
token is served from the cache.
*/
func TestVerifier_ClaimCache(t *testing.T) {
	cache := newMemoryClaimCache()
	verifier, mint := newTestVerifier(t, cache)
	token := mint("uid-456", testIssuer, time.Hour)

	first, err := verifier.Verify(context.Background(), "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	second, err := verifier.Verify(context.Background(), "Bearer "+token)
	require.NoError(t, err)

	// Cache hit: no second Set, same decoded identity.
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, first.Subject, second.Subject)
}
