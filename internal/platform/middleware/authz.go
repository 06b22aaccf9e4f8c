// Copyright (c) 2026 BoiBritto. All rights reserved.

package middleware

import (
	"context"
	"net/http"

	"github.com/SillyCatto/boibritto-sub001/internal/identity"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/constants"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/respond"
	"github.com/SillyCatto/boibritto-sub001/internal/user"
)

// # Request Authorization
//
// Two policies guard the API surface:
//
//   - AttachIdentity: proves the caller holds a valid credential. Used by the
//     auth endpoints, where an application user may not exist yet.
//   - VerifyUser: proves the credential AND resolves the registered
//     application user. Used by every resource route.
//
// A request denied by a policy never reaches the wrapped handler.

// TokenVerifier checks a raw Authorization header and returns the claims it
// carries. Every credential failure collapses into a single 401.
type TokenVerifier interface {
	Verify(ctx context.Context, authorizationHeader string) (*identity.Claim, error)
}

// UserResolver maps a verified identity subject to a registered user.
type UserResolver interface {
	ResolveBySubject(ctx context.Context, subject string) (*user.User, error)
}

// AttachIdentity verifies the bearer token and stores the verified claim in
// the request context. It does NOT require an application user to exist.
func AttachIdentity(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Bound the verification so a slow provider cannot hang the request
			verifyCtx, cancel := context.WithTimeout(request.Context(), constants.IdentityVerifyTimeout)
			defer cancel()

			// 2. Verify the credential
			claim, err := verifier.Verify(verifyCtx, request.Header.Get(constants.HeaderAuthorization))
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// 3. Attach the claim for downstream handlers
			ctx := identity.WithClaim(request.Context(), claim)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// VerifyUser verifies the bearer token and additionally resolves the
// registered application user, storing both in the request context.
func VerifyUser(verifier TokenVerifier, resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			verifyCtx, cancel := context.WithTimeout(request.Context(), constants.IdentityVerifyTimeout)
			defer cancel()

			// 1. Verify the credential first
			claim, err := verifier.Verify(verifyCtx, request.Header.Get(constants.HeaderAuthorization))
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// 2. Resolve the application user behind the subject
			appUser, err := resolver.ResolveBySubject(request.Context(), claim.Subject)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// 3. Attach both identity layers for downstream handlers
			ctx := identity.WithClaim(request.Context(), claim)
			ctx = user.WithUser(ctx, appUser)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
