// Copyright (c) 2026 BoiBritto. All rights reserved.

package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SillyCatto/boibritto-sub001/internal/identity"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/apperr"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/middleware"
	"github.com/SillyCatto/boibritto-sub001/internal/user"
)

// # Test Doubles

type stubVerifier struct {
	claim *identity.Claim
	err   error
	calls int
}

func (verifier *stubVerifier) Verify(_ context.Context, _ string) (*identity.Claim, error) {
	verifier.calls++
	if verifier.err != nil {
		return nil, verifier.err
	}
	return verifier.claim, nil
}

type stubResolver struct {
	user  *user.User
	err   error
	calls int
}

func (resolver *stubResolver) ResolveBySubject(_ context.Context, _ string) (*user.User, error) {
	resolver.calls++
	if resolver.err != nil {
		return nil, resolver.err
	}
	return resolver.user, nil
}

// # Tests

func TestAttachIdentity(t *testing.T) {
	t.Run("valid credential reaches handler with claim attached", func(t *testing.T) {
		verifier := &stubVerifier{claim: &identity.Claim{Subject: "firebase-uid-1", Email: "a@b.c"}}

		var seenClaim *identity.Claim
		handler := middleware.AttachIdentity(verifier)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			seenClaim = identity.FromContext(request.Context())
			writer.WriteHeader(http.StatusOK)
		}))

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", nil)
		request.Header.Set("Authorization", "Bearer some-token")

		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, seenClaim)
		assert.Equal(t, "firebase-uid-1", seenClaim.Subject)
	})

	t.Run("invalid credential never executes handler", func(t *testing.T) {
		verifier := &stubVerifier{err: apperr.Unauthenticated("Authentication required")}

		handlerRan := false
		handler := middleware.AttachIdentity(verifier)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			handlerRan = true
		}))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", nil))

		assert.False(t, handlerRan, "wrapped handler must not run on a denied request")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		var envelope map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, false, envelope["success"])
		assert.NotEmpty(t, envelope["message"])
	})
}

func TestVerifyUser(t *testing.T) {
	t.Run("registered user reaches handler with both layers attached", func(t *testing.T) {
		verifier := &stubVerifier{claim: &identity.Claim{Subject: "firebase-uid-1"}}
		resolver := &stubResolver{user: &user.User{ID: "user-1", Username: "reader_one"}}

		var seenUser *user.User
		handler := middleware.VerifyUser(verifier, resolver)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			seenUser = user.FromContext(request.Context())
			writer.WriteHeader(http.StatusOK)
		}))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/reading-list", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, seenUser)
		assert.Equal(t, "user-1", seenUser.ID)
	})

	t.Run("unregistered subject is rejected with distinct code", func(t *testing.T) {
		verifier := &stubVerifier{claim: &identity.Claim{Subject: "firebase-uid-unknown"}}
		resolver := &stubResolver{err: apperr.UserNotRegistered()}

		handlerRan := false
		handler := middleware.VerifyUser(verifier, resolver)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			handlerRan = true
		}))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/reading-list", nil))

		assert.False(t, handlerRan)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("credential failure skips resolution entirely", func(t *testing.T) {
		verifier := &stubVerifier{err: apperr.Unauthenticated("Authentication required")}
		resolver := &stubResolver{user: &user.User{ID: "user-1"}}

		handler := middleware.VerifyUser(verifier, resolver)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/reading-list", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Zero(t, resolver.calls, "resolver must not be consulted for an unproven credential")
	})
}
