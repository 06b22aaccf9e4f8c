// Copyright (c) 2026 BoiBritto. All rights reserved.

package user

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SillyCatto/boibritto-sub001/internal/identity"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/apperr"
)

// # Test Doubles

// memoryRepository is an in-memory Repository backing the service tests.
type memoryRepository struct {
	bySubject  map[string]*User
	byUsername map[string]*User
	byID       map[string]*User
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		bySubject:  make(map[string]*User),
		byUsername: make(map[string]*User),
		byID:       make(map[string]*User),
	}
}

func (repo *memoryRepository) FindBySubject(_ context.Context, subject string) (*User, error) {
	if u, ok := repo.bySubject[subject]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryRepository) FindByID(_ context.Context, id string) (*User, error) {
	if u, ok := repo.byID[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	if u, ok := repo.byUsername[username]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryRepository) Create(_ context.Context, u *User) error {
	if _, exists := repo.bySubject[u.Subject]; exists {
		return apperr.ValidationFailed("Profile already exists for this account")
	}
	if _, exists := repo.byUsername[u.Username]; exists {
		return apperr.ValidationFailed("Username is already taken")
	}
	repo.bySubject[u.Subject] = u
	repo.byUsername[u.Username] = u
	repo.byID[u.ID] = u
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, u *User) error {
	repo.byID[u.ID] = u
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, id string) error {
	u, ok := repo.byID[id]
	if !ok {
		return apperr.NotFound("User")
	}
	delete(repo.bySubject, u.Subject)
	delete(repo.byUsername, u.Username)
	delete(repo.byID, id)
	return nil
}

func newTestService() (*Service, *memoryRepository) {
	repo := newMemoryRepository()
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

// # Tests

func TestSignup(t *testing.T) {
	ctx := context.Background()
	claim := &identity.Claim{Subject: "provider-sub-1", Email: "reader@example.com", Name: "Reader One"}

	t.Run("creates profile bound to the claim subject", func(t *testing.T) {
		service, _ := newTestService()

		created, err := service.Signup(ctx, claim, SignupInput{
			Username:         "reader_one",
			Bio:              "I read a lot.",
			InterestedGenres: []string{"fantasy", "mystery"},
		})

		require.NoError(t, err)
		assert.Equal(t, "provider-sub-1", created.Subject)
		assert.Equal(t, "reader@example.com", created.Email)
		assert.Equal(t, "Reader One", created.DisplayName)
		assert.NotEmpty(t, created.ID)
	})

	t.Run("falls back to username when the claim has no name", func(t *testing.T) {
		service, _ := newTestService()

		created, err := service.Signup(ctx, &identity.Claim{Subject: "provider-sub-2"}, SignupInput{
			Username: "anon_reader",
		})

		require.NoError(t, err)
		assert.Equal(t, "anon_reader", created.DisplayName)
	})

	t.Run("succeeds exactly once per subject", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.Signup(ctx, claim, SignupInput{Username: "reader_one"})
		require.NoError(t, err)

		_, err = service.Signup(ctx, claim, SignupInput{Username: "reader_one_again"})
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 400, appError.HTTPStatus)
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.Signup(ctx, claim, SignupInput{Username: "reader_one"})
		require.NoError(t, err)

		_, err = service.Signup(ctx, &identity.Claim{Subject: "provider-sub-2"}, SignupInput{Username: "reader_one"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "taken")
	})

	t.Run("rejects invalid payloads", func(t *testing.T) {
		service, _ := newTestService()

		testCases := []struct {
			name  string
			input SignupInput
		}{
			{"empty username", SignupInput{Username: ""}},
			{"uppercase username", SignupInput{Username: "Reader"}},
			{"username with spaces", SignupInput{Username: "reader one"}},
			{"too many genres", SignupInput{
				Username:         "reader_one",
				InterestedGenres: []string{"a", "b", "c", "d", "e", "f"},
			}},
		}

		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				_, err := service.Signup(ctx, claim, testCase.input)
				require.Error(t, err)

				appError := apperr.As(err)
				require.NotNil(t, appError)
				assert.Equal(t, "VALIDATION_FAILED", appError.Code)
			})
		}
	})
}

func TestResolveBySubject(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the registered user", func(t *testing.T) {
		service, _ := newTestService()

		created, err := service.Signup(ctx, &identity.Claim{Subject: "provider-sub-1"}, SignupInput{Username: "reader_one"})
		require.NoError(t, err)

		resolved, err := service.ResolveBySubject(ctx, "provider-sub-1")
		require.NoError(t, err)
		assert.Equal(t, created.ID, resolved.ID)
	})

	t.Run("unknown subject maps to USER_NOT_REGISTERED", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.ResolveBySubject(ctx, "never-signed-up")
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "USER_NOT_REGISTERED", appError.Code)
		assert.Equal(t, 401, appError.HTTPStatus)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	service, _ := newTestService()
	created, err := service.Signup(ctx, &identity.Claim{Subject: "provider-sub-1"}, SignupInput{
		Username: "reader_one",
		Bio:      "original bio",
	})
	require.NoError(t, err)

	t.Run("nil fields are left untouched", func(t *testing.T) {
		newName := "New Display Name"

		updated, err := service.UpdateProfile(ctx, created.ID, UpdateInput{DisplayName: &newName})
		require.NoError(t, err)

		assert.Equal(t, "New Display Name", updated.DisplayName)
		assert.Equal(t, "original bio", updated.Bio)
	})

	t.Run("cannot blank out the display name", func(t *testing.T) {
		empty := ""

		_, err := service.UpdateProfile(ctx, created.ID, UpdateInput{DisplayName: &empty})
		require.Error(t, err)
	})
}

func TestGetByUsername(t *testing.T) {
	ctx := context.Background()

	service, _ := newTestService()
	_, err := service.Signup(ctx, &identity.Claim{Subject: "provider-sub-1", Email: "secret@example.com"}, SignupInput{Username: "reader_one"})
	require.NoError(t, err)

	t.Run("public view hides the email", func(t *testing.T) {
		profile, err := service.GetByUsername(ctx, "reader_one")
		require.NoError(t, err)

		assert.Empty(t, profile.Email)
		assert.Equal(t, "reader_one", profile.Username)
	})

	t.Run("unknown username is a 404", func(t *testing.T) {
		_, err := service.GetByUsername(ctx, "ghost")
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 404, appError.HTTPStatus)
	})
}
