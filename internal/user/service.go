// Copyright (c) 2026 BoiBritto. All rights reserved.

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SillyCatto/boibritto-sub001/internal/identity"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/apperr"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/constants"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/validate"
	"github.com/SillyCatto/boibritto-sub001/pkg/slice"
	"github.com/SillyCatto/boibritto-sub001/pkg/uuidv7"
)

// Service implements user profile use cases, including the User Resolver
// half of the authorization pipeline.
type Service struct {
	userRepository Repository
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(userRepo Repository, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		logger:         logger,
	}
}

// # User Resolver

// ResolveBySubject maps a decoded identity claim's subject id to the
// persisted application user.
//
// # Returns
//   - The bound [*User] when the identity has completed signup.
//   - [apperr.UserNotRegistered] when the identity is known to the
//     provider but has no profile yet. Callers use this distinction to
//     route first-time identities to the signup step.
func (service *Service) ResolveBySubject(ctx context.Context, subject string) (*User, error) {
	u, err := service.userRepository.FindBySubject(ctx, subject)
	if err != nil {
		notFound := apperr.As(err)
		if notFound != nil && notFound.Code == "NOT_FOUND" {
			return nil, apperr.UserNotRegistered()
		}
		return nil, fmt.Errorf("user_service_resolve_failed: %w", err)
	}

	return u, nil
}

// # Signup

// SignupInput holds the data a first-time identity submits to create
// its profile.
type SignupInput struct {
	Username         string
	Bio              string
	InterestedGenres []string
}

// Signup creates the application user for a verified identity claim,
// exactly once per provider subject.
//
// # Business Rules
//   - One profile per subject; a second signup for the same identity fails.
//   - Username is unique and format-checked.
//   - At most [constants.MaxInterestedGenres] genre tags.
//   - DisplayName and Email are taken from the provider claim, not the
//     payload, so callers cannot impersonate another identity's attributes.
func (service *Service) Signup(ctx context.Context, claim *identity.Claim, input SignupInput) (*User, error) {
	// ── 1. Payload Validation ─────────────────────────────────────────────

	genres := normalizeGenres(input.InterestedGenres)

	v := &validate.Validator{}
	v.Required("username", input.Username)
	v.Username("username", input.Username)
	v.MaxLen("bio", input.Bio, 500)
	v.MaxItems("interestedGenres", genres, constants.MaxInterestedGenres)

	if err := v.Err(); err != nil {
		return nil, err
	}

	// ── 2. Exactly-Once Check ─────────────────────────────────────────────

	// A pre-check gives a friendly error on the common path; the unique
	// index on subject remains the final arbiter under concurrency.
	if _, err := service.userRepository.FindBySubject(ctx, claim.Subject); err == nil {
		return nil, apperr.ValidationFailed("Profile already exists for this account")
	}

	if _, err := service.userRepository.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperr.ValidationFailed("Username is already taken")
	}

	// ── 3. Entity Construction ────────────────────────────────────────────

	u := &User{
		ID:               uuidv7.New(),
		Subject:          claim.Subject,
		Username:         input.Username,
		Email:            claim.Email,
		DisplayName:      claim.Name,
		Bio:              input.Bio,
		InterestedGenres: genres,
	}

	if u.DisplayName == "" {
		u.DisplayName = input.Username
	}

	// ── 4. Persistence ────────────────────────────────────────────────────

	if err := service.userRepository.Create(ctx, u); err != nil {
		// Unique-index losers get the same client-safe validation errors
		// as the pre-check.
		var ae *apperr.AppError
		if errors.As(err, &ae) {
			return nil, ae
		}
		return nil, fmt.Errorf("user_service_signup_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "user_signed_up",
		slog.String("user_id", u.ID),
		slog.String("username", u.Username),
	)

	return u, nil
}

// # Profile Management

// UpdateInput describes a partial profile edit. Nil fields are left
// untouched.
type UpdateInput struct {
	DisplayName      *string
	AvatarURL        *string
	Bio              *string
	InterestedGenres *[]string
}

// UpdateProfile applies a partial edit to the caller's own profile.
func (service *Service) UpdateProfile(ctx context.Context, userID string, input UpdateInput) (*User, error) {
	u, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		u.DisplayName = *input.DisplayName
	}
	if input.AvatarURL != nil {
		u.AvatarURL = *input.AvatarURL
	}
	if input.Bio != nil {
		u.Bio = *input.Bio
	}
	if input.InterestedGenres != nil {
		u.InterestedGenres = normalizeGenres(*input.InterestedGenres)
	}

	v := &validate.Validator{}
	v.Required("displayName", u.DisplayName)
	v.MaxLen("displayName", u.DisplayName, 100)
	v.MaxLen("bio", u.Bio, 500)
	v.MaxItems("interestedGenres", u.InterestedGenres, constants.MaxInterestedGenres)

	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := service.userRepository.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("user_service_update_failed: %w", err)
	}

	return u, nil
}

// normalizeGenres trims genre tags and drops blanks and repeats, keeping
// first-seen order.
func normalizeGenres(genres []string) []string {
	var result []string
	for _, genre := range genres {
		clean := strings.TrimSpace(genre)
		if clean == "" || slice.Contains(result, clean) {
			continue
		}
		result = append(result, clean)
	}
	return result
}

// GetByUsername returns the public view of a member's profile.
func (service *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	u, err := service.userRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return u.PublicProfile(), nil
}

// DeleteAccount removes the caller's own profile.
func (service *Service) DeleteAccount(ctx context.Context, userID string) error {
	if err := service.userRepository.Delete(ctx, userID); err != nil {
		return fmt.Errorf("user_service_delete_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "user_account_deleted", slog.String("user_id", userID))
	return nil
}
