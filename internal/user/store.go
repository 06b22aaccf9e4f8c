// Copyright (c) 2026 BoiBritto. All rights reserved.

package user

import (
	"context"
)

// Repository defines the data access contract for user profiles.
//
// # Review Process
//
// This interface is placed in a separate file from user.go so entity changes
// and storage-contract changes can be reviewed independently.
//
// # Implementations
//
// The canonical implementation is PostgreSQL ([NewRepository]).
type Repository interface {
	// FindBySubject returns the profile bound to a provider subject id.
	//
	// Returns [apperr.NotFound] if no profile has been created for this
	// identity yet.
	FindBySubject(ctx context.Context, subject string) (*User, error)

	// FindByID returns the profile with the given ID.
	//
	// Returns [apperr.NotFound] if the profile does not exist.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByUsername returns the profile with the given username.
	//
	// Returns [apperr.NotFound] if the username is unclaimed.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Create persists a brand-new profile.
	//
	// The unique indexes on subject and username are the final arbiter of
	// exactly-once signup; a violation surfaces as a wrapped
	// [apperr.ValidationFailed].
	Create(ctx context.Context, user *User) error

	// Update persists changes to mutable profile fields (DisplayName,
	// AvatarURL, Bio, InterestedGenres). Subject and Username are never
	// touched by Update.
	Update(ctx context.Context, user *User) error

	// Delete removes the profile row.
	Delete(ctx context.Context, id string) error
}
