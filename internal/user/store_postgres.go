// Copyright (c) 2026 BoiBritto. All rights reserved.

// PostgreSQL implementation of the profile repository.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, unique-constraint violations)
// are mapped to domain-friendly [apperr.AppError] values so no storage
// detail leaks past this file.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SillyCatto/boibritto-sub001/internal/platform/apperr"
)

// pgUniqueViolation is the SQLSTATE for unique-constraint failures.
const pgUniqueViolation = "23505"

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of [Repository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const profileColumns = `id, subject, username, email, displayname, avatarurl, bio, interestedgenres, createdat, updatedat`

// scanProfile hydrates a [User] from a single profile row.
func scanProfile(row pgx.Row) (*User, error) {
	u := &User{}
	err := row.Scan(
		&u.ID,
		&u.Subject,
		&u.Username,
		&u.Email,
		&u.DisplayName,
		&u.AvatarURL,
		&u.Bio,
		&u.InterestedGenres,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create persists a new profile into the users.profile table.
//
// The unique indexes on subject and username close the signup race:
// two concurrent signups for the same identity cannot both commit, and
// the loser receives a client-safe validation error.
func (repository *PostgresRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users.profile (
			id, subject, username, email, displayname, avatarurl, bio, interestedgenres, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Subject,
		user.Username,
		user.Email,
		user.DisplayName,
		user.AvatarURL,
		user.Bio,
		user.InterestedGenres,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			switch pgErr.ConstraintName {
			case "profile_subject_key":
				return apperr.ValidationFailed("Profile already exists for this account")
			case "profile_username_key":
				return apperr.ValidationFailed("Username is already taken")
			}
		}
		return fmt.Errorf("postgres_profile_create_failed: %w", err)
	}

	return nil
}

// FindBySubject retrieves a profile by its provider subject id.
func (repository *PostgresRepository) FindBySubject(ctx context.Context, subject string) (*User, error) {
	const query = `
		SELECT ` + profileColumns + `
		FROM users.profile
		WHERE subject = $1`

	u, err := scanProfile(repository.pool.QueryRow(ctx, query, subject))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_profile_find_by_subject_failed: %w", err)
	}

	return u, nil
}

// FindByID retrieves a profile by its primary key.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*User, error) {
	const query = `
		SELECT ` + profileColumns + `
		FROM users.profile
		WHERE id = $1`

	u, err := scanProfile(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_profile_find_by_id_failed: %w", err)
	}

	return u, nil
}

// FindByUsername retrieves a profile by its unique username.
func (repository *PostgresRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	const query = `
		SELECT ` + profileColumns + `
		FROM users.profile
		WHERE username = $1`

	u, err := scanProfile(repository.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_profile_find_by_username_failed: %w", err)
	}

	return u, nil
}

// Update persists changes to a profile's mutable fields.
func (repository *PostgresRepository) Update(ctx context.Context, user *User) error {
	const query = `
		UPDATE users.profile
		SET displayname = $2, avatarurl = $3, bio = $4, interestedgenres = $5, updatedat = $6
		WHERE id = $1`

	user.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.DisplayName,
		user.AvatarURL,
		user.Bio,
		user.InterestedGenres,
		user.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_profile_update_failed: %w", err)
	}

	return nil
}

// Delete removes a profile row permanently.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM users.profile WHERE id = $1`

	_, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres_profile_delete_failed: %w", err)
	}

	return nil
}
