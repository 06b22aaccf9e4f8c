// Copyright (c) 2026 BoiBritto. All rights reserved.

// Package user defines the application-user profile and its resolution
// from identity-provider subjects.
//
// # Architecture
//
// An [identity.Claim] proves who the caller is to the provider; a [User]
// is what BoiBritto itself knows about them. The two are bound by the
// provider subject id, written exactly once at signup and immutable
// afterwards.
package user

import (
	"context"
	"time"

	"github.com/SillyCatto/boibritto-sub001/internal/platform/ctxkey"
)

// User represents a registered member of the BoiBritto platform.
//
// # Rules
//   - Subject is the provider-issued identifier; unique and immutable.
//   - Username is unique and user-chosen at signup.
//   - InterestedGenres is capped at five tags at signup.
type User struct {
	ID          string `json:"id"`
	Subject     string `json:"-"` // Provider subject id; never exposed over the wire.
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	Bio         string `json:"bio,omitempty"`

	InterestedGenres []string `json:"interestedGenres"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublicProfile returns the view of a user safe to show other members.
func (u *User) PublicProfile() *User {
	return &User{
		ID:               u.ID,
		Username:         u.Username,
		DisplayName:      u.DisplayName,
		AvatarURL:        u.AvatarURL,
		Bio:              u.Bio,
		InterestedGenres: u.InterestedGenres,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

// # Context Helpers

// WithUser returns a new context carrying the resolved application user.
// Only the full authorization policy attaches this value.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, u)
}

// FromContext retrieves the resolved application user from the context.
// Returns nil if the request did not pass the full policy.
func FromContext(ctx context.Context) *User {
	u, ok := ctx.Value(ctxkey.KeyUser).(*User)
	if !ok {
		return nil
	}
	return u
}
