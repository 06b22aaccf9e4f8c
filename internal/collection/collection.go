// Copyright (c) 2026 BoiBritto. All rights reserved.

// Package collection implements curated, shareable groups of volumes.
//
// # Architecture
//
// A collection owns a set of book memberships keyed by external volume
// id. Membership changes are structural and ride in the same PATCH as
// metadata edits; the storage layer applies them first, inside one
// transaction, so the response always echoes the post-patch state.
package collection

import (
	"time"

	"github.com/SillyCatto/boibritto-sub001/internal/visibility"
)

// Book is one volume membership inside a collection.
type Book struct {
	VolumeID string    `json:"volumeId"`
	AddedAt  time.Time `json:"addedAt"`
}

// Collection is a curated group of volumes owned by one member.
type Collection struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`

	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Tags        []string              `json:"tags"`
	Visibility  visibility.Visibility `json:"visibility"`

	// Books is populated on single-collection reads. Listings carry
	// only BookCount to keep pages light.
	Books     []Book `json:"books,omitempty"`
	BookCount int    `json:"bookCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
