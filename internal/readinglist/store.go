// Copyright (c) 2026 BoiBritto. All rights reserved.

package readinglist

import (
	"context"
)

// Filter narrows a reading-list listing.
type Filter struct {
	// Status restricts the listing to one progress status when non-empty.
	Status Status
	// PublicOnly restricts the listing to publicly visible items. Used
	// when one member browses another member's list.
	PublicOnly bool
}

// Repository defines the data access contract for reading-list items.
type Repository interface {
	// FindByID returns the item with the given id.
	//
	// Returns [apperr.NotFound] when no such item exists.
	FindByID(ctx context.Context, id string) (*Item, error)

	// FindByUserAndVolume returns the caller's existing entry for a
	// volume, for the one-entry-per-volume rule.
	//
	// Returns [apperr.NotFound] when the volume is untracked.
	FindByUserAndVolume(ctx context.Context, userID, volumeID string) (*Item, error)

	// ListByUser returns a page of a member's items plus the total count
	// matching the filter.
	ListByUser(ctx context.Context, userID string, filter Filter, limit, offset int) ([]*Item, int, error)

	// Create persists a new item. The unique index on (userid, volumeid)
	// backs up the duplicate pre-check under concurrency.
	Create(ctx context.Context, item *Item) error

	// Update persists changes to status, dates, and visibility.
	Update(ctx context.Context, item *Item) error

	// Delete removes the item row.
	Delete(ctx context.Context, id string) error
}
