// Copyright (c) 2026 BoiBritto. All rights reserved.

package collection

import (
	"context"

	"github.com/SillyCatto/boibritto-sub001/internal/visibility"
)

// Patch describes one combined collection edit. Structural fields
// (AddBook, RemoveBook) are applied before the metadata fields, all
// inside a single transaction.
type Patch struct {
	// AddBook inserts a volume membership. Idempotent: adding a volume
	// that is already present changes nothing.
	AddBook *string
	// RemoveBook deletes a volume membership. Removing an absent volume
	// is a no-op.
	RemoveBook *string

	Title       *string
	Description *string
	Tags        *[]string
	Visibility  *visibility.Visibility
}

// Structural reports whether the patch carries any membership change.
func (p Patch) Structural() bool {
	return p.AddBook != nil || p.RemoveBook != nil
}

// Empty reports whether the patch changes nothing at all.
func (p Patch) Empty() bool {
	return !p.Structural() && p.Title == nil && p.Description == nil &&
		p.Tags == nil && p.Visibility == nil
}

// Repository defines the data access contract for collections.
type Repository interface {
	// FindByID returns a collection with its books loaded.
	//
	// Returns [apperr.NotFound] when no such collection exists.
	FindByID(ctx context.Context, id string) (*Collection, error)

	// ListByOwner returns a page of a member's collections (books
	// omitted, BookCount populated) plus the total count. When
	// publicOnly is set, only publicly visible collections match.
	ListByOwner(ctx context.Context, ownerID string, publicOnly bool, limit, offset int) ([]*Collection, int, error)

	// Create persists a new, empty collection.
	Create(ctx context.Context, collection *Collection) error

	// ApplyPatch applies a combined edit in one transaction, structural
	// changes first, and returns the post-patch collection with books
	// loaded.
	ApplyPatch(ctx context.Context, id string, patch Patch) (*Collection, error)

	// Delete removes the collection and its memberships.
	Delete(ctx context.Context, id string) error
}
