// Copyright (c) 2026 BoiBritto. All rights reserved.

package blog

import (
	"context"
)

// BlogRepository defines the data access contract for blogs.
type BlogRepository interface {
	// FindByID returns the blog with the given id.
	//
	// Returns [apperr.NotFound] when no such blog exists.
	FindByID(ctx context.Context, id string) (*Blog, error)

	// ListPublic returns a page of publicly visible blogs across all
	// authors, newest first, plus the total count.
	ListPublic(ctx context.Context, limit, offset int) ([]*Blog, int, error)

	// ListByAuthor returns a page of one member's blogs. When publicOnly
	// is set, only publicly visible blogs match.
	ListByAuthor(ctx context.Context, authorID string, publicOnly bool, limit, offset int) ([]*Blog, int, error)

	// Create persists a new blog.
	Create(ctx context.Context, blog *Blog) error

	// Update persists changes to title, content, spoiler flag, and
	// visibility. The slug never changes.
	Update(ctx context.Context, blog *Blog) error

	// Delete removes the blog row.
	Delete(ctx context.Context, id string) error
}

// ChapterRepository defines the data access contract for chapters.
type ChapterRepository interface {
	// FindByID returns the chapter with the given id.
	//
	// Returns [apperr.NotFound] when no such chapter exists.
	FindByID(ctx context.Context, id string) (*Chapter, error)

	// ListByAuthor returns a page of one member's chapters ordered by
	// chapter number. When publicOnly is set, only publicly visible
	// chapters match.
	ListByAuthor(ctx context.Context, authorID string, publicOnly bool, limit, offset int) ([]*Chapter, int, error)

	// Create persists a new chapter.
	Create(ctx context.Context, chapter *Chapter) error

	// Update persists changes to mutable chapter fields.
	Update(ctx context.Context, chapter *Chapter) error

	// Delete removes the chapter row.
	Delete(ctx context.Context, id string) error
}
