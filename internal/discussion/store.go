// Copyright (c) 2026 BoiBritto. All rights reserved.

package discussion

import (
	"context"
)

// DiscussionRepository defines the data access contract for threads.
type DiscussionRepository interface {
	// FindByID returns the discussion with the given id.
	//
	// Returns [apperr.NotFound] when no such discussion exists.
	FindByID(ctx context.Context, id string) (*Discussion, error)

	// ListPublic returns a page of publicly visible discussions, newest
	// first, plus the total count.
	ListPublic(ctx context.Context, limit, offset int) ([]*Discussion, int, error)

	// ListByAuthor returns a page of one member's discussions. When
	// publicOnly is set, only publicly visible threads match.
	ListByAuthor(ctx context.Context, authorID string, publicOnly bool, limit, offset int) ([]*Discussion, int, error)

	// Create persists a new discussion.
	Create(ctx context.Context, discussion *Discussion) error

	// Update persists changes to mutable discussion fields.
	Update(ctx context.Context, discussion *Discussion) error

	// Delete removes the discussion and all of its comments.
	Delete(ctx context.Context, id string) error
}

// CommentRepository defines the data access contract for comments.
type CommentRepository interface {
	// FindByID returns the comment with the given id.
	//
	// Returns [apperr.NotFound] when no such comment exists.
	FindByID(ctx context.Context, id string) (*Comment, error)

	// ListByDiscussion returns a page of a discussion's top-level
	// comments, oldest first, each with its replies attached, plus the
	// total count of top-level comments.
	ListByDiscussion(ctx context.Context, discussionID string, limit, offset int) ([]*Comment, int, error)

	// Create persists a new comment.
	Create(ctx context.Context, comment *Comment) error

	// Delete removes a comment and, for a top-level comment, its replies.
	Delete(ctx context.Context, id string) error
}
