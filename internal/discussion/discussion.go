// Copyright (c) 2026 BoiBritto. All rights reserved.

// Package discussion implements community threads and their comments.
//
// # Threading Model
//
// Comments nest exactly one level deep. A top-level comment has no
// parent; a reply's parent must exist, belong to the same discussion,
// and itself be top-level. Replying to a reply is rejected, which keeps
// rendering and pagination trivially flat.
package discussion

import (
	"time"

	"github.com/SillyCatto/boibritto-sub001/internal/visibility"
)

// Discussion is one community thread.
type Discussion struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`

	Title        string                `json:"title"`
	Content      string                `json:"content"`
	SpoilerAlert bool                  `json:"spoilerAlert"`
	Visibility   visibility.Visibility `json:"visibility"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Comment is one message inside a discussion.
type Comment struct {
	ID           string `json:"id"`
	DiscussionID string `json:"discussionId"`
	UserID       string `json:"userId"`

	// ParentCommentID is nil for top-level comments.
	ParentCommentID *string `json:"parentCommentId,omitempty"`

	Content string `json:"content"`

	// Replies is populated on threaded listings of top-level comments.
	Replies []*Comment `json:"replies,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TopLevel reports whether the comment starts a thread.
func (c *Comment) TopLevel() bool {
	return c.ParentCommentID == nil
}
