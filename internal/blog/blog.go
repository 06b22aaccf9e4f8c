// Copyright (c) 2026 BoiBritto. All rights reserved.

// Package blog implements member-authored long-form writing: blogs and
// serialized chapters.
//
// # Architecture
//
// Both entity kinds share the same ownership and visibility rules as the
// rest of the platform. Blogs get a URL slug derived from the title at
// creation time; the slug is stable afterwards so links never break on a
// title edit.
package blog

import (
	"time"

	"github.com/SillyCatto/boibritto-sub001/internal/visibility"
)

// Blog is one long-form post.
type Blog struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`

	Title        string                `json:"title"`
	Slug         string                `json:"slug"`
	Content      string                `json:"content"`
	SpoilerAlert bool                  `json:"spoilerAlert"`
	Visibility   visibility.Visibility `json:"visibility"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Chapter is one installment of a member's serialized writing.
type Chapter struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`

	Title         string                `json:"title"`
	Content       string                `json:"content"`
	ChapterNumber int                   `json:"chapterNumber"`
	SpoilerAlert  bool                  `json:"spoilerAlert"`
	Visibility    visibility.Visibility `json:"visibility"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
