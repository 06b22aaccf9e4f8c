// Copyright (c) 2026 BoiBritto. All rights reserved.

// Package readinglist implements each member's personal reading tracker.
//
// # Architecture
//
// A reading-list item binds a member to an external volume id with a
// progress status and optional progress dates. The date rules live in
// [ValidateProgress], a pure function shared by create and update so the
// two paths can never drift apart.
package readinglist

import (
	"time"

	"github.com/SillyCatto/boibritto-sub001/internal/platform/apperr"
	"github.com/SillyCatto/boibritto-sub001/internal/visibility"
)

// Status is the reading progress of a tracked volume.
type Status string

const (
	// StatusInterested marks a volume the member intends to read.
	StatusInterested Status = "interested"
	// StatusReading marks a volume currently being read.
	StatusReading Status = "reading"
	// StatusCompleted marks a finished volume.
	StatusCompleted Status = "completed"
)

// StatusValues returns every accepted status string, for validators.
func StatusValues() []string {
	return []string{string(StatusInterested), string(StatusReading), string(StatusCompleted)}
}

// Valid reports whether s is one of the accepted statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusInterested, StatusReading, StatusCompleted:
		return true
	}
	return false
}

// Item is one tracked volume on a member's reading list.
//
// # Rules
//   - A member tracks each volume at most once.
//   - StartedAt / CompletedAt follow the [ValidateProgress] rules.
type Item struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	VolumeID string `json:"volumeId"`

	Status      Status     `json:"status"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	Visibility visibility.Visibility `json:"visibility"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidateProgress checks the status/date consistency rules for a
// reading-list item. It is pure: no clock, no storage, no context.
//
// # Rules
//  1. reading and completed require startedAt.
//  2. completed requires completedAt.
//  3. When both dates are present, completedAt must not precede
//     startedAt. Equal dates are fine (a volume finished in a day).
//
// Each violation returns a VALIDATION_FAILED error naming the specific
// broken rule, so clients can show a precise message.
func ValidateProgress(status Status, startedAt, completedAt *time.Time) error {
	if !status.Valid() {
		return apperr.ValidationFailed("Status must be one of: interested, reading, completed")
	}

	if (status == StatusReading || status == StatusCompleted) && startedAt == nil {
		return apperr.ValidationFailed("startedAt is required when status is reading or completed")
	}

	if status == StatusCompleted && completedAt == nil {
		return apperr.ValidationFailed("completedAt is required when status is completed")
	}

	if startedAt != nil && completedAt != nil && completedAt.Before(*startedAt) {
		return apperr.ValidationFailed("completedAt cannot be earlier than startedAt")
	}

	return nil
}
