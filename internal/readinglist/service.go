// Copyright (c) 2026 BoiBritto. All rights reserved.

package readinglist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SillyCatto/boibritto-sub001/internal/platform/apperr"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/validate"
	"github.com/SillyCatto/boibritto-sub001/internal/visibility"
	"github.com/SillyCatto/boibritto-sub001/pkg/pagination"
	"github.com/SillyCatto/boibritto-sub001/pkg/uuidv7"
)

// Service implements the reading-list use cases.
//
// Every mutating operation re-checks ownership after loading the entity,
// regardless of what the router promised. A mismatch returns 403 and the
// entity is left untouched.
type Service struct {
	itemRepository Repository
	logger         *slog.Logger
}

// NewService constructs a reading-list [Service].
func NewService(itemRepo Repository, logger *slog.Logger) *Service {
	return &Service{
		itemRepository: itemRepo,
		logger:         logger,
	}
}

// # Listing

// ListOwn returns one page of the caller's own items, optionally filtered
// by status. Private and friends items are included: owners always see
// everything they track.
func (service *Service) ListOwn(ctx context.Context, userID string, status Status, page pagination.Params) ([]*Item, pagination.Meta, error) {
	if status != "" && !status.Valid() {
		return nil, pagination.Meta{}, apperr.ValidationFailed("Status must be one of: interested, reading, completed")
	}

	items, total, err := service.itemRepository.ListByUser(ctx, userID, Filter{Status: status}, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("readinglist_service_list_failed: %w", err)
	}

	return items, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// ListPublicByUser returns one page of another member's publicly visible
// items. Friends-scoped items are withheld: no friend graph exists
// server-side, so they are treated as private in foreign listings.
func (service *Service) ListPublicByUser(ctx context.Context, ownerID string, page pagination.Params) ([]*Item, pagination.Meta, error) {
	items, total, err := service.itemRepository.ListByUser(ctx, ownerID, Filter{PublicOnly: true}, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("readinglist_service_list_public_failed: %w", err)
	}

	return items, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// # Mutations

// CreateInput holds the fields for tracking a new volume.
type CreateInput struct {
	VolumeID    string
	Status      Status
	StartedAt   *time.Time
	CompletedAt *time.Time
	Visibility  visibility.Visibility
}

// Create adds a volume to the caller's reading list.
//
// # Business Rules
//   - One entry per volume per member.
//   - The status/date rules of [ValidateProgress] hold.
//   - Visibility defaults to private when unset.
func (service *Service) Create(ctx context.Context, userID string, input CreateInput) (*Item, error) {
	// ── 1. Payload Validation ─────────────────────────────────────────────

	v := &validate.Validator{}
	v.Required("volumeId", input.VolumeID)
	v.MaxLen("volumeId", input.VolumeID, 64)

	if err := v.Err(); err != nil {
		return nil, err
	}

	if input.Visibility == "" {
		input.Visibility = visibility.Private
	}
	if !visibility.Valid(string(input.Visibility)) {
		return nil, apperr.ValidationFailed("Visibility must be one of: public, private, friends")
	}

	if err := ValidateProgress(input.Status, input.StartedAt, input.CompletedAt); err != nil {
		return nil, err
	}

	// ── 2. Duplicate Check ────────────────────────────────────────────────

	// Friendly error on the common path; the unique index on
	// (userid, volumeid) decides races.
	if _, err := service.itemRepository.FindByUserAndVolume(ctx, userID, input.VolumeID); err == nil {
		return nil, apperr.ValidationFailed("This volume is already on your reading list")
	}

	// ── 3. Persistence ────────────────────────────────────────────────────

	item := &Item{
		ID:          uuidv7.New(),
		UserID:      userID,
		VolumeID:    input.VolumeID,
		Status:      input.Status,
		StartedAt:   input.StartedAt,
		CompletedAt: input.CompletedAt,
		Visibility:  input.Visibility,
	}

	if err := service.itemRepository.Create(ctx, item); err != nil {
		var appError *apperr.AppError
		if errors.As(err, &appError) {
			return nil, appError
		}
		return nil, fmt.Errorf("readinglist_service_create_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "reading_list_item_added",
		slog.String("user_id", userID),
		slog.String("volume_id", input.VolumeID),
		slog.String("status", string(item.Status)),
	)

	return item, nil
}

// UpdateInput describes a partial edit of a tracked volume. Pointer
// fields distinguish "not sent" from "sent as empty"; date fields use a
// double pointer so a client can explicitly clear a date.
type UpdateInput struct {
	Status      *Status
	StartedAt   **time.Time
	CompletedAt **time.Time
	Visibility  *visibility.Visibility
}

// Update edits a tracked volume owned by the caller.
//
// The merged result is re-validated with [ValidateProgress]: an update
// is rejected exactly when creating an item in the resulting state
// would be.
func (service *Service) Update(ctx context.Context, userID, itemID string, input UpdateInput) (*Item, error) {
	// ── 1. Load and Ownership Check ───────────────────────────────────────

	item, err := service.itemRepository.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.UserID != userID {
		return nil, apperr.Forbidden("You do not own this reading list item")
	}

	// ── 2. Merge and Re-Validate ──────────────────────────────────────────

	if input.Status != nil {
		item.Status = *input.Status
	}
	if input.StartedAt != nil {
		item.StartedAt = *input.StartedAt
	}
	if input.CompletedAt != nil {
		item.CompletedAt = *input.CompletedAt
	}
	if input.Visibility != nil {
		if !visibility.Valid(string(*input.Visibility)) {
			return nil, apperr.ValidationFailed("Visibility must be one of: public, private, friends")
		}
		item.Visibility = *input.Visibility
	}

	if err := ValidateProgress(item.Status, item.StartedAt, item.CompletedAt); err != nil {
		return nil, err
	}

	// ── 3. Persistence ────────────────────────────────────────────────────

	if err := service.itemRepository.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("readinglist_service_update_failed: %w", err)
	}

	return item, nil
}

// Delete removes a tracked volume owned by the caller.
func (service *Service) Delete(ctx context.Context, userID, itemID string) error {
	item, err := service.itemRepository.FindByID(ctx, itemID)
	if err != nil {
		return err
	}

	if item.UserID != userID {
		return apperr.Forbidden("You do not own this reading list item")
	}

	if err := service.itemRepository.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("readinglist_service_delete_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "reading_list_item_removed",
		slog.String("user_id", userID),
		slog.String("item_id", itemID),
	)

	return nil
}
