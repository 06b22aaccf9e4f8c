// Copyright (c) 2026 BoiBritto. All rights reserved.

package collection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SillyCatto/boibritto-sub001/internal/platform/apperr"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/validate"
	"github.com/SillyCatto/boibritto-sub001/internal/visibility"
	"github.com/SillyCatto/boibritto-sub001/pkg/pagination"
	"github.com/SillyCatto/boibritto-sub001/pkg/uuidv7"
)

const maxTags = 10

// Service implements the collection use cases.
type Service struct {
	collectionRepository Repository
	logger               *slog.Logger
}

// NewService constructs a collection [Service].
func NewService(collectionRepo Repository, logger *slog.Logger) *Service {
	return &Service{
		collectionRepository: collectionRepo,
		logger:               logger,
	}
}

// # Reads

// Get returns a collection with its books.
//
// Visibility gating: the owner always sees their collection; everyone
// else sees it only when public. Non-public collections are reported as
// 404 to outsiders rather than 403, so their existence stays hidden.
func (service *Service) Get(ctx context.Context, viewerID, collectionID string) (*Collection, error) {
	collection, err := service.collectionRepository.FindByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	if collection.UserID != viewerID && collection.Visibility != visibility.Public {
		return nil, apperr.NotFound("Collection")
	}

	return collection, nil
}

// ListOwn returns one page of the caller's own collections.
func (service *Service) ListOwn(ctx context.Context, userID string, page pagination.Params) ([]*Collection, pagination.Meta, error) {
	collections, total, err := service.collectionRepository.ListByOwner(ctx, userID, false, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("collection_service_list_failed: %w", err)
	}

	return collections, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// ListPublicByUser returns one page of another member's public collections.
func (service *Service) ListPublicByUser(ctx context.Context, ownerID string, page pagination.Params) ([]*Collection, pagination.Meta, error) {
	collections, total, err := service.collectionRepository.ListByOwner(ctx, ownerID, true, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("collection_service_list_public_failed: %w", err)
	}

	return collections, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// # Mutations

// CreateInput holds the fields for a new collection.
type CreateInput struct {
	Title       string
	Description string
	Tags        []string
	Visibility  visibility.Visibility
}

// Create makes a new, empty collection owned by the caller.
func (service *Service) Create(ctx context.Context, userID string, input CreateInput) (*Collection, error) {
	v := &validate.Validator{}
	v.Required("title", input.Title)
	v.MaxLen("title", input.Title, 120)
	v.MaxLen("description", input.Description, 1000)
	v.MaxItems("tags", input.Tags, maxTags)

	if err := v.Err(); err != nil {
		return nil, err
	}

	if input.Visibility == "" {
		input.Visibility = visibility.Private
	}
	if !visibility.Valid(string(input.Visibility)) {
		return nil, apperr.ValidationFailed("Visibility must be one of: public, private, friends")
	}

	if input.Tags == nil {
		input.Tags = []string{}
	}

	collection := &Collection{
		ID:          uuidv7.New(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Tags:        input.Tags,
		Visibility:  input.Visibility,
	}

	if err := service.collectionRepository.Create(ctx, collection); err != nil {
		return nil, fmt.Errorf("collection_service_create_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "collection_created",
		slog.String("user_id", userID),
		slog.String("collection_id", collection.ID),
	)

	return collection, nil
}

// ApplyPatch edits a collection owned by the caller.
//
// # Business Rules
//   - Ownership is re-checked after load; a mismatch is 403 and the
//     collection is untouched.
//   - Structural changes (addBook/removeBook) apply before metadata.
//   - The whole patch is one transaction; the returned collection is
//     the post-patch state.
func (service *Service) ApplyPatch(ctx context.Context, userID, collectionID string, patch Patch) (*Collection, error) {
	// ── 1. Load and Ownership Check ───────────────────────────────────────

	collection, err := service.collectionRepository.FindByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	if collection.UserID != userID {
		return nil, apperr.Forbidden("You do not own this collection")
	}

	// ── 2. Patch Validation ───────────────────────────────────────────────

	if patch.Empty() {
		return nil, apperr.ValidationFailed("Patch contains no changes")
	}

	v := &validate.Validator{}
	if patch.Title != nil {
		v.Required("title", *patch.Title)
		v.MaxLen("title", *patch.Title, 120)
	}
	if patch.Description != nil {
		v.MaxLen("description", *patch.Description, 1000)
	}
	if patch.Tags != nil {
		v.MaxItems("tags", *patch.Tags, maxTags)
	}
	if patch.AddBook != nil {
		v.Required("addBook", *patch.AddBook)
		v.MaxLen("addBook", *patch.AddBook, 64)
	}
	if patch.RemoveBook != nil {
		v.Required("removeBook", *patch.RemoveBook)
	}

	if err := v.Err(); err != nil {
		return nil, err
	}

	if patch.Visibility != nil && !visibility.Valid(string(*patch.Visibility)) {
		return nil, apperr.ValidationFailed("Visibility must be one of: public, private, friends")
	}

	// ── 3. Transactional Apply ────────────────────────────────────────────

	patched, err := service.collectionRepository.ApplyPatch(ctx, collectionID, patch)
	if err != nil {
		return nil, fmt.Errorf("collection_service_patch_failed: %w", err)
	}

	if patch.Structural() {
		service.logger.InfoContext(ctx, "collection_books_changed",
			slog.String("user_id", userID),
			slog.String("collection_id", collectionID),
			slog.Int("book_count", patched.BookCount),
		)
	}

	return patched, nil
}

// Delete removes a collection owned by the caller, memberships included.
func (service *Service) Delete(ctx context.Context, userID, collectionID string) error {
	collection, err := service.collectionRepository.FindByID(ctx, collectionID)
	if err != nil {
		return err
	}

	if collection.UserID != userID {
		return apperr.Forbidden("You do not own this collection")
	}

	if err := service.collectionRepository.Delete(ctx, collectionID); err != nil {
		return fmt.Errorf("collection_service_delete_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "collection_deleted",
		slog.String("user_id", userID),
		slog.String("collection_id", collectionID),
	)

	return nil
}
