// Copyright (c) 2026 BoiBritto. All rights reserved.

package collection

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SillyCatto/boibritto-sub001/internal/platform/apperr"
	"github.com/SillyCatto/boibritto-sub001/internal/visibility"
	"github.com/SillyCatto/boibritto-sub001/pkg/pagination"
)

// # Test Doubles

// memoryRepository mimics the transactional semantics of the PostgreSQL
// store: a patch applies structurally first and reads back the result.
type memoryRepository struct {
	collections map[string]*Collection
	books       map[string]map[string]time.Time // collection id -> volume id -> added at
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		collections: make(map[string]*Collection),
		books:       make(map[string]map[string]time.Time),
	}
}

func (repo *memoryRepository) snapshot(id string) *Collection {
	stored := repo.collections[id]
	copied := *stored
	copied.Books = nil
	for volumeID, addedAt := range repo.books[id] {
		copied.Books = append(copied.Books, Book{VolumeID: volumeID, AddedAt: addedAt})
	}
	sort.Slice(copied.Books, func(i, j int) bool {
		return copied.Books[i].AddedAt.Before(copied.Books[j].AddedAt)
	})
	copied.BookCount = len(copied.Books)
	return &copied
}

func (repo *memoryRepository) FindByID(_ context.Context, id string) (*Collection, error) {
	if _, ok := repo.collections[id]; !ok {
		return nil, apperr.NotFound("Collection")
	}
	return repo.snapshot(id), nil
}

func (repo *memoryRepository) ListByOwner(_ context.Context, ownerID string, publicOnly bool, limit, offset int) ([]*Collection, int, error) {
	var matched []*Collection
	for id, collection := range repo.collections {
		if collection.UserID != ownerID {
			continue
		}
		if publicOnly && collection.Visibility != visibility.Public {
			continue
		}
		matched = append(matched, repo.snapshot(id))
	}

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (repo *memoryRepository) Create(_ context.Context, collection *Collection) error {
	copied := *collection
	repo.collections[collection.ID] = &copied
	repo.books[collection.ID] = make(map[string]time.Time)
	return nil
}

func (repo *memoryRepository) ApplyPatch(_ context.Context, id string, patch Patch) (*Collection, error) {
	stored, ok := repo.collections[id]
	if !ok {
		return nil, apperr.NotFound("Collection")
	}

	// Structural first, mirroring the transaction's statement order.
	if patch.AddBook != nil {
		if _, exists := repo.books[id][*patch.AddBook]; !exists {
			repo.books[id][*patch.AddBook] = time.Now()
		}
	}
	if patch.RemoveBook != nil {
		delete(repo.books[id], *patch.RemoveBook)
	}

	if patch.Title != nil {
		stored.Title = *patch.Title
	}
	if patch.Description != nil {
		stored.Description = *patch.Description
	}
	if patch.Tags != nil {
		stored.Tags = *patch.Tags
	}
	if patch.Visibility != nil {
		stored.Visibility = *patch.Visibility
	}
	stored.UpdatedAt = time.Now()

	return repo.snapshot(id), nil
}

func (repo *memoryRepository) Delete(_ context.Context, id string) error {
	delete(repo.collections, id)
	delete(repo.books, id)
	return nil
}

func newTestService() (*Service, *memoryRepository) {
	repo := newMemoryRepository()
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func stringPtr(value string) *string { return &value }

// # Tests

func TestCreateCollection(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	t.Run("creates an empty private collection by default", func(t *testing.T) {
		created, err := service.Create(ctx, "owner-1", CreateInput{Title: "Shelf of honor"})
		require.NoError(t, err)

		assert.Equal(t, visibility.Private, created.Visibility)
		assert.Zero(t, created.BookCount)
		assert.NotNil(t, created.Tags, "tags serialize as [] not null")
	})

	t.Run("title is required", func(t *testing.T) {
		_, err := service.Create(ctx, "owner-1", CreateInput{})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_FAILED", apperr.As(err).Code)
	})
}

func TestApplyPatch(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*Service, *memoryRepository, *Collection) {
		t.Helper()
		service, repo := newTestService()
		created, err := service.Create(ctx, "owner-1", CreateInput{Title: "Favorites", Visibility: visibility.Public})
		require.NoError(t, err)
		return service, repo, created
	}

	t.Run("addBook is idempotent", func(t *testing.T) {
		service, _, created := seed(t)

		first, err := service.ApplyPatch(ctx, "owner-1", created.ID, Patch{AddBook: stringPtr("vol-1")})
		require.NoError(t, err)
		assert.Equal(t, 1, first.BookCount)

		second, err := service.ApplyPatch(ctx, "owner-1", created.ID, Patch{AddBook: stringPtr("vol-1")})
		require.NoError(t, err)
		assert.Equal(t, 1, second.BookCount, "re-adding the same volume changes nothing")
	})

	t.Run("removeBook of an absent volume is a no-op", func(t *testing.T) {
		service, _, created := seed(t)

		patched, err := service.ApplyPatch(ctx, "owner-1", created.ID, Patch{RemoveBook: stringPtr("vol-absent")})
		require.NoError(t, err)
		assert.Zero(t, patched.BookCount)
	})

	t.Run("structural applies before metadata and response echoes the result", func(t *testing.T) {
		service, _, created := seed(t)

		newTitle := "Renamed shelf"
		patched, err := service.ApplyPatch(ctx, "owner-1", created.ID, Patch{
			AddBook: stringPtr("vol-1"),
			Title:   &newTitle,
		})

		require.NoError(t, err)
		assert.Equal(t, "Renamed shelf", patched.Title)
		require.Len(t, patched.Books, 1)
		assert.Equal(t, "vol-1", patched.Books[0].VolumeID)
	})

	t.Run("add and remove of the same volume nets to absent", func(t *testing.T) {
		service, _, created := seed(t)

		patched, err := service.ApplyPatch(ctx, "owner-1", created.ID, Patch{
			AddBook:    stringPtr("vol-1"),
			RemoveBook: stringPtr("vol-1"),
		})

		require.NoError(t, err)
		assert.Zero(t, patched.BookCount)
	})

	t.Run("non-owner gets 403 and nothing changes", func(t *testing.T) {
		service, repo, created := seed(t)

		_, err := service.ApplyPatch(ctx, "intruder", created.ID, Patch{AddBook: stringPtr("vol-1")})
		require.Error(t, err)
		assert.Equal(t, 403, apperr.As(err).HTTPStatus)
		assert.Empty(t, repo.books[created.ID])
	})

	t.Run("an empty patch is rejected", func(t *testing.T) {
		service, _, created := seed(t)

		_, err := service.ApplyPatch(ctx, "owner-1", created.ID, Patch{})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_FAILED", apperr.As(err).Code)
	})
}

func TestGetVisibility(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	private, err := service.Create(ctx, "owner-1", CreateInput{Title: "Hidden", Visibility: visibility.Private})
	require.NoError(t, err)

	public, err := service.Create(ctx, "owner-1", CreateInput{Title: "Open", Visibility: visibility.Public})
	require.NoError(t, err)

	t.Run("owner sees private", func(t *testing.T) {
		got, err := service.Get(ctx, "owner-1", private.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hidden", got.Title)
	})

	t.Run("outsider cannot even learn a private collection exists", func(t *testing.T) {
		_, err := service.Get(ctx, "stranger", private.ID)
		require.Error(t, err)
		assert.Equal(t, 404, apperr.As(err).HTTPStatus)
	})

	t.Run("outsider sees public", func(t *testing.T) {
		got, err := service.Get(ctx, "stranger", public.ID)
		require.NoError(t, err)
		assert.Equal(t, "Open", got.Title)
	})

	t.Run("public listing excludes private collections", func(t *testing.T) {
		collections, meta, err := service.ListPublicByUser(ctx, "owner-1", pagination.Params{Page: 1, Limit: 20})
		require.NoError(t, err)
		require.Len(t, collections, 1)
		assert.Equal(t, "Open", collections[0].Title)
		assert.Equal(t, 1, meta.Total)
	})
}
