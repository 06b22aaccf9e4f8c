// Copyright (c) 2026 BoiBritto. All rights reserved.

package readinglist

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SillyCatto/boibritto-sub001/internal/platform/apperr"
	"github.com/SillyCatto/boibritto-sub001/internal/visibility"
	"github.com/SillyCatto/boibritto-sub001/pkg/pagination"
)

// # Test Doubles

type memoryRepository struct {
	items map[string]*Item
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{items: make(map[string]*Item)}
}

func (repo *memoryRepository) FindByID(_ context.Context, id string) (*Item, error) {
	if item, ok := repo.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, apperr.NotFound("Reading list item")
}

func (repo *memoryRepository) FindByUserAndVolume(_ context.Context, userID, volumeID string) (*Item, error) {
	for _, item := range repo.items {
		if item.UserID == userID && item.VolumeID == volumeID {
			copied := *item
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Reading list item")
}

func (repo *memoryRepository) ListByUser(_ context.Context, userID string, filter Filter, limit, offset int) ([]*Item, int, error) {
	var matched []*Item
	for _, item := range repo.items {
		if item.UserID != userID {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.PublicOnly && item.Visibility != visibility.Public {
			continue
		}
		copied := *item
		matched = append(matched, &copied)
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

func (repo *memoryRepository) Create(_ context.Context, item *Item) error {
	for _, existing := range repo.items {
		if existing.UserID == item.UserID && existing.VolumeID == item.VolumeID {
			return apperr.ValidationFailed("This volume is already on your reading list")
		}
	}
	copied := *item
	repo.items[item.ID] = &copied
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, item *Item) error {
	copied := *item
	repo.items[item.ID] = &copied
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, id string) error {
	delete(repo.items, id)
	return nil
}

func newTestService() (*Service, *memoryRepository) {
	repo := newMemoryRepository()
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

// # Tests

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("tracks a new volume with defaults", func(t *testing.T) {
		service, _ := newTestService()

		item, err := service.Create(ctx, "user-1", CreateInput{
			VolumeID: "vol-100",
			Status:   StatusInterested,
		})

		require.NoError(t, err)
		assert.Equal(t, visibility.Private, item.Visibility, "visibility defaults to private")
		assert.NotEmpty(t, item.ID)
	})

	t.Run("same volume cannot be tracked twice", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.Create(ctx, "user-1", CreateInput{VolumeID: "vol-100", Status: StatusInterested})
		require.NoError(t, err)

		_, err = service.Create(ctx, "user-1", CreateInput{VolumeID: "vol-100", Status: StatusReading, StartedAt: datePtr("2026-01-01")})
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "VALIDATION_FAILED", appError.Code)
	})

	t.Run("different members may track the same volume", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.Create(ctx, "user-1", CreateInput{VolumeID: "vol-100", Status: StatusInterested})
		require.NoError(t, err)

		_, err = service.Create(ctx, "user-2", CreateInput{VolumeID: "vol-100", Status: StatusInterested})
		require.NoError(t, err)
	})

	t.Run("date rules apply on create", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.Create(ctx, "user-1", CreateInput{
			VolumeID: "vol-100",
			Status:   StatusCompleted,
		})
		require.Error(t, err)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*Service, *memoryRepository, *Item) {
		t.Helper()
		service, repo := newTestService()
		item, err := service.Create(ctx, "owner-1", CreateInput{
			VolumeID:   "vol-100",
			Status:     StatusReading,
			StartedAt:  datePtr("2026-01-10"),
			Visibility: visibility.Public,
		})
		require.NoError(t, err)
		return service, repo, item
	}

	t.Run("owner can advance progress", func(t *testing.T) {
		service, _, item := seed(t)

		completed := StatusCompleted
		completedAt := datePtr("2026-02-01")

		updated, err := service.Update(ctx, "owner-1", item.ID, UpdateInput{
			Status:      &completed,
			CompletedAt: &completedAt,
		})

		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, updated.Status)
		require.NotNil(t, updated.CompletedAt)
	})

	t.Run("non-owner gets 403 and the item is untouched", func(t *testing.T) {
		service, repo, item := seed(t)

		completed := StatusCompleted
		_, err := service.Update(ctx, "intruder", item.ID, UpdateInput{Status: &completed})
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 403, appError.HTTPStatus)

		stored := repo.items[item.ID]
		assert.Equal(t, StatusReading, stored.Status, "a denied update must not change the entity")
	})

	t.Run("merged result is re-validated", func(t *testing.T) {
		service, repo, item := seed(t)

		// Setting completed without supplying completedAt must fail even
		// though the stored item is individually valid.
		completed := StatusCompleted
		_, err := service.Update(ctx, "owner-1", item.ID, UpdateInput{Status: &completed})
		require.Error(t, err)

		stored := repo.items[item.ID]
		assert.Equal(t, StatusReading, stored.Status)
	})

	t.Run("a date can be explicitly cleared", func(t *testing.T) {
		service, _, item := seed(t)

		interested := StatusInterested
		noDate := (*time.Time)(nil)
		updated, err := service.Update(ctx, "owner-1", item.ID, UpdateInput{
			Status:    &interested,
			StartedAt: &noDate,
		})

		require.NoError(t, err)
		assert.Nil(t, updated.StartedAt)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	service, repo := newTestService()
	item, err := service.Create(ctx, "owner-1", CreateInput{VolumeID: "vol-100", Status: StatusInterested})
	require.NoError(t, err)

	t.Run("non-owner cannot delete", func(t *testing.T) {
		err := service.Delete(ctx, "intruder", item.ID)
		require.Error(t, err)
		assert.Equal(t, 403, apperr.As(err).HTTPStatus)
		assert.Contains(t, repo.items, item.ID)
	})

	t.Run("owner can delete", func(t *testing.T) {
		require.NoError(t, service.Delete(ctx, "owner-1", item.ID))
		assert.NotContains(t, repo.items, item.ID)
	})
}

func TestListing(t *testing.T) {
	ctx := context.Background()
	page := pagination.Params{Page: 1, Limit: 20}

	service, _ := newTestService()

	_, err := service.Create(ctx, "owner-1", CreateInput{VolumeID: "vol-1", Status: StatusInterested, Visibility: visibility.Public})
	require.NoError(t, err)
	_, err = service.Create(ctx, "owner-1", CreateInput{VolumeID: "vol-2", Status: StatusReading, StartedAt: datePtr("2026-01-01"), Visibility: visibility.Private})
	require.NoError(t, err)
	_, err = service.Create(ctx, "owner-1", CreateInput{VolumeID: "vol-3", Status: StatusInterested, Visibility: visibility.Friends})
	require.NoError(t, err)

	t.Run("owner sees every visibility", func(t *testing.T) {
		items, meta, err := service.ListOwn(ctx, "owner-1", "", page)
		require.NoError(t, err)
		assert.Len(t, items, 3)
		assert.Equal(t, 3, meta.Total)
	})

	t.Run("status filter narrows the listing", func(t *testing.T) {
		items, _, err := service.ListOwn(ctx, "owner-1", StatusReading, page)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "vol-2", items[0].VolumeID)
	})

	t.Run("foreign listing shows public only", func(t *testing.T) {
		items, meta, err := service.ListPublicByUser(ctx, "owner-1", page)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "vol-1", items[0].VolumeID)
		assert.Equal(t, 1, meta.Total, "friends items stay hidden without a friend graph")
	})

	t.Run("unknown status filter is rejected", func(t *testing.T) {
		_, _, err := service.ListOwn(ctx, "owner-1", Status("dropped"), page)
		require.Error(t, err)
	})
}
