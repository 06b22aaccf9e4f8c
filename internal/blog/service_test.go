// Copyright (c) 2026 BoiBritto. All rights reserved.

package blog

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SillyCatto/boibritto-sub001/internal/platform/apperr"
	"github.com/SillyCatto/boibritto-sub001/internal/visibility"
	"github.com/SillyCatto/boibritto-sub001/pkg/pagination"
)

// # Test Doubles

type memoryBlogRepository struct {
	blogs map[string]*Blog
}

func (repo *memoryBlogRepository) FindByID(_ context.Context, id string) (*Blog, error) {
	if entry, ok := repo.blogs[id]; ok {
		copied := *entry
		return &copied, nil
	}
	return nil, apperr.NotFound("Blog")
}

func (repo *memoryBlogRepository) ListPublic(_ context.Context, limit, offset int) ([]*Blog, int, error) {
	var matched []*Blog
	for _, entry := range repo.blogs {
		if entry.Visibility == visibility.Public {
			copied := *entry
			matched = append(matched, &copied)
		}
	}
	return clampPage(matched, limit, offset), len(matched), nil
}

func (repo *memoryBlogRepository) ListByAuthor(_ context.Context, authorID string, publicOnly bool, limit, offset int) ([]*Blog, int, error) {
	var matched []*Blog
	for _, entry := range repo.blogs {
		if entry.UserID != authorID {
			continue
		}
		if publicOnly && entry.Visibility != visibility.Public {
			continue
		}
		copied := *entry
		matched = append(matched, &copied)
	}
	return clampPage(matched, limit, offset), len(matched), nil
}

func (repo *memoryBlogRepository) Create(_ context.Context, entry *Blog) error {
	copied := *entry
	repo.blogs[entry.ID] = &copied
	return nil
}

func (repo *memoryBlogRepository) Update(_ context.Context, entry *Blog) error {
	copied := *entry
	repo.blogs[entry.ID] = &copied
	return nil
}

func (repo *memoryBlogRepository) Delete(_ context.Context, id string) error {
	delete(repo.blogs, id)
	return nil
}

type memoryChapterRepository struct {
	chapters map[string]*Chapter
}

func (repo *memoryChapterRepository) FindByID(_ context.Context, id string) (*Chapter, error) {
	if chapter, ok := repo.chapters[id]; ok {
		copied := *chapter
		return &copied, nil
	}
	return nil, apperr.NotFound("Chapter")
}

func (repo *memoryChapterRepository) ListByAuthor(_ context.Context, authorID string, publicOnly bool, limit, offset int) ([]*Chapter, int, error) {
	var matched []*Chapter
	for _, chapter := range repo.chapters {
		if chapter.UserID != authorID {
			continue
		}
		if publicOnly && chapter.Visibility != visibility.Public {
			continue
		}
		copied := *chapter
		matched = append(matched, &copied)
	}
	return clampPage(matched, limit, offset), len(matched), nil
}

func (repo *memoryChapterRepository) Create(_ context.Context, chapter *Chapter) error {
	copied := *chapter
	repo.chapters[chapter.ID] = &copied
	return nil
}

func (repo *memoryChapterRepository) Update(_ context.Context, chapter *Chapter) error {
	copied := *chapter
	repo.chapters[chapter.ID] = &copied
	return nil
}

func (repo *memoryChapterRepository) Delete(_ context.Context, id string) error {
	delete(repo.chapters, id)
	return nil
}

func clampPage[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func newTestService() (*Service, *memoryBlogRepository, *memoryChapterRepository) {
	blogRepo := &memoryBlogRepository{blogs: make(map[string]*Blog)}
	chapterRepo := &memoryChapterRepository{chapters: make(map[string]*Chapter)}
	return NewService(blogRepo, chapterRepo, slog.New(slog.NewTextHandler(io.Discard, nil))), blogRepo, chapterRepo
}

// # Blog Tests

func TestCreateBlog(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService()

	t.Run("derives a stable slug from the title", func(t *testing.T) {
		entry, err := service.CreateBlog(ctx, "author-1", BlogInput{
			Title:   "Why I Reread Pather Panchali",
			Content: "Because it is worth it.",
		})

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(entry.Slug, "why-i-reread-pather-panchali-"), entry.Slug)
		assert.Equal(t, visibility.Public, entry.Visibility, "blogs default to public")
	})

	t.Run("same title yields distinct slugs", func(t *testing.T) {
		first, err := service.CreateBlog(ctx, "author-1", BlogInput{Title: "My Year in Books", Content: "a"})
		require.NoError(t, err)
		second, err := service.CreateBlog(ctx, "author-1", BlogInput{Title: "My Year in Books", Content: "b"})
		require.NoError(t, err)

		assert.NotEqual(t, first.Slug, second.Slug)
	})

	t.Run("title and content are required", func(t *testing.T) {
		_, err := service.CreateBlog(ctx, "author-1", BlogInput{Title: "No content"})
		require.Error(t, err)
	})
}

func TestUpdateBlog(t *testing.T) {
	ctx := context.Background()
	service, repo, _ := newTestService()

	entry, err := service.CreateBlog(ctx, "author-1", BlogInput{Title: "Original", Content: "text"})
	require.NoError(t, err)

	t.Run("slug survives a title change", func(t *testing.T) {
		newTitle := "Completely Different"
		updated, err := service.UpdateBlog(ctx, "author-1", entry.ID, UpdateBlogInput{Title: &newTitle})

		require.NoError(t, err)
		assert.Equal(t, "Completely Different", updated.Title)
		assert.Equal(t, entry.Slug, updated.Slug)
	})

	t.Run("non-author gets 403", func(t *testing.T) {
		newTitle := "Hijacked"
		_, err := service.UpdateBlog(ctx, "intruder", entry.ID, UpdateBlogInput{Title: &newTitle})

		require.Error(t, err)
		assert.Equal(t, 403, apperr.As(err).HTTPStatus)
		assert.NotEqual(t, "Hijacked", repo.blogs[entry.ID].Title)
	})
}

func TestGetBlogVisibility(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService()

	private, err := service.CreateBlog(ctx, "author-1", BlogInput{
		Title: "Draft thoughts", Content: "hidden", Visibility: visibility.Private,
	})
	require.NoError(t, err)

	t.Run("author reads their private blog", func(t *testing.T) {
		_, err := service.GetBlog(ctx, "author-1", private.ID)
		assert.NoError(t, err)
	})

	t.Run("outsider gets 404 for a private blog", func(t *testing.T) {
		_, err := service.GetBlog(ctx, "stranger", private.ID)
		require.Error(t, err)
		assert.Equal(t, 404, apperr.As(err).HTTPStatus)
	})

	t.Run("public feed excludes private blogs", func(t *testing.T) {
		blogs, _, err := service.ListPublicBlogs(ctx, pagination.Params{Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Empty(t, blogs)
	})
}

// # Chapter Tests

func TestChapters(t *testing.T) {
	ctx := context.Background()
	service, _, chapterRepo := newTestService()

	t.Run("chapter number zero is allowed", func(t *testing.T) {
		chapter, err := service.CreateChapter(ctx, "author-1", ChapterInput{
			Title: "Prologue", Content: "It begins.", ChapterNumber: 0,
		})

		require.NoError(t, err)
		assert.Zero(t, chapter.ChapterNumber)
	})

	t.Run("negative chapter number is rejected", func(t *testing.T) {
		_, err := service.CreateChapter(ctx, "author-1", ChapterInput{
			Title: "Bad", Content: "x", ChapterNumber: -1,
		})

		require.Error(t, err)
		assert.Equal(t, "VALIDATION_FAILED", apperr.As(err).Code)
	})

	t.Run("author sees private chapters in their own listing", func(t *testing.T) {
		_, err := service.CreateChapter(ctx, "author-1", ChapterInput{
			Title: "Secret chapter", Content: "x", ChapterNumber: 1, Visibility: visibility.Private,
		})
		require.NoError(t, err)

		own, _, err := service.ListChaptersByAuthor(ctx, "author-1", "author-1", pagination.Params{Page: 1, Limit: 20})
		require.NoError(t, err)

		foreign, _, err := service.ListChaptersByAuthor(ctx, "stranger", "author-1", pagination.Params{Page: 1, Limit: 20})
		require.NoError(t, err)

		assert.Greater(t, len(own), len(foreign))
	})

	t.Run("only the author deletes a chapter", func(t *testing.T) {
		chapter, err := service.CreateChapter(ctx, "author-1", ChapterInput{
			Title: "Chapter 2", Content: "x", ChapterNumber: 2,
		})
		require.NoError(t, err)

		err = service.DeleteChapter(ctx, "intruder", chapter.ID)
		require.Error(t, err)
		assert.Contains(t, chapterRepo.chapters, chapter.ID)

		require.NoError(t, service.DeleteChapter(ctx, "author-1", chapter.ID))
		assert.NotContains(t, chapterRepo.chapters, chapter.ID)
	})
}
