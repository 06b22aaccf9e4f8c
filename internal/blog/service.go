// Copyright (c) 2026 BoiBritto. All rights reserved.

package blog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SillyCatto/boibritto-sub001/internal/platform/apperr"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/validate"
	"github.com/SillyCatto/boibritto-sub001/internal/visibility"
	"github.com/SillyCatto/boibritto-sub001/pkg/pagination"
	"github.com/SillyCatto/boibritto-sub001/pkg/slug"
	"github.com/SillyCatto/boibritto-sub001/pkg/uuidv7"
)

const (
	maxTitleLen   = 200
	maxContentLen = 50000
)

// Service implements the blog and chapter use cases.
type Service struct {
	blogRepository    BlogRepository
	chapterRepository ChapterRepository
	logger            *slog.Logger
}

// NewService constructs a blog [Service].
func NewService(blogRepo BlogRepository, chapterRepo ChapterRepository, logger *slog.Logger) *Service {
	return &Service{
		blogRepository:    blogRepo,
		chapterRepository: chapterRepo,
		logger:            logger,
	}
}

// # Blog Reads

// GetBlog returns one blog. Non-public blogs are visible to their author
// only and reported as 404 to everyone else.
func (service *Service) GetBlog(ctx context.Context, viewerID, blogID string) (*Blog, error) {
	entry, err := service.blogRepository.FindByID(ctx, blogID)
	if err != nil {
		return nil, err
	}

	if entry.UserID != viewerID && entry.Visibility != visibility.Public {
		return nil, apperr.NotFound("Blog")
	}

	return entry, nil
}

// ListPublicBlogs returns one page of the site-wide public blog feed.
func (service *Service) ListPublicBlogs(ctx context.Context, page pagination.Params) ([]*Blog, pagination.Meta, error) {
	blogs, total, err := service.blogRepository.ListPublic(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("blog_service_list_public_failed: %w", err)
	}

	return blogs, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// ListOwnBlogs returns one page of the caller's own blogs, all visibilities.
func (service *Service) ListOwnBlogs(ctx context.Context, userID string, page pagination.Params) ([]*Blog, pagination.Meta, error) {
	blogs, total, err := service.blogRepository.ListByAuthor(ctx, userID, false, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("blog_service_list_own_failed: %w", err)
	}

	return blogs, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// # Blog Mutations

// BlogInput holds the writable blog fields.
type BlogInput struct {
	Title        string
	Content      string
	SpoilerAlert bool
	Visibility   visibility.Visibility
}

func (input *BlogInput) validate() error {
	v := &validate.Validator{}
	v.Required("title", input.Title)
	v.MaxLen("title", input.Title, maxTitleLen)
	v.Required("content", input.Content)
	v.MaxLen("content", input.Content, maxContentLen)

	if err := v.Err(); err != nil {
		return err
	}

	if input.Visibility == "" {
		input.Visibility = visibility.Public
	}
	if !visibility.Valid(string(input.Visibility)) {
		return apperr.ValidationFailed("Visibility must be one of: public, private, friends")
	}

	return nil
}

// CreateBlog publishes a new blog by the caller. The slug is derived
// from the title once, with the id tail appended to keep slugs unique
// without a reservation table.
func (service *Service) CreateBlog(ctx context.Context, userID string, input BlogInput) (*Blog, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	id := uuidv7.New()
	entry := &Blog{
		ID:           id,
		UserID:       userID,
		Title:        input.Title,
		Slug:         slug.From(input.Title) + "-" + id[len(id)-8:],
		Content:      input.Content,
		SpoilerAlert: input.SpoilerAlert,
		Visibility:   input.Visibility,
	}

	if err := service.blogRepository.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("blog_service_create_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "blog_published",
		slog.String("user_id", userID),
		slog.String("blog_id", entry.ID),
		slog.String("slug", entry.Slug),
	)

	return entry, nil
}

// UpdateBlogInput describes a partial blog edit.
type UpdateBlogInput struct {
	Title        *string
	Content      *string
	SpoilerAlert *bool
	Visibility   *visibility.Visibility
}

// UpdateBlog edits a blog owned by the caller. The slug is untouched
// even when the title changes.
func (service *Service) UpdateBlog(ctx context.Context, userID, blogID string, input UpdateBlogInput) (*Blog, error) {
	entry, err := service.blogRepository.FindByID(ctx, blogID)
	if err != nil {
		return nil, err
	}

	if entry.UserID != userID {
		return nil, apperr.Forbidden("You do not own this blog")
	}

	if input.Title != nil {
		entry.Title = *input.Title
	}
	if input.Content != nil {
		entry.Content = *input.Content
	}
	if input.SpoilerAlert != nil {
		entry.SpoilerAlert = *input.SpoilerAlert
	}
	if input.Visibility != nil {
		entry.Visibility = *input.Visibility
	}

	merged := BlogInput{
		Title:      entry.Title,
		Content:    entry.Content,
		Visibility: entry.Visibility,
	}
	if err := merged.validate(); err != nil {
		return nil, err
	}

	if err := service.blogRepository.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("blog_service_update_failed: %w", err)
	}

	return entry, nil
}

// DeleteBlog removes a blog owned by the caller.
func (service *Service) DeleteBlog(ctx context.Context, userID, blogID string) error {
	entry, err := service.blogRepository.FindByID(ctx, blogID)
	if err != nil {
		return err
	}

	if entry.UserID != userID {
		return apperr.Forbidden("You do not own this blog")
	}

	if err := service.blogRepository.Delete(ctx, blogID); err != nil {
		return fmt.Errorf("blog_service_delete_failed: %w", err)
	}

	return nil
}

// # Chapter Reads

// GetChapter returns one chapter under the same visibility gating as blogs.
func (service *Service) GetChapter(ctx context.Context, viewerID, chapterID string) (*Chapter, error) {
	chapter, err := service.chapterRepository.FindByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	if chapter.UserID != viewerID && chapter.Visibility != visibility.Public {
		return nil, apperr.NotFound("Chapter")
	}

	return chapter, nil
}

// ListChaptersByAuthor returns one page of a member's chapters in
// chapter order. The author sees everything; others see public only.
func (service *Service) ListChaptersByAuthor(ctx context.Context, viewerID, authorID string, page pagination.Params) ([]*Chapter, pagination.Meta, error) {
	publicOnly := viewerID != authorID

	chapters, total, err := service.chapterRepository.ListByAuthor(ctx, authorID, publicOnly, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("blog_service_list_chapters_failed: %w", err)
	}

	return chapters, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// # Chapter Mutations

// ChapterInput holds the writable chapter fields.
type ChapterInput struct {
	Title         string
	Content       string
	ChapterNumber int
	SpoilerAlert  bool
	Visibility    visibility.Visibility
}

func (input *ChapterInput) validate() error {
	v := &validate.Validator{}
	v.Required("title", input.Title)
	v.MaxLen("title", input.Title, maxTitleLen)
	v.Required("content", input.Content)
	v.MaxLen("content", input.Content, maxContentLen)

	if err := v.Err(); err != nil {
		return err
	}

	if input.ChapterNumber < 0 {
		return apperr.ValidationFailed("chapterNumber cannot be negative")
	}

	if input.Visibility == "" {
		input.Visibility = visibility.Public
	}
	if !visibility.Valid(string(input.Visibility)) {
		return apperr.ValidationFailed("Visibility must be one of: public, private, friends")
	}

	return nil
}

// CreateChapter publishes a new chapter by the caller.
func (service *Service) CreateChapter(ctx context.Context, userID string, input ChapterInput) (*Chapter, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	chapter := &Chapter{
		ID:            uuidv7.New(),
		UserID:        userID,
		Title:         input.Title,
		Content:       input.Content,
		ChapterNumber: input.ChapterNumber,
		SpoilerAlert:  input.SpoilerAlert,
		Visibility:    input.Visibility,
	}

	if err := service.chapterRepository.Create(ctx, chapter); err != nil {
		return nil, fmt.Errorf("blog_service_create_chapter_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "chapter_published",
		slog.String("user_id", userID),
		slog.String("chapter_id", chapter.ID),
		slog.Int("chapter_number", chapter.ChapterNumber),
	)

	return chapter, nil
}

// UpdateChapterInput describes a partial chapter edit.
type UpdateChapterInput struct {
	Title         *string
	Content       *string
	ChapterNumber *int
	SpoilerAlert  *bool
	Visibility    *visibility.Visibility
}

// UpdateChapter edits a chapter owned by the caller.
func (service *Service) UpdateChapter(ctx context.Context, userID, chapterID string, input UpdateChapterInput) (*Chapter, error) {
	chapter, err := service.chapterRepository.FindByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	if chapter.UserID != userID {
		return nil, apperr.Forbidden("You do not own this chapter")
	}

	if input.Title != nil {
		chapter.Title = *input.Title
	}
	if input.Content != nil {
		chapter.Content = *input.Content
	}
	if input.ChapterNumber != nil {
		chapter.ChapterNumber = *input.ChapterNumber
	}
	if input.SpoilerAlert != nil {
		chapter.SpoilerAlert = *input.SpoilerAlert
	}
	if input.Visibility != nil {
		chapter.Visibility = *input.Visibility
	}

	merged := ChapterInput{
		Title:         chapter.Title,
		Content:       chapter.Content,
		ChapterNumber: chapter.ChapterNumber,
		Visibility:    chapter.Visibility,
	}
	if err := merged.validate(); err != nil {
		return nil, err
	}

	if err := service.chapterRepository.Update(ctx, chapter); err != nil {
		return nil, fmt.Errorf("blog_service_update_chapter_failed: %w", err)
	}

	return chapter, nil
}

// DeleteChapter removes a chapter owned by the caller.
func (service *Service) DeleteChapter(ctx context.Context, userID, chapterID string) error {
	chapter, err := service.chapterRepository.FindByID(ctx, chapterID)
	if err != nil {
		return err
	}

	if chapter.UserID != userID {
		return apperr.Forbidden("You do not own this chapter")
	}

	if err := service.chapterRepository.Delete(ctx, chapterID); err != nil {
		return fmt.Errorf("blog_service_delete_chapter_failed: %w", err)
	}

	return nil
}
