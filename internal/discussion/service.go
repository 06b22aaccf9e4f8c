// Copyright (c) 2026 BoiBritto. All rights reserved.

package discussion

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

const (
	maxTitleLen   = 200
	maxContentLen = 10000
	maxCommentLen = 2000
)

// Service implements the discussion and comment use cases.
type Service struct {
	discussionRepository DiscussionRepository
	commentRepository    CommentRepository
	logger               *slog.Logger
}

// NewService constructs a discussion [Service].
func NewService(discussionRepo DiscussionRepository, commentRepo CommentRepository, logger *slog.Logger) *Service {
	return &Service{
		discussionRepository: discussionRepo,
		commentRepository:    commentRepo,
		logger:               logger,
	}
}

// # Discussion Reads

// Get returns one discussion. Non-public threads are author-only and
// reported as 404 to everyone else.
func (service *Service) Get(ctx context.Context, viewerID, discussionID string) (*Discussion, error) {
	thread, err := service.discussionRepository.FindByID(ctx, discussionID)
	if err != nil {
		return nil, err
	}

	if thread.UserID != viewerID && thread.Visibility != visibility.Public {
		return nil, apperr.NotFound("Discussion")
	}

	return thread, nil
}

// ListPublic returns one page of the public discussion feed.
func (service *Service) ListPublic(ctx context.Context, page pagination.Params) ([]*Discussion, pagination.Meta, error) {
	discussions, total, err := service.discussionRepository.ListPublic(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("discussion_service_list_public_failed: %w", err)
	}

	return discussions, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// ListOwn returns one page of the caller's own discussions.
func (service *Service) ListOwn(ctx context.Context, userID string, page pagination.Params) ([]*Discussion, pagination.Meta, error) {
	discussions, total, err := service.discussionRepository.ListByAuthor(ctx, userID, false, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("discussion_service_list_own_failed: %w", err)
	}

	return discussions, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// # Discussion Mutations

// DiscussionInput holds the writable thread fields.
type DiscussionInput struct {
	Title        string
	Content      string
	SpoilerAlert bool
	Visibility   visibility.Visibility
}

func (input *DiscussionInput) validate() error {
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

// Create starts a new discussion owned by the caller.
func (service *Service) Create(ctx context.Context, userID string, input DiscussionInput) (*Discussion, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	thread := &Discussion{
		ID:           uuidv7.New(),
		UserID:       userID,
		Title:        input.Title,
		Content:      input.Content,
		SpoilerAlert: input.SpoilerAlert,
		Visibility:   input.Visibility,
	}

	if err := service.discussionRepository.Create(ctx, thread); err != nil {
		return nil, fmt.Errorf("discussion_service_create_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "discussion_started",
		slog.String("user_id", userID),
		slog.String("discussion_id", thread.ID),
	)

	return thread, nil
}

// UpdateInput describes a partial discussion edit.
type UpdateInput struct {
	Title        *string
	Content      *string
	SpoilerAlert *bool
	Visibility   *visibility.Visibility
}

// Update edits a discussion owned by the caller.
func (service *Service) Update(ctx context.Context, userID, discussionID string, input UpdateInput) (*Discussion, error) {
	thread, err := service.discussionRepository.FindByID(ctx, discussionID)
	if err != nil {
		return nil, err
	}

	if thread.UserID != userID {
		return nil, apperr.Forbidden("You do not own this discussion")
	}

	if input.Title != nil {
		thread.Title = *input.Title
	}
	if input.Content != nil {
		thread.Content = *input.Content
	}
	if input.SpoilerAlert != nil {
		thread.SpoilerAlert = *input.SpoilerAlert
	}
	if input.Visibility != nil {
		thread.Visibility = *input.Visibility
	}

	merged := DiscussionInput{
		Title:      thread.Title,
		Content:    thread.Content,
		Visibility: thread.Visibility,
	}
	if err := merged.validate(); err != nil {
		return nil, err
	}

	if err := service.discussionRepository.Update(ctx, thread); err != nil {
		return nil, fmt.Errorf("discussion_service_update_failed: %w", err)
	}

	return thread, nil
}

// Delete removes a discussion owned by the caller, comments included.
func (service *Service) Delete(ctx context.Context, userID, discussionID string) error {
	thread, err := service.discussionRepository.FindByID(ctx, discussionID)
	if err != nil {
		return err
	}

	if thread.UserID != userID {
		return apperr.Forbidden("You do not own this discussion")
	}

	if err := service.discussionRepository.Delete(ctx, discussionID); err != nil {
		return fmt.Errorf("discussion_service_delete_failed: %w", err)
	}

	return nil
}

// # Comments

// ListComments returns one page of a discussion's threaded comments.
// The discussion's visibility gating applies first.
func (service *Service) ListComments(ctx context.Context, viewerID, discussionID string, page pagination.Params) ([]*Comment, pagination.Meta, error) {
	if _, err := service.Get(ctx, viewerID, discussionID); err != nil {
		return nil, pagination.Meta{}, err
	}

	comments, total, err := service.commentRepository.ListByDiscussion(ctx, discussionID, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("discussion_service_list_comments_failed: %w", err)
	}

	return comments, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// CommentInput holds the fields for a new comment.
type CommentInput struct {
	Content         string
	ParentCommentID *string
}

// AddComment posts a comment in a discussion.
//
// # Threading Rules
//   - A parent, when given, must exist.
//   - The parent must belong to the same discussion.
//   - The parent must itself be top-level: one reply level only.
func (service *Service) AddComment(ctx context.Context, userID, discussionID string, input CommentInput) (*Comment, error) {
	// ── 1. Payload Validation ─────────────────────────────────────────────

	v := &validate.Validator{}
	v.Required("content", input.Content)
	v.MaxLen("content", input.Content, maxCommentLen)

	if err := v.Err(); err != nil {
		return nil, err
	}

	// ── 2. Discussion Gating ──────────────────────────────────────────────

	if _, err := service.Get(ctx, userID, discussionID); err != nil {
		return nil, err
	}

	// ── 3. Threading Rules ────────────────────────────────────────────────

	if input.ParentCommentID != nil {
		parent, err := service.commentRepository.FindByID(ctx, *input.ParentCommentID)
		if err != nil {
			return nil, apperr.ValidationFailed("Parent comment does not exist")
		}

		if parent.DiscussionID != discussionID {
			return nil, apperr.ValidationFailed("Parent comment belongs to a different discussion")
		}

		if !parent.TopLevel() {
			return nil, apperr.ValidationFailed("Replies cannot be nested more than one level")
		}
	}

	// ── 4. Persistence ────────────────────────────────────────────────────

	comment := &Comment{
		ID:              uuidv7.New(),
		DiscussionID:    discussionID,
		UserID:          userID,
		ParentCommentID: input.ParentCommentID,
		Content:         input.Content,
	}

	if err := service.commentRepository.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("discussion_service_add_comment_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "comment_posted",
		slog.String("user_id", userID),
		slog.String("discussion_id", discussionID),
		slog.Bool("reply", input.ParentCommentID != nil),
	)

	return comment, nil
}

// DeleteComment removes a comment owned by the caller. Deleting a
// top-level comment removes its replies with it.
func (service *Service) DeleteComment(ctx context.Context, userID, commentID string) error {
	comment, err := service.commentRepository.FindByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		return apperr.Forbidden("You do not own this comment")
	}

	if err := service.commentRepository.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("discussion_service_delete_comment_failed: %w", err)
	}

	return nil
}
