// Copyright (c) 2026 BoiBritto. All rights reserved.

// PostgreSQL implementation of the discussion and comment repositories.
package discussion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SillyCatto/boibritto-sub001/internal/platform/apperr"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/database/schema"
	"github.com/SillyCatto/boibritto-sub001/internal/visibility"
)

// # Discussion Repository

type postgresDiscussionRepository struct {
	pool *pgxpool.Pool
}

// NewDiscussionRepository creates a PostgreSQL backed discussion store.
func NewDiscussionRepository(pool *pgxpool.Pool) DiscussionRepository {
	return &postgresDiscussionRepository{pool: pool}
}

func discussionColumns() string {
	return strings.Join(schema.SocialDiscussion.Columns(), ", ")
}

func scanDiscussion(row pgx.Row) (*Discussion, error) {
	thread := &Discussion{}
	err := row.Scan(
		&thread.ID,
		&thread.UserID,
		&thread.Title,
		&thread.Content,
		&thread.SpoilerAlert,
		&thread.Visibility,
		&thread.CreatedAt,
		&thread.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return thread, nil
}

func (repository *postgresDiscussionRepository) FindByID(ctx context.Context, id string) (*Discussion, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		discussionColumns(), schema.SocialDiscussion.Table, schema.SocialDiscussion.ID)

	thread, err := scanDiscussion(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Discussion")
		}
		return nil, fmt.Errorf("postgres_discussion_find_failed: %w", err)
	}

	return thread, nil
}

func (repository *postgresDiscussionRepository) ListPublic(ctx context.Context, limit, offset int) ([]*Discussion, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3`,
		discussionColumns(), schema.SocialDiscussion.Table,
		schema.SocialDiscussion.Visibility, schema.SocialDiscussion.CreatedAt)

	return repository.queryDiscussions(ctx, query, string(visibility.Public), limit, offset)
}

func (repository *postgresDiscussionRepository) ListByAuthor(ctx context.Context, authorID string, publicOnly bool, limit, offset int) ([]*Discussion, int, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1`,
		discussionColumns(), schema.SocialDiscussion.Table, schema.SocialDiscussion.AuthorID))
	args = append(args, authorID)

	if publicOnly {
		args = append(args, string(visibility.Public))
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.SocialDiscussion.Visibility, len(args)))
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC", schema.SocialDiscussion.CreatedAt))
	args = append(args, limit)
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	args = append(args, offset)
	queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))

	return repository.queryDiscussions(ctx, queryBuilder.String(), args...)
}

func (repository *postgresDiscussionRepository) queryDiscussions(ctx context.Context, query string, args ...any) ([]*Discussion, int, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_discussion_list_failed: %w", err)
	}
	defer rows.Close()

	var discussions []*Discussion
	var totalCount int

	for rows.Next() {
		thread := &Discussion{}
		err := rows.Scan(
			&thread.ID,
			&thread.UserID,
			&thread.Title,
			&thread.Content,
			&thread.SpoilerAlert,
			&thread.Visibility,
			&thread.CreatedAt,
			&thread.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_discussion_scan_failed: %w", err)
		}
		discussions = append(discussions, thread)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_discussion_rows_failed: %w", err)
	}

	return discussions, totalCount, nil
}

func (repository *postgresDiscussionRepository) Create(ctx context.Context, discussion *Discussion) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		schema.SocialDiscussion.Table, discussionColumns())

	now := time.Now()
	discussion.CreatedAt = now
	discussion.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		discussion.ID,
		discussion.UserID,
		discussion.Title,
		discussion.Content,
		discussion.SpoilerAlert,
		discussion.Visibility,
		discussion.CreatedAt,
		discussion.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_discussion_create_failed: %w", err)
	}

	return nil
}

func (repository *postgresDiscussionRepository) Update(ctx context.Context, discussion *Discussion) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $1`,
		schema.SocialDiscussion.Table,
		schema.SocialDiscussion.Title,
		schema.SocialDiscussion.Content,
		schema.SocialDiscussion.SpoilerAlert,
		schema.SocialDiscussion.Visibility,
		schema.SocialDiscussion.UpdatedAt,
		schema.SocialDiscussion.ID,
	)

	discussion.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query,
		discussion.ID,
		discussion.Title,
		discussion.Content,
		discussion.SpoilerAlert,
		discussion.Visibility,
		discussion.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_discussion_update_failed: %w", err)
	}

	return nil
}

func (repository *postgresDiscussionRepository) Delete(ctx context.Context, id string) error {
	tx, err := repository.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("postgres_discussion_delete_begin_failed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	commentsQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.SocialComment.Table, schema.SocialComment.DiscussionID)
	if _, err := tx.Exec(ctx, commentsQuery, id); err != nil {
		return fmt.Errorf("postgres_discussion_delete_comments_failed: %w", err)
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.SocialDiscussion.Table, schema.SocialDiscussion.ID)
	if _, err := tx.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("postgres_discussion_delete_failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres_discussion_delete_commit_failed: %w", err)
	}

	return nil
}

// # Comment Repository

type postgresCommentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a PostgreSQL backed comment store.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &postgresCommentRepository{pool: pool}
}

func commentColumns() string {
	return strings.Join(schema.SocialComment.Columns(), ", ")
}

func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{}
	err := row.Scan(
		&comment.ID,
		&comment.DiscussionID,
		&comment.UserID,
		&comment.ParentCommentID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (repository *postgresCommentRepository) FindByID(ctx context.Context, id string) (*Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		commentColumns(), schema.SocialComment.Table, schema.SocialComment.ID)

	comment, err := scanComment(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, fmt.Errorf("postgres_comment_find_failed: %w", err)
	}

	return comment, nil
}

/*
ListByDiscussion retrieves one page of a discussion's threaded comments.

Description: Pages over top-level comments, oldest first, then fetches
the replies of the whole page in a second query and stitches them under
their parents. Two round-trips total, independent of page size.

Parameters:
  - ctx: context.Context
  - discussionID: string
  - limit, offset: page bounds over top-level comments

Returns:
  - []*Comment: Top-level comments with Replies populated
  - int: Total top-level comments in the discussion
*/
func (repository *postgresCommentRepository) ListByDiscussion(ctx context.Context, discussionID string, limit, offset int) ([]*Comment, int, error) {

	// ── 1. Page of top-level comments ─────────────────────────────────────

	topQuery := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1 AND %s IS NULL
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3`,
		commentColumns(), schema.SocialComment.Table,
		schema.SocialComment.DiscussionID, schema.SocialComment.ParentID,
		schema.SocialComment.CreatedAt)

	rows, err := repository.pool.Query(ctx, topQuery, discussionID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_list_failed: %w", err)
	}
	defer rows.Close()

	var topLevel []*Comment
	byID := make(map[string]*Comment)
	var totalCount int

	for rows.Next() {
		comment := &Comment{}
		err := rows.Scan(
			&comment.ID,
			&comment.DiscussionID,
			&comment.UserID,
			&comment.ParentCommentID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_comment_scan_failed: %w", err)
		}
		topLevel = append(topLevel, comment)
		byID[comment.ID] = comment
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_rows_failed: %w", err)
	}

	if len(topLevel) == 0 {
		return topLevel, totalCount, nil
	}

	// ── 2. Replies for the whole page ─────────────────────────────────────

	parentIDs := make([]string, 0, len(topLevel))
	for _, comment := range topLevel {
		parentIDs = append(parentIDs, comment.ID)
	}

	replyQuery := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = ANY($1)
		ORDER BY %s ASC`,
		commentColumns(), schema.SocialComment.Table,
		schema.SocialComment.ParentID, schema.SocialComment.CreatedAt)

	replyRows, err := repository.pool.Query(ctx, replyQuery, parentIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_replies_failed: %w", err)
	}
	defer replyRows.Close()

	for replyRows.Next() {
		reply, err := scanCommentFromRows(replyRows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_comment_reply_scan_failed: %w", err)
		}
		if parent, ok := byID[*reply.ParentCommentID]; ok {
			parent.Replies = append(parent.Replies, reply)
		}
	}
	if err := replyRows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_reply_rows_failed: %w", err)
	}

	return topLevel, totalCount, nil
}

func scanCommentFromRows(rows pgx.Rows) (*Comment, error) {
	comment := &Comment{}
	err := rows.Scan(
		&comment.ID,
		&comment.DiscussionID,
		&comment.UserID,
		&comment.ParentCommentID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (repository *postgresCommentRepository) Create(ctx context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.SocialComment.Table, commentColumns())

	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		comment.ID,
		comment.DiscussionID,
		comment.UserID,
		comment.ParentCommentID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_comment_create_failed: %w", err)
	}

	return nil
}

func (repository *postgresCommentRepository) Delete(ctx context.Context, id string) error {
	tx, err := repository.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("postgres_comment_delete_begin_failed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Replies of a deleted top-level comment go with it.
	repliesQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.SocialComment.Table, schema.SocialComment.ParentID)
	if _, err := tx.Exec(ctx, repliesQuery, id); err != nil {
		return fmt.Errorf("postgres_comment_delete_replies_failed: %w", err)
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.SocialComment.Table, schema.SocialComment.ID)
	if _, err := tx.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("postgres_comment_delete_failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres_comment_delete_commit_failed: %w", err)
	}

	return nil
}
