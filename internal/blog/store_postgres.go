// Copyright (c) 2026 BoiBritto. All rights reserved.

// PostgreSQL implementation of the blog and chapter repositories.
package blog

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

// # Blog Repository

type postgresBlogRepository struct {
	pool *pgxpool.Pool
}

// NewBlogRepository creates a PostgreSQL backed blog store.
func NewBlogRepository(pool *pgxpool.Pool) BlogRepository {
	return &postgresBlogRepository{pool: pool}
}

func blogColumns() string {
	return strings.Join(schema.ContentBlog.Columns(), ", ")
}

func scanBlog(row pgx.Row) (*Blog, error) {
	entry := &Blog{}
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Title,
		&entry.Slug,
		&entry.Content,
		&entry.SpoilerAlert,
		&entry.Visibility,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (repository *postgresBlogRepository) FindByID(ctx context.Context, id string) (*Blog, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		blogColumns(), schema.ContentBlog.Table, schema.ContentBlog.ID)

	entry, err := scanBlog(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Blog")
		}
		return nil, fmt.Errorf("postgres_blog_find_failed: %w", err)
	}

	return entry, nil
}

func (repository *postgresBlogRepository) ListPublic(ctx context.Context, limit, offset int) ([]*Blog, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3`,
		blogColumns(), schema.ContentBlog.Table,
		schema.ContentBlog.Visibility, schema.ContentBlog.CreatedAt)

	return repository.queryBlogs(ctx, query, string(visibility.Public), limit, offset)
}

func (repository *postgresBlogRepository) ListByAuthor(ctx context.Context, authorID string, publicOnly bool, limit, offset int) ([]*Blog, int, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1`,
		blogColumns(), schema.ContentBlog.Table, schema.ContentBlog.AuthorID))
	args = append(args, authorID)

	if publicOnly {
		args = append(args, string(visibility.Public))
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.ContentBlog.Visibility, len(args)))
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC", schema.ContentBlog.CreatedAt))
	args = append(args, limit)
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	args = append(args, offset)
	queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))

	return repository.queryBlogs(ctx, queryBuilder.String(), args...)
}

func (repository *postgresBlogRepository) queryBlogs(ctx context.Context, query string, args ...any) ([]*Blog, int, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_blog_list_failed: %w", err)
	}
	defer rows.Close()

	var blogs []*Blog
	var totalCount int

	for rows.Next() {
		entry := &Blog{}
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Title,
			&entry.Slug,
			&entry.Content,
			&entry.SpoilerAlert,
			&entry.Visibility,
			&entry.CreatedAt,
			&entry.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_blog_scan_failed: %w", err)
		}
		blogs = append(blogs, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_blog_rows_failed: %w", err)
	}

	return blogs, totalCount, nil
}

func (repository *postgresBlogRepository) Create(ctx context.Context, blog *Blog) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		schema.ContentBlog.Table, blogColumns())

	now := time.Now()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		blog.ID,
		blog.UserID,
		blog.Title,
		blog.Slug,
		blog.Content,
		blog.SpoilerAlert,
		blog.Visibility,
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_blog_create_failed: %w", err)
	}

	return nil
}

func (repository *postgresBlogRepository) Update(ctx context.Context, blog *Blog) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $1`,
		schema.ContentBlog.Table,
		schema.ContentBlog.Title,
		schema.ContentBlog.Content,
		schema.ContentBlog.SpoilerAlert,
		schema.ContentBlog.Visibility,
		schema.ContentBlog.UpdatedAt,
		schema.ContentBlog.ID,
	)

	blog.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query,
		blog.ID,
		blog.Title,
		blog.Content,
		blog.SpoilerAlert,
		blog.Visibility,
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_blog_update_failed: %w", err)
	}

	return nil
}

func (repository *postgresBlogRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ContentBlog.Table, schema.ContentBlog.ID)

	_, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres_blog_delete_failed: %w", err)
	}

	return nil
}

// # Chapter Repository

type postgresChapterRepository struct {
	pool *pgxpool.Pool
}

// NewChapterRepository creates a PostgreSQL backed chapter store.
func NewChapterRepository(pool *pgxpool.Pool) ChapterRepository {
	return &postgresChapterRepository{pool: pool}
}

func chapterColumns() string {
	return strings.Join(schema.ContentChapter.Columns(), ", ")
}

func scanChapter(row pgx.Row) (*Chapter, error) {
	chapter := &Chapter{}
	err := row.Scan(
		&chapter.ID,
		&chapter.UserID,
		&chapter.Title,
		&chapter.Content,
		&chapter.ChapterNumber,
		&chapter.SpoilerAlert,
		&chapter.Visibility,
		&chapter.CreatedAt,
		&chapter.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return chapter, nil
}

func (repository *postgresChapterRepository) FindByID(ctx context.Context, id string) (*Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		chapterColumns(), schema.ContentChapter.Table, schema.ContentChapter.ID)

	chapter, err := scanChapter(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Chapter")
		}
		return nil, fmt.Errorf("postgres_chapter_find_failed: %w", err)
	}

	return chapter, nil
}

func (repository *postgresChapterRepository) ListByAuthor(ctx context.Context, authorID string, publicOnly bool, limit, offset int) ([]*Chapter, int, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1`,
		chapterColumns(), schema.ContentChapter.Table, schema.ContentChapter.AuthorID))
	args = append(args, authorID)

	if publicOnly {
		args = append(args, string(visibility.Public))
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.ContentChapter.Visibility, len(args)))
	}

	// Serialized writing reads in order.
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s ASC", schema.ContentChapter.ChapterNo))
	args = append(args, limit)
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	args = append(args, offset)
	queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_chapter_list_failed: %w", err)
	}
	defer rows.Close()

	var chapters []*Chapter
	var totalCount int

	for rows.Next() {
		chapter := &Chapter{}
		err := rows.Scan(
			&chapter.ID,
			&chapter.UserID,
			&chapter.Title,
			&chapter.Content,
			&chapter.ChapterNumber,
			&chapter.SpoilerAlert,
			&chapter.Visibility,
			&chapter.CreatedAt,
			&chapter.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_chapter_scan_failed: %w", err)
		}
		chapters = append(chapters, chapter)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_chapter_rows_failed: %w", err)
	}

	return chapters, totalCount, nil
}

func (repository *postgresChapterRepository) Create(ctx context.Context, chapter *Chapter) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		schema.ContentChapter.Table, chapterColumns())

	now := time.Now()
	chapter.CreatedAt = now
	chapter.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		chapter.ID,
		chapter.UserID,
		chapter.Title,
		chapter.Content,
		chapter.ChapterNumber,
		chapter.SpoilerAlert,
		chapter.Visibility,
		chapter.CreatedAt,
		chapter.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_chapter_create_failed: %w", err)
	}

	return nil
}

func (repository *postgresChapterRepository) Update(ctx context.Context, chapter *Chapter) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $1`,
		schema.ContentChapter.Table,
		schema.ContentChapter.Title,
		schema.ContentChapter.Content,
		schema.ContentChapter.ChapterNo,
		schema.ContentChapter.SpoilerAlert,
		schema.ContentChapter.Visibility,
		schema.ContentChapter.UpdatedAt,
		schema.ContentChapter.ID,
	)

	chapter.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query,
		chapter.ID,
		chapter.Title,
		chapter.Content,
		chapter.ChapterNumber,
		chapter.SpoilerAlert,
		chapter.Visibility,
		chapter.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_chapter_update_failed: %w", err)
	}

	return nil
}

func (repository *postgresChapterRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ContentChapter.Table, schema.ContentChapter.ID)

	_, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres_chapter_delete_failed: %w", err)
	}

	return nil
}
