// Copyright (c) 2026 BoiBritto. All rights reserved.

// PostgreSQL implementation of the reading-list repository.
//
// Queries are assembled against the shared schema definitions so column
// renames stay a one-file change.
package readinglist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SillyCatto/boibritto-sub001/internal/platform/apperr"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/database/schema"
	"github.com/SillyCatto/boibritto-sub001/internal/visibility"
)

const pgUniqueViolation = "23505"

// postgresRepository implements [Repository] using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL backed reading-list store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func itemColumns() string {
	return strings.Join(schema.LibraryReadingListItem.Columns(), ", ")
}

// scanItem hydrates an [Item] from a single row.
func scanItem(row pgx.Row) (*Item, error) {
	item := &Item{}
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.VolumeID,
		&item.Status,
		&item.StartedAt,
		&item.CompletedAt,
		&item.Visibility,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (repository *postgresRepository) FindByID(ctx context.Context, id string) (*Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		itemColumns(), schema.LibraryReadingListItem.Table, schema.LibraryReadingListItem.ID)

	item, err := scanItem(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Reading list item")
		}
		return nil, fmt.Errorf("postgres_readinglist_find_failed: %w", err)
	}

	return item, nil
}

func (repository *postgresRepository) FindByUserAndVolume(ctx context.Context, userID, volumeID string) (*Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		itemColumns(), schema.LibraryReadingListItem.Table,
		schema.LibraryReadingListItem.UserID, schema.LibraryReadingListItem.VolumeID)

	item, err := scanItem(repository.pool.QueryRow(ctx, query, userID, volumeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Reading list item")
		}
		return nil, fmt.Errorf("postgres_readinglist_find_by_volume_failed: %w", err)
	}

	return item, nil
}

/*
ListByUser retrieves one page of a member's reading list.

Description: Applies the optional status filter and, for foreign
listings, the public-only restriction. The total count rides along via
a window function so no second COUNT query is needed.

Parameters:
  - ctx: context.Context
  - userID: string (list owner)
  - filter: Filter (status and audience restrictions)

Returns:
  - []*Item: One page of items, newest first
  - int: Total matching items
*/
func (repository *postgresRepository) ListByUser(ctx context.Context, userID string, filter Filter, limit, offset int) ([]*Item, int, error) {

	// Query construction
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1`,
		itemColumns(), schema.LibraryReadingListItem.Table, schema.LibraryReadingListItem.UserID))
	args = append(args, userID)

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.LibraryReadingListItem.Status, len(args)))
	}

	if filter.PublicOnly {
		args = append(args, string(visibility.Public))
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.LibraryReadingListItem.Visibility, len(args)))
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC", schema.LibraryReadingListItem.CreatedAt))

	args = append(args, limit)
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	args = append(args, offset)
	queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))

	// Query execution
	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_readinglist_list_failed: %w", err)
	}
	defer rows.Close()

	// Row iteration and entity hydration
	var items []*Item
	var totalCount int

	for rows.Next() {
		item := &Item{}
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.VolumeID,
			&item.Status,
			&item.StartedAt,
			&item.CompletedAt,
			&item.Visibility,
			&item.CreatedAt,
			&item.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_readinglist_scan_failed: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_readinglist_rows_failed: %w", err)
	}

	return items, totalCount, nil
}

func (repository *postgresRepository) Create(ctx context.Context, item *Item) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		schema.LibraryReadingListItem.Table, itemColumns())

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		item.ID,
		item.UserID,
		item.VolumeID,
		item.Status,
		item.StartedAt,
		item.CompletedAt,
		item.Visibility,
		item.CreatedAt,
		item.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperr.ValidationFailed("This volume is already on your reading list")
		}
		return fmt.Errorf("postgres_readinglist_create_failed: %w", err)
	}

	return nil
}

func (repository *postgresRepository) Update(ctx context.Context, item *Item) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $1`,
		schema.LibraryReadingListItem.Table,
		schema.LibraryReadingListItem.Status,
		schema.LibraryReadingListItem.StartedAt,
		schema.LibraryReadingListItem.CompletedAt,
		schema.LibraryReadingListItem.Visibility,
		schema.LibraryReadingListItem.UpdatedAt,
		schema.LibraryReadingListItem.ID,
	)

	item.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query,
		item.ID,
		item.Status,
		item.StartedAt,
		item.CompletedAt,
		item.Visibility,
		item.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_readinglist_update_failed: %w", err)
	}

	return nil
}

func (repository *postgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.LibraryReadingListItem.Table, schema.LibraryReadingListItem.ID)

	_, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres_readinglist_delete_failed: %w", err)
	}

	return nil
}
