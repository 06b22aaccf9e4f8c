// Copyright (c) 2026 BoiBritto. All rights reserved.

/*
PostgreSQL implementation of the collection repository.

The combined PATCH is the interesting part: membership inserts use
'INSERT ... ON CONFLICT DO NOTHING' against the (collectionid, volumeid)
primary key and membership deletes are bare DELETEs, so both structural
operations are single atomic statements and naturally idempotent. The
whole patch, structural statements first, runs inside one transaction.
*/
package collection

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

// postgresRepository implements [Repository] using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL backed collection store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, letting the
// read helpers run inside or outside a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (repository *postgresRepository) FindByID(ctx context.Context, id string) (*Collection, error) {
	return findByID(ctx, repository.pool, id)
}

func findByID(ctx context.Context, db querier, id string) (*Collection, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.LibraryCollection.ID,
		schema.LibraryCollection.OwnerID,
		schema.LibraryCollection.Title,
		schema.LibraryCollection.Description,
		schema.LibraryCollection.Tags,
		schema.LibraryCollection.Visibility,
		schema.LibraryCollection.CreatedAt,
		schema.LibraryCollection.UpdatedAt,
		schema.LibraryCollection.Table,
		schema.LibraryCollection.ID,
	)

	collection := &Collection{}
	err := db.QueryRow(ctx, query, id).Scan(
		&collection.ID,
		&collection.UserID,
		&collection.Title,
		&collection.Description,
		&collection.Tags,
		&collection.Visibility,
		&collection.CreatedAt,
		&collection.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Collection")
		}
		return nil, fmt.Errorf("postgres_collection_find_failed: %w", err)
	}

	// Load memberships, oldest additions first.
	booksQuery := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC`,
		schema.LibraryCollectionBook.VolumeID,
		schema.LibraryCollectionBook.AddedAt,
		schema.LibraryCollectionBook.Table,
		schema.LibraryCollectionBook.CollectionID,
		schema.LibraryCollectionBook.AddedAt,
	)

	rows, err := db.Query(ctx, booksQuery, id)
	if err != nil {
		return nil, fmt.Errorf("postgres_collection_books_failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var book Book
		if err := rows.Scan(&book.VolumeID, &book.AddedAt); err != nil {
			return nil, fmt.Errorf("postgres_collection_book_scan_failed: %w", err)
		}
		collection.Books = append(collection.Books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_collection_book_rows_failed: %w", err)
	}

	collection.BookCount = len(collection.Books)
	return collection, nil
}

func (repository *postgresRepository) ListByOwner(ctx context.Context, ownerID string, publicOnly bool, limit, offset int) ([]*Collection, int, error) {

	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
			(SELECT COUNT(*) FROM %s b WHERE b.%s = c.%s) AS book_count,
			COUNT(*) OVER() AS total_count
		FROM %s c
		WHERE c.%s = $1`,
		schema.LibraryCollection.ID,
		schema.LibraryCollection.OwnerID,
		schema.LibraryCollection.Title,
		schema.LibraryCollection.Description,
		schema.LibraryCollection.Tags,
		schema.LibraryCollection.Visibility,
		schema.LibraryCollection.CreatedAt,
		schema.LibraryCollection.UpdatedAt,
		schema.LibraryCollectionBook.Table,
		schema.LibraryCollectionBook.CollectionID,
		schema.LibraryCollection.ID,
		schema.LibraryCollection.Table,
		schema.LibraryCollection.OwnerID,
	))
	args = append(args, ownerID)

	if publicOnly {
		args = append(args, string(visibility.Public))
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s = $%d", schema.LibraryCollection.Visibility, len(args)))
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY c.%s DESC", schema.LibraryCollection.CreatedAt))

	args = append(args, limit)
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	args = append(args, offset)
	queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_collection_list_failed: %w", err)
	}
	defer rows.Close()

	var collections []*Collection
	var totalCount int

	for rows.Next() {
		collection := &Collection{}
		err := rows.Scan(
			&collection.ID,
			&collection.UserID,
			&collection.Title,
			&collection.Description,
			&collection.Tags,
			&collection.Visibility,
			&collection.CreatedAt,
			&collection.UpdatedAt,
			&collection.BookCount,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_collection_scan_failed: %w", err)
		}
		collections = append(collections, collection)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_collection_rows_failed: %w", err)
	}

	return collections, totalCount, nil
}

func (repository *postgresRepository) Create(ctx context.Context, collection *Collection) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		schema.LibraryCollection.Table,
		strings.Join(schema.LibraryCollection.Columns(), ", "))

	now := time.Now()
	collection.CreatedAt = now
	collection.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		collection.ID,
		collection.UserID,
		collection.Title,
		collection.Description,
		collection.Tags,
		collection.Visibility,
		collection.CreatedAt,
		collection.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_collection_create_failed: %w", err)
	}

	return nil
}

/*
ApplyPatch applies one combined edit inside a single transaction.

Order is fixed: membership insert, membership delete, then metadata.
A patch adding and removing the same volume therefore nets to absent,
which matches how the two statements would compose if issued serially.

Parameters:
  - ctx: context.Context
  - id: string (collection id, ownership already verified by the service)
  - patch: Patch (structural and metadata changes)

Returns:
  - *Collection: The post-patch collection, books loaded
*/
func (repository *postgresRepository) ApplyPatch(ctx context.Context, id string, patch Patch) (*Collection, error) {
	tx, err := repository.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("postgres_collection_patch_begin_failed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// ── 1. Structural: add membership ─────────────────────────────────────

	if patch.AddBook != nil {
		insertQuery := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s)
			VALUES ($1, $2, $3)
			ON CONFLICT (%s, %s) DO NOTHING`,
			schema.LibraryCollectionBook.Table,
			schema.LibraryCollectionBook.CollectionID,
			schema.LibraryCollectionBook.VolumeID,
			schema.LibraryCollectionBook.AddedAt,
			schema.LibraryCollectionBook.CollectionID,
			schema.LibraryCollectionBook.VolumeID,
		)
		if _, err := tx.Exec(ctx, insertQuery, id, *patch.AddBook, time.Now()); err != nil {
			return nil, fmt.Errorf("postgres_collection_add_book_failed: %w", err)
		}
	}

	// ── 2. Structural: remove membership ──────────────────────────────────

	if patch.RemoveBook != nil {
		deleteQuery := fmt.Sprintf(`
			DELETE FROM %s
			WHERE %s = $1 AND %s = $2`,
			schema.LibraryCollectionBook.Table,
			schema.LibraryCollectionBook.CollectionID,
			schema.LibraryCollectionBook.VolumeID,
		)
		if _, err := tx.Exec(ctx, deleteQuery, id, *patch.RemoveBook); err != nil {
			return nil, fmt.Errorf("postgres_collection_remove_book_failed: %w", err)
		}
	}

	// ── 3. Metadata ───────────────────────────────────────────────────────

	setClauses := []string{fmt.Sprintf("%s = $2", schema.LibraryCollection.UpdatedAt)}
	args := []any{id, time.Now()}

	appendSet := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		appendSet(schema.LibraryCollection.Title, *patch.Title)
	}
	if patch.Description != nil {
		appendSet(schema.LibraryCollection.Description, *patch.Description)
	}
	if patch.Tags != nil {
		appendSet(schema.LibraryCollection.Tags, *patch.Tags)
	}
	if patch.Visibility != nil {
		appendSet(schema.LibraryCollection.Visibility, string(*patch.Visibility))
	}

	updateQuery := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1`,
		schema.LibraryCollection.Table,
		strings.Join(setClauses, ", "),
		schema.LibraryCollection.ID,
	)
	if _, err := tx.Exec(ctx, updateQuery, args...); err != nil {
		return nil, fmt.Errorf("postgres_collection_patch_update_failed: %w", err)
	}

	// ── 4. Echo the post-patch state ──────────────────────────────────────

	patched, err := findByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("postgres_collection_patch_commit_failed: %w", err)
	}

	return patched, nil
}

func (repository *postgresRepository) Delete(ctx context.Context, id string) error {
	// Memberships go first; no FK cascade is assumed here.
	tx, err := repository.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("postgres_collection_delete_begin_failed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	booksQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.LibraryCollectionBook.Table, schema.LibraryCollectionBook.CollectionID)
	if _, err := tx.Exec(ctx, booksQuery, id); err != nil {
		return fmt.Errorf("postgres_collection_delete_books_failed: %w", err)
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.LibraryCollection.Table, schema.LibraryCollection.ID)
	if _, err := tx.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("postgres_collection_delete_failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres_collection_delete_commit_failed: %w", err)
	}

	return nil
}
