// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yuedu/internal/platform/database/schema"
)

// # PostgreSQL Repository

// progressRepository implements [ProgressRepository] using pgx.
type progressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository constructs a PostgreSQL backed progress store.
func NewProgressRepository(pool *pgxpool.Pool) ProgressRepository {
	return &progressRepository{pool: pool}
}

// Find loads one (user, book) row.
func (repository *progressRepository) Find(context context.Context, userID string, bookID int64) (ReadingProgress, bool, error) {
	table := schema.LibraryReadingProgress
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2`,
		table.Position, table.ReadingTime, table.LastReadAt, table.LastDeviceID,
		table.Table,
		table.UserID, table.BookID,
	)

	progress := ReadingProgress{UserID: userID, BookID: bookID}
	err := repository.pool.QueryRow(context, query, userID, bookID).Scan(
		&progress.Position,
		&progress.ReadingTime,
		&progress.LastReadAt,
		&progress.LastDeviceID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ReadingProgress{}, false, nil
	}
	if err != nil {
		return ReadingProgress{}, false, fmt.Errorf("postgres: failed to find reading progress: %w", err)
	}

	return progress, true, nil
}

// Insert creates a row unless one already exists for the key.
func (repository *progressRepository) Insert(context context.Context, progress ReadingProgress) error {
	table := schema.LibraryReadingProgress
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (%s, %s) DO NOTHING`,
		table.Table,
		table.UserID, table.BookID, table.Position, table.ReadingTime, table.LastReadAt, table.LastDeviceID,
		table.UserID, table.BookID,
	)

	_, err := repository.pool.Exec(context, query,
		progress.UserID, progress.BookID, progress.Position, progress.ReadingTime,
		progress.LastReadAt, progress.LastDeviceID,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to insert reading progress: %w", err)
	}
	return nil
}

// Save overwrites the mutable columns of an existing row.
func (repository *progressRepository) Save(context context.Context, progress ReadingProgress) error {
	table := schema.LibraryReadingProgress
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $1 AND %s = $2`,
		table.Table,
		table.Position, table.ReadingTime, table.LastReadAt, table.LastDeviceID,
		table.UserID, table.BookID,
	)

	_, err := repository.pool.Exec(context, query,
		progress.UserID, progress.BookID, progress.Position, progress.ReadingTime,
		progress.LastReadAt, progress.LastDeviceID,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save reading progress: %w", err)
	}
	return nil
}

// AddReadingTime upserts the lifetime counter.
func (repository *progressRepository) AddReadingTime(context context.Context, userID string, seconds int64) error {
	table := schema.LibraryReaderStats
	query := fmt.Sprintf(`
		INSERT INTO %s AS stats (%s, %s, %s)
		VALUES ($1, $2, NOW())
		ON CONFLICT (%s) DO UPDATE
		SET %s = stats.%s + EXCLUDED.%s, %s = NOW()`,
		table.Table, table.UserID, table.TotalReadingTime, table.UpdatedAt,
		table.UserID,
		table.TotalReadingTime, table.TotalReadingTime, table.TotalReadingTime, table.UpdatedAt,
	)

	if _, err := repository.pool.Exec(context, query, userID, seconds); err != nil {
		return fmt.Errorf("postgres: failed to add reading time: %w", err)
	}
	return nil
}

// Stats reads the lifetime counter.
func (repository *progressRepository) Stats(context context.Context, userID string) (ReaderStats, error) {
	table := schema.LibraryReaderStats
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		table.TotalReadingTime, table.Table, table.UserID,
	)

	var stats ReaderStats
	err := repository.pool.QueryRow(context, query, userID).Scan(&stats.TotalReadingTime)
	if errors.Is(err, pgx.ErrNoRows) {
		return ReaderStats{}, nil
	}
	if err != nil {
		return ReaderStats{}, fmt.Errorf("postgres: failed to load reader stats: %w", err)
	}
	return stats, nil
}
