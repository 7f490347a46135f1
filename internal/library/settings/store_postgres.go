// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yuedu/internal/platform/database/schema"
)

// settingsRepository implements [SettingsRepository] using pgx.
type settingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository constructs a PostgreSQL backed settings store.
func NewSettingsRepository(pool *pgxpool.Pool) SettingsRepository {
	return &settingsRepository{pool: pool}
}

// Find loads the user's row.
func (repository *settingsRepository) Find(context context.Context, userID string) (ReadingSettings, bool, error) {
	table := schema.LibraryReadingSettings
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(table.Columns(), ", "), table.Table, table.UserID,
	)

	var settings ReadingSettings
	err := repository.pool.QueryRow(context, query, userID).Scan(
		&settings.FontSize,
		&settings.BackgroundColor,
		&settings.TextColor,
		&settings.LineHeight,
		&settings.LetterSpacing,
		&settings.ParagraphSpacing,
		&settings.ReadingWidth,
		&settings.TextIndent,
		&settings.SimplifiedChinese,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ReadingSettings{}, false, nil
	}
	if err != nil {
		return ReadingSettings{}, false, fmt.Errorf("postgres: failed to find reading settings: %w", err)
	}
	return settings, true, nil
}

// Upsert inserts or replaces the user's row.
func (repository *settingsRepository) Upsert(context context.Context, userID string, settings ReadingSettings) error {
	table := schema.LibraryReadingSettings
	columns := table.Columns()

	placeholders := make([]string, len(columns))
	assignments := make([]string, len(columns))
	for i, column := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		assignments[i] = fmt.Sprintf("%s = EXCLUDED.%s", column, column)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, %s, NOW())
		ON CONFLICT (%s) DO UPDATE SET %s, %s = NOW()`,
		table.Table, table.UserID, strings.Join(columns, ", "), table.UpdatedAt,
		strings.Join(placeholders, ", "),
		table.UserID, strings.Join(assignments, ", "), table.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		userID,
		settings.FontSize,
		settings.BackgroundColor,
		settings.TextColor,
		settings.LineHeight,
		settings.LetterSpacing,
		settings.ParagraphSpacing,
		settings.ReadingWidth,
		settings.TextIndent,
		settings.SimplifiedChinese,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to upsert reading settings: %w", err)
	}
	return nil
}
