// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yuedu/internal/platform/database/schema"
	"github.com/taibuivan/yuedu/internal/platform/postgres"
)

// # PostgreSQL Repository

// bookRepository implements [BookRepository] using pgx.
type bookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository constructs a PostgreSQL backed book store.
func NewBookRepository(pool *pgxpool.Pool) BookRepository {
	return &bookRepository{pool: pool}
}

// bookColumns is the select list matching [scanBook], qualified with alias b.
var bookColumns = fmt.Sprintf("b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s",
	schema.LibraryBook.ID,
	schema.LibraryBook.OwnerID,
	schema.LibraryBook.OwnerName,
	schema.LibraryBook.Title,
	schema.LibraryBook.Author,
	schema.LibraryBook.ObjectKey,
	schema.LibraryBook.IsPublic,
	schema.LibraryBook.CharCount,
	schema.LibraryBook.CreatedAt,
	schema.LibraryBook.UpdatedAt,
)

// scanBook returns the destinations for [bookColumns].
func scanBook(book *Book) []any {
	return []any{
		&book.ID,
		&book.OwnerID,
		&book.OwnerName,
		&book.Title,
		&book.Author,
		&book.ObjectKey,
		&book.IsPublic,
		&book.CharCount,
		&book.CreatedAt,
		&book.UpdatedAt,
	}
}

/*
Create inserts the book, then its chapters in one batch, inside a transaction.
*/
func (repository *bookRepository) Create(context context.Context, book *Book, chapters []Chapter) error {
	table := schema.LibraryBook
	insertBook := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s, %s`,
		table.Table,
		table.OwnerID, table.OwnerName, table.Title, table.Author, table.ObjectKey, table.IsPublic, table.CharCount,
		table.ID, table.CreatedAt, table.UpdatedAt,
	)

	chapterTable := schema.LibraryChapter
	insertChapter := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`,
		chapterTable.Table,
		strings.Join(chapterTable.Columns(), ", "),
		chapterTable.ID,
	)

	return postgres.InTx(context, repository.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(context, insertBook,
			book.OwnerID, book.OwnerName, book.Title, book.Author, book.ObjectKey, book.IsPublic, book.CharCount,
		).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
		if err != nil {
			return fmt.Errorf("postgres: failed to insert book: %w", err)
		}

		// Chapter rows in one round trip
		batch := &pgx.Batch{}
		for i := range chapters {
			chapter := &chapters[i]
			chapter.BookID = book.ID
			batch.Queue(insertChapter, book.ID, chapter.Ordinal, chapter.Title, chapter.Position, chapter.Number).
				QueryRow(func(row pgx.Row) error {
					return row.Scan(&chapter.ID)
				})
		}

		if err := tx.SendBatch(context, batch).Close(); err != nil {
			return fmt.Errorf("postgres: failed to insert chapters: %w", err)
		}
		return nil
	})
}

// FindByID loads one book.
func (repository *bookRepository) FindByID(context context.Context, id int64) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s b WHERE b.%s = $1`,
		bookColumns, schema.LibraryBook.Table, schema.LibraryBook.ID,
	)

	var book Book
	if err := repository.pool.QueryRow(context, query, id).Scan(scanBook(&book)...); err != nil {
		return nil, fmt.Errorf("postgres: failed to find book: %w", err)
	}
	return &book, nil
}

/*
ListByOwner joins the owner's progress and orders by last read time.

A window count returns the total without a second query.
*/
func (repository *bookRepository) ListByOwner(context context.Context, ownerID string, limit, offset int) ([]*ShelfItem, int, error) {
	book := schema.LibraryBook
	progress := schema.LibraryReadingProgress

	query := fmt.Sprintf(`
		SELECT %s,
			COALESCE(p.%s, 0), COALESCE(p.%s, 0), p.%s,
			COUNT(*) OVER() AS total_count
		FROM %s b
		LEFT JOIN %s p ON p.%s = b.%s AND p.%s = b.%s
		WHERE b.%s = $1
		ORDER BY p.%s DESC NULLS LAST, b.%s DESC
		LIMIT $2 OFFSET $3`,
		bookColumns,
		progress.Position, progress.ReadingTime, progress.LastReadAt,
		book.Table,
		progress.Table, progress.BookID, book.ID, progress.UserID, book.OwnerID,
		book.OwnerID,
		progress.LastReadAt, book.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list books: %w", err)
	}
	defer rows.Close()

	items := []*ShelfItem{}
	var total int
	for rows.Next() {
		var item ShelfItem
		destinations := append(scanBook(&item.Book), &item.Position, &item.ReadingTime, &item.LastReadAt, &total)
		if err := rows.Scan(destinations...); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan book: %w", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to iterate books: %w", err)
	}

	return items, total, nil
}

// ListPublic pages through public books, newest first.
func (repository *bookRepository) ListPublic(context context.Context, limit, offset int) ([]*Book, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s b
		WHERE b.%s
		ORDER BY b.%s DESC
		LIMIT $1 OFFSET $2`,
		bookColumns, schema.LibraryBook.Table, schema.LibraryBook.IsPublic, schema.LibraryBook.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list public books: %w", err)
	}
	defer rows.Close()

	books := []*Book{}
	var total int
	for rows.Next() {
		var book Book
		if err := rows.Scan(append(scanBook(&book), &total)...); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan public book: %w", err)
		}
		books = append(books, &book)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to iterate public books: %w", err)
	}

	return books, total, nil
}

// RandomPublic samples public books.
func (repository *bookRepository) RandomPublic(context context.Context, count int) ([]*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s b WHERE b.%s ORDER BY random() LIMIT $1`,
		bookColumns, schema.LibraryBook.Table, schema.LibraryBook.IsPublic,
	)

	rows, err := repository.pool.Query(context, query, count)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to sample public books: %w", err)
	}

	books, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Book, error) {
		var book Book
		err := row.Scan(scanBook(&book)...)
		return &book, err
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to scan public books: %w", err)
	}
	return books, nil
}

// ListChapters returns the table of contents.
func (repository *bookRepository) ListChapters(context context.Context, bookID int64) ([]Chapter, error) {
	table := schema.LibraryChapter
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s`,
		table.ID, table.BookID, table.Ordinal, table.Title, table.Position, table.Number,
		table.Table,
		table.BookID,
		table.Position,
	)

	rows, err := repository.pool.Query(context, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list chapters: %w", err)
	}

	chapters, err := pgx.CollectRows(rows, scanChapter)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to scan chapters: %w", err)
	}
	return chapters, nil
}

// FindChapter loads a chapter scoped to its book.
func (repository *bookRepository) FindChapter(context context.Context, bookID, chapterID int64) (*Chapter, error) {
	table := schema.LibraryChapter
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2`,
		table.ID, table.BookID, table.Ordinal, table.Title, table.Position, table.Number,
		table.Table,
		table.ID, table.BookID,
	)

	rows, err := repository.pool.Query(context, query, chapterID, bookID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to find chapter: %w", err)
	}

	chapter, err := pgx.CollectExactlyOneRow(rows, scanChapter)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to find chapter: %w", err)
	}
	return &chapter, nil
}

// Update writes the editable metadata.
func (repository *bookRepository) Update(context context.Context, book *Book) error {
	table := schema.LibraryBook
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		table.Table,
		table.Title, table.Author, table.IsPublic, table.UpdatedAt,
		table.ID,
		table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, book.ID, book.Title, book.Author, book.IsPublic).Scan(&book.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres: failed to update book: %w", err)
	}
	return nil
}

// Delete removes the row; chapters and progress cascade.
func (repository *bookRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.LibraryBook.Table, schema.LibraryBook.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("postgres: failed to delete book: %w", pgx.ErrNoRows)
	}
	return nil
}

func scanChapter(row pgx.CollectableRow) (Chapter, error) {
	var chapter Chapter
	err := row.Scan(&chapter.ID, &chapter.BookID, &chapter.Ordinal, &chapter.Title, &chapter.Position, &chapter.Number)
	return chapter, err
}
