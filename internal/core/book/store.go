// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"

	"github.com/taibuivan/yuedu/internal/library/progress"
)

// # Book Data Access

// BookRepository defines the data access contract for books and chapters.
type BookRepository interface {

	/*
		Create inserts a book and its chapters atomically.

		Parameters:
		  - context: context.Context
		  - book: *Book (ID and timestamps are filled in)
		  - chapters: []Chapter (IDs and BookID are filled in)

		Returns:
		  - error: Storage failures
	*/
	Create(context context.Context, book *Book, chapters []Chapter) error

	/*
		FindByID returns a book.

		Returns:
		  - *Book
		  - error: pgx.ErrNoRows wrapped when missing
	*/
	FindByID(context context.Context, id int64) (*Book, error)

	/*
		ListByOwner returns the owner's books joined with the owner's progress,
		most recently read first, then newest first.

		Returns:
		  - []*ShelfItem
		  - int: Total books of the owner
		  - error
	*/
	ListByOwner(context context.Context, ownerID string, limit, offset int) ([]*ShelfItem, int, error)

	/*
		ListPublic returns public books, newest first.

		Returns:
		  - []*Book
		  - int: Total public books
		  - error
	*/
	ListPublic(context context.Context, limit, offset int) ([]*Book, int, error)

	// RandomPublic returns up to count public books in random order.
	RandomPublic(context context.Context, count int) ([]*Book, error)

	// ListChapters returns a book's chapters ordered by position.
	ListChapters(context context.Context, bookID int64) ([]Chapter, error)

	// FindChapter returns one chapter of a book.
	FindChapter(context context.Context, bookID, chapterID int64) (*Chapter, error)

	// Update persists title, author and visibility.
	Update(context context.Context, book *Book) error

	// Delete removes a book; chapters and progress rows cascade.
	Delete(context context.Context, id int64) error
}

// ProgressTracker is the part of the heartbeat service the library needs.
type ProgressTracker interface {
	Ensure(context context.Context, userID string, bookID int64) (progress.ReadingProgress, error)
}
