// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package progress

import "context"

// # Progress Data Access

// ProgressRepository defines the data access contract for reading progress.
type ProgressRepository interface {

	/*
		Find returns the progress row for a user and book.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - bookID: int64

		Returns:
		  - ReadingProgress: The stored row (zero value when absent)
		  - bool: Whether a row exists
		  - error: Storage failures
	*/
	Find(context context.Context, userID string, bookID int64) (ReadingProgress, bool, error)

	/*
		Insert creates a row. An existing row for the same key is left untouched.

		Returns:
		  - error: Storage failures
	*/
	Insert(context context.Context, progress ReadingProgress) error

	/*
		Save overwrites position, reading time, last read time and device.

		Returns:
		  - error: Storage failures
	*/
	Save(context context.Context, progress ReadingProgress) error

	/*
		AddReadingTime adds seconds to the user's lifetime counter.

		Returns:
		  - error: Storage failures
	*/
	AddReadingTime(context context.Context, userID string, seconds int64) error

	/*
		Stats returns the user's lifetime counters, zero when none exist.

		Returns:
		  - ReaderStats
		  - error: Storage failures
	*/
	Stats(context context.Context, userID string) (ReaderStats, error)
}

// BookAccess decides whether a user may read a book.
//
// It returns NOT_FOUND for missing books and FORBIDDEN for private books
// owned by someone else.
type BookAccess interface {
	CheckAccess(context context.Context, userID string, bookID int64) error
}
