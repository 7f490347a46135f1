// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"

	"github.com/taibuivan/yuedu/internal/platform/apperr"
	"github.com/taibuivan/yuedu/internal/platform/dberr"
)

// Guard answers the read and write permission questions for a book.
//
// It depends on the repository only, so the heartbeat service can use it
// without depending on the book [Service].
type Guard struct {
	repository BookRepository
}

// NewGuard constructs a [Guard].
func NewGuard(repository BookRepository) *Guard {
	return &Guard{repository: repository}
}

/*
Access loads a book the user may read.

Returns:
  - *Book
  - error: NOT_FOUND when missing, FORBIDDEN when private and not owned
*/
func (guard *Guard) Access(context context.Context, userID string, bookID int64) (*Book, error) {
	book, err := guard.repository.FindByID(context, bookID)
	if err != nil {
		return nil, dberr.Wrap(err, "Book")
	}

	if book.OwnerID != userID && !book.IsPublic {
		return nil, apperr.Forbidden("You do not have access to this book")
	}
	return book, nil
}

// CheckAccess is [Guard.Access] without the result.
func (guard *Guard) CheckAccess(context context.Context, userID string, bookID int64) error {
	_, err := guard.Access(context, userID, bookID)
	return err
}

/*
Owned loads a book the user owns.

Returns:
  - *Book
  - error: NOT_FOUND when missing, FORBIDDEN for anyone but the owner
*/
func (guard *Guard) Owned(context context.Context, userID string, bookID int64) (*Book, error) {
	book, err := guard.repository.FindByID(context, bookID)
	if err != nil {
		return nil, dberr.Wrap(err, "Book")
	}

	if book.OwnerID != userID {
		return nil, apperr.Forbidden("Only the owner can modify this book")
	}
	return book, nil
}
