// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/yuedu/internal/core/segment"
	"github.com/taibuivan/yuedu/internal/platform/apperr"
	"github.com/taibuivan/yuedu/internal/platform/constants"
	"github.com/taibuivan/yuedu/internal/platform/dberr"
	"github.com/taibuivan/yuedu/internal/platform/validate"
	"github.com/taibuivan/yuedu/pkg/pagination"
	"github.com/taibuivan/yuedu/pkg/pointer"
	"github.com/taibuivan/yuedu/pkg/uuidv7"
)

const (
	FieldTitle    = "title"
	FieldAuthor   = "author"
	FieldFile     = "file"
	FieldPosition = "position"

	// maxLabelLength bounds titles and author names (characters).
	maxLabelLength = 255

	// maxRandomBooks caps the random public selection.
	maxRandomBooks = 10

	// objectKeyPrefix namespaces book texts inside the bucket.
	objectKeyPrefix = "books/"
)

// Options tunes the ingestion rules.
type Options struct {
	MaxUploadBytes int64
	AllowGB18030   bool
}

// # Service Layer

// Service orchestrates the book library.
type Service struct {
	repository BookRepository
	guard      *Guard
	texts      TextStore
	tracker    ProgressTracker
	options    Options
	logger     *slog.Logger
}

// NewService constructs a new book [Service].
func NewService(repository BookRepository, guard *Guard, texts TextStore, tracker ProgressTracker, options Options, logger *slog.Logger) *Service {
	if options.MaxUploadBytes <= 0 {
		options.MaxUploadBytes = constants.DefaultMaxUploadBytes
	}
	return &Service{
		repository: repository,
		guard:      guard,
		texts:      texts,
		tracker:    tracker,
		options:    options,
		logger:     logger,
	}
}

// # Ingestion

/*
Upload stores a new book for ownerID.

Description: Validates the form, decodes the file, then segments the text
and writes it to storage concurrently. The book row and its chapters are
inserted in one transaction; the owner's progress row is created unclaimed
at position 0.

Parameters:
  - context: context.Context
  - ownerID: string
  - input: UploadInput

Returns:
  - *UploadResult: Book id and chapter index
  - error: VALIDATION_ERROR, PAYLOAD_TOO_LARGE, storage failures
*/
func (service *Service) Upload(context context.Context, ownerID string, input UploadInput) (*UploadResult, error) {

	// 1. Form validation
	if int64(len(input.Data)) > service.options.MaxUploadBytes {
		return nil, apperr.PayloadTooLarge(service.options.MaxUploadBytes)
	}

	title := normalizeLabel(input.Title)
	author := normalizeLabel(input.Author)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, title)
	validator.MaxLen(FieldTitle, title, maxLabelLength)
	validator.MaxLen(FieldAuthor, author, maxLabelLength)
	validator.Custom(FieldFile, len(input.Data) == 0, "File is required")
	validator.Custom(FieldFile, !strings.EqualFold(filepath.Ext(input.FileName), ".txt"), "Only .txt files are accepted")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// 2. Decoding
	text, err := decodeText(input.Data, service.options.AllowGB18030)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, validate.FieldErr(FieldFile, "File contains no text")
	}

	book := &Book{
		OwnerID:   ownerID,
		OwnerName: input.OwnerName,
		Title:     title,
		IsPublic:  input.IsPublic,
		ObjectKey: objectKeyPrefix + uuidv7.New() + ".txt",
		CharCount: int64(utf8.RuneCountInString(text)),
	}
	if author != "" {
		book.Author = &author
	}

	// 3. Segment and store in parallel
	var headings []segment.Heading
	group, groupContext := errgroup.WithContext(context)
	group.Go(func() error {
		headings = segment.Split(text)
		return nil
	})
	group.Go(func() error {
		return service.texts.Put(groupContext, book.ObjectKey, text)
	})
	if err := group.Wait(); err != nil {
		return nil, apperr.Internal(fmt.Errorf("book: failed to store text: %w", err))
	}

	// 4. Metadata
	chapters := make([]Chapter, len(headings))
	for i, heading := range headings {
		chapters[i] = Chapter{
			Ordinal:  heading.Ordinal,
			Title:    heading.Title,
			Position: heading.Offset,
			Number:   heading.Number,
		}
	}

	if err := service.repository.Create(context, book, chapters); err != nil {
		service.discardText(context, book.ObjectKey)
		return nil, dberr.Wrap(err, "Book")
	}

	// A missing row is recreated on the first detail view
	if _, err := service.tracker.Ensure(context, ownerID, book.ID); err != nil {
		service.logger.WarnContext(context, "book_progress_init_failed",
			slog.Int64("book_id", book.ID),
			slog.Any("error", err),
		)
	}

	service.logger.Info("book_uploaded",
		slog.Int64("book_id", book.ID),
		slog.String("owner_id", ownerID),
		slog.Int64("char_count", book.CharCount),
		slog.Int("chapters", len(chapters)),
	)

	return &UploadResult{
		BookID:   book.ID,
		Title:    book.Title,
		Author:   book.Author,
		Chapters: chapters,
	}, nil
}

// # Browsing

/*
List returns the caller's shelf.

Returns:
  - []*ShelfItem
  - int: Total books
  - error
*/
func (service *Service) List(context context.Context, ownerID string, page pagination.Params) ([]*ShelfItem, int, error) {
	items, total, err := service.repository.ListByOwner(context, ownerID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Book")
	}
	return items, total, nil
}

// ListPublic returns public books, newest first.
func (service *Service) ListPublic(context context.Context, page pagination.Params) ([]*Book, int, error) {
	books, total, err := service.repository.ListPublic(context, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Book")
	}
	return books, total, nil
}

// RandomPublic returns between 1 and 10 random public books.
func (service *Service) RandomPublic(context context.Context, count int) ([]*Book, error) {
	count = min(max(count, 1), maxRandomBooks)

	books, err := service.repository.RandomPublic(context, count)
	if err != nil {
		return nil, dberr.Wrap(err, "Book")
	}
	return books, nil
}

/*
Detail returns a readable book with the caller's progress and chapters.

Description: Opening a book for the first time creates the caller's
unclaimed progress row.

Returns:
  - *Detail
  - error: NOT_FOUND, FORBIDDEN, storage failures
*/
func (service *Service) Detail(context context.Context, userID string, bookID int64) (*Detail, error) {
	book, err := service.guard.Access(context, userID, bookID)
	if err != nil {
		return nil, err
	}

	chapters, err := service.repository.ListChapters(context, bookID)
	if err != nil {
		return nil, dberr.Wrap(err, "Book")
	}

	row, err := service.tracker.Ensure(context, userID, bookID)
	if err != nil {
		return nil, err
	}

	return &Detail{ShelfItem: newShelfItem(*book, row), Chapters: chapters}, nil
}

/*
Content returns a page of text.

Description: position defaults to 0 and negative values are raised to 0;
length defaults to 4000 and is clamped to [100, 10000].

Parameters:
  - context: context.Context
  - userID: string
  - bookID: int64
  - position: *int64 (optional)
  - length: *int64 (optional)

Returns:
  - *Content: Text and the offset of the next page
  - error: VALIDATION_ERROR when position is past the end of the book
*/
func (service *Service) Content(context context.Context, userID string, bookID int64, position, length *int64) (*Content, error) {
	book, err := service.guard.Access(context, userID, bookID)
	if err != nil {
		return nil, err
	}

	start := max(pointer.Fallback(position, 0), 0)
	if start >= book.CharCount {
		return nil, validate.FieldErr(FieldPosition, "Position is past the end of the book")
	}

	size := min(max(pointer.Fallback(length, int64(constants.DefaultContentLength)), constants.MinContentLength), constants.MaxContentLength)

	text, err := service.texts.Get(context, book.ObjectKey)
	if err != nil {
		if apperr.As(err) != nil {
			return nil, err
		}
		return nil, apperr.Internal(fmt.Errorf("book: failed to load text: %w", err))
	}

	slice, next := sliceRunes(text, start, size)
	return &Content{Content: slice, NextPosition: next}, nil
}

/*
JumpToChapter returns the chapter a reader wants to open.

Returns:
  - *Chapter: Position is the offset to load
  - error: NOT_FOUND when the chapter does not belong to the book
*/
func (service *Service) JumpToChapter(context context.Context, userID string, bookID, chapterID int64) (*Chapter, error) {
	if _, err := service.guard.Access(context, userID, bookID); err != nil {
		return nil, err
	}

	chapter, err := service.repository.FindChapter(context, bookID, chapterID)
	if err != nil {
		return nil, dberr.Wrap(err, "Chapter")
	}
	return chapter, nil
}

// # Management

/*
Update changes a book's metadata. Owner only.

Description: An empty author clears it. An input without any field returns
the book unchanged.

Returns:
  - *Book: The book after the change
  - error: NOT_FOUND, FORBIDDEN, VALIDATION_ERROR
*/
func (service *Service) Update(context context.Context, userID string, bookID int64, input UpdateInput) (*Book, error) {
	book, err := service.guard.Owned(context, userID, bookID)
	if err != nil {
		return nil, err
	}

	if input == (UpdateInput{}) {
		return book, nil
	}

	validator := &validate.Validator{}
	if input.Title != nil {
		title := normalizeLabel(*input.Title)
		validator.Required(FieldTitle, title)
		validator.MaxLen(FieldTitle, title, maxLabelLength)
		book.Title = title
	}
	if input.Author != nil {
		author := normalizeLabel(*input.Author)
		validator.MaxLen(FieldAuthor, author, maxLabelLength)
		book.Author = nil
		if author != "" {
			book.Author = &author
		}
	}
	if input.IsPublic != nil {
		book.IsPublic = *input.IsPublic
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repository.Update(context, book); err != nil {
		return nil, dberr.Wrap(err, "Book")
	}

	service.logger.Info("book_updated",
		slog.Int64("book_id", book.ID),
		slog.Bool("is_public", book.IsPublic),
	)
	return book, nil
}

/*
Delete removes a book, its chapters, every reader's progress and its text.
Owner only.

Returns:
  - error: NOT_FOUND, FORBIDDEN, storage failures
*/
func (service *Service) Delete(context context.Context, userID string, bookID int64) error {
	book, err := service.guard.Owned(context, userID, bookID)
	if err != nil {
		return err
	}

	if err := service.repository.Delete(context, bookID); err != nil {
		return dberr.Wrap(err, "Book")
	}

	// The row is gone; an orphaned object is only wasted space
	service.discardText(context, book.ObjectKey)

	service.logger.Info("book_deleted", slog.Int64("book_id", bookID), slog.String("owner_id", userID))
	return nil
}

// # Helpers

func (service *Service) discardText(context context.Context, key string) {
	if err := service.texts.Delete(context, key); err != nil {
		service.logger.WarnContext(context, "book_text_delete_failed",
			slog.String("object_key", key),
			slog.Any("error", err),
		)
	}
}
