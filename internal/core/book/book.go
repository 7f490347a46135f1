// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book manages uploaded plain-text books.

An upload is decoded, split into chapters by the segmenter and stored in two
places: the text goes to object storage, the metadata and chapter index to
PostgreSQL. Readers then page through the text by character offset.

# Access

The uploader owns a book. Anyone signed in may read a public book; private
books are visible to their owner only. Only the owner may change or delete a
book.
*/
package book

import (
	"time"

	"github.com/taibuivan/yuedu/internal/library/progress"
)

// # Domain Models

// Book is the metadata of one uploaded text.
type Book struct {
	ID        int64     `json:"book_id"`
	OwnerID   string    `json:"-"`
	OwnerName string    `json:"owner_username"`
	Title     string    `json:"title"`
	Author    *string   `json:"author"`
	ObjectKey string    `json:"-"`
	IsPublic  bool      `json:"is_public"`
	CharCount int64     `json:"char_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Chapter is one entry of a book's table of contents.
type Chapter struct {
	ID       int64  `json:"chapter_id"`
	BookID   int64  `json:"-"`
	Ordinal  int    `json:"ordinal"`
	Title    string `json:"title"`
	Position int64  `json:"position"` // Character offset of the heading line
	Number   *int64 `json:"number,omitempty"`
}

// ShelfItem is a book on its owner's shelf together with their progress.
type ShelfItem struct {
	Book
	Position    int64      `json:"position"`
	ReadingTime int64      `json:"reading_time"`
	LastReadAt  *time.Time `json:"last_read_at"`
}

// Detail is a book with the caller's progress and the chapter index.
type Detail struct {
	ShelfItem
	Chapters []Chapter `json:"chapters"`
}

// Content is one page of text.
type Content struct {
	Content      string `json:"content"`
	NextPosition int64  `json:"next_position"`
}

// # Inputs & Results

// UploadInput carries the multipart fields of an upload.
type UploadInput struct {
	Title     string
	Author    string
	IsPublic  bool
	FileName  string
	Data      []byte
	OwnerName string
}

// UploadResult is returned once a book is stored.
type UploadResult struct {
	BookID   int64     `json:"book_id"`
	Title    string    `json:"title"`
	Author   *string   `json:"author"`
	Chapters []Chapter `json:"chapters"`
}

// UpdateInput carries the optional metadata changes; nil means keep.
type UpdateInput struct {
	Title    *string `json:"title"`
	Author   *string `json:"author"`
	IsPublic *bool   `json:"is_public"`
}

// newShelfItem joins a book with a progress row.
func newShelfItem(book Book, row progress.ReadingProgress) ShelfItem {
	return ShelfItem{
		Book:        book,
		Position:    row.Position,
		ReadingTime: row.ReadingTime,
		LastReadAt:  row.LastReadAt,
	}
}
