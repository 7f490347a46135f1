// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package schema names every table and column the repositories touch.

Queries are assembled from these definitions so a renamed column is a
one-line change here instead of a search across string literals.
*/
package schema

// LibraryBookTable represents the 'library.book' table
type LibraryBookTable struct {
	Table     string
	ID        string
	OwnerID   string
	OwnerName string
	Title     string
	Author    string
	ObjectKey string
	IsPublic  string
	CharCount string
	CreatedAt string
	UpdatedAt string
}

// LibraryBook is the schema definition for library.book
var LibraryBook = LibraryBookTable{
	Table:     "library.book",
	ID:        "id",
	OwnerID:   "ownerid",
	OwnerName: "ownername",
	Title:     "title",
	Author:    "author",
	ObjectKey: "objectkey",
	IsPublic:  "ispublic",
	CharCount: "charcount",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
