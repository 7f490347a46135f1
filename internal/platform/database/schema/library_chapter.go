// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// LibraryChapterTable represents the 'library.chapter' table
type LibraryChapterTable struct {
	Table    string
	ID       string
	BookID   string
	Ordinal  string
	Title    string
	Position string
	Number   string
}

// LibraryChapter is the schema definition for library.chapter
var LibraryChapter = LibraryChapterTable{
	Table:    "library.chapter",
	ID:       "id",
	BookID:   "bookid",
	Ordinal:  "ordinal",
	Title:    "title",
	Position: "position",
	Number:   "number",
}

// Columns lists the insertable columns in insert order (the $1..$5 placeholders of the chapter insert).
func (t LibraryChapterTable) Columns() []string {
	return []string{t.BookID, t.Ordinal, t.Title, t.Position, t.Number}
}
