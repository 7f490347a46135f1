// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// LibraryReadingProgressTable represents the 'library.readingprogress' table
type LibraryReadingProgressTable struct {
	Table        string
	UserID       string
	BookID       string
	Position     string
	ReadingTime  string
	LastReadAt   string
	LastDeviceID string
}

// LibraryReadingProgress is the schema definition for library.readingprogress
var LibraryReadingProgress = LibraryReadingProgressTable{
	Table:        "library.readingprogress",
	UserID:       "userid",
	BookID:       "bookid",
	Position:     "position",
	ReadingTime:  "readingtime",
	LastReadAt:   "lastreadat",
	LastDeviceID: "lastdeviceid",
}
