// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// LibraryReaderStatsTable represents the 'library.readerstats' table
type LibraryReaderStatsTable struct {
	Table            string
	UserID           string
	TotalReadingTime string
	UpdatedAt        string
}

// LibraryReaderStats is the schema definition for library.readerstats
var LibraryReaderStats = LibraryReaderStatsTable{
	Table:            "library.readerstats",
	UserID:           "userid",
	TotalReadingTime: "totalreadingtime",
	UpdatedAt:        "updatedat",
}
