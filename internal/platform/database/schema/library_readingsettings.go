// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// LibraryReadingSettingsTable represents the 'library.readingsettings' table
type LibraryReadingSettingsTable struct {
	Table             string
	UserID            string
	FontSize          string
	BackgroundColor   string
	TextColor         string
	LineHeight        string
	LetterSpacing     string
	ParagraphSpacing  string
	ReadingWidth      string
	TextIndent        string
	SimplifiedChinese string
	UpdatedAt         string
}

// LibraryReadingSettings is the schema definition for library.readingsettings
var LibraryReadingSettings = LibraryReadingSettingsTable{
	Table:             "library.readingsettings",
	UserID:            "userid",
	FontSize:          "fontsize",
	BackgroundColor:   "backgroundcolor",
	TextColor:         "textcolor",
	LineHeight:        "lineheight",
	LetterSpacing:     "letterspacing",
	ParagraphSpacing:  "paragraphspacing",
	ReadingWidth:      "readingwidth",
	TextIndent:        "textindent",
	SimplifiedChinese: "simplifiedchinese",
	UpdatedAt:         "updatedat",
}

// Columns lists the preference columns in scan order.
func (t LibraryReadingSettingsTable) Columns() []string {
	return []string{
		t.FontSize, t.BackgroundColor, t.TextColor, t.LineHeight, t.LetterSpacing,
		t.ParagraphSpacing, t.ReadingWidth, t.TextIndent, t.SimplifiedChinese,
	}
}
