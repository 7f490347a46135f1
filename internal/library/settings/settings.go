// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package settings stores each reader's typography preferences.
package settings

// # Domain Models

// ReadingSettings is the full preference set of one user.
type ReadingSettings struct {
	FontSize          int     `json:"font_size"`
	BackgroundColor   string  `json:"background_color"`
	TextColor         string  `json:"text_color"`
	LineHeight        float64 `json:"line_height"`
	LetterSpacing     float64 `json:"letter_spacing"`
	ParagraphSpacing  float64 `json:"paragraph_spacing"`
	ReadingWidth      int     `json:"reading_width"`
	TextIndent        float64 `json:"text_indent"`
	SimplifiedChinese bool    `json:"simplified_chinese"`
}

// Defaults returns the preferences a new reader starts with.
func Defaults() ReadingSettings {
	return ReadingSettings{
		FontSize:          18,
		BackgroundColor:   "#F5F5DC",
		TextColor:         "#000000",
		LineHeight:        1.5,
		LetterSpacing:     0.05,
		ParagraphSpacing:  1.2,
		ReadingWidth:      800,
		TextIndent:        2.0,
		SimplifiedChinese: true,
	}
}

// Patch carries the fields a client wants to change; nil means keep.
type Patch struct {
	FontSize          *int     `json:"font_size"`
	BackgroundColor   *string  `json:"background_color"`
	TextColor         *string  `json:"text_color"`
	LineHeight        *float64 `json:"line_height"`
	LetterSpacing     *float64 `json:"letter_spacing"`
	ParagraphSpacing  *float64 `json:"paragraph_spacing"`
	ReadingWidth      *int     `json:"reading_width"`
	TextIndent        *float64 `json:"text_indent"`
	SimplifiedChinese *bool    `json:"simplified_chinese"`
}

// Empty reports whether the patch changes nothing.
func (patch Patch) Empty() bool {
	return patch == Patch{}
}

// Apply returns base with every provided field replaced.
func (patch Patch) Apply(base ReadingSettings) ReadingSettings {
	if patch.FontSize != nil {
		base.FontSize = *patch.FontSize
	}
	if patch.BackgroundColor != nil {
		base.BackgroundColor = *patch.BackgroundColor
	}
	if patch.TextColor != nil {
		base.TextColor = *patch.TextColor
	}
	if patch.LineHeight != nil {
		base.LineHeight = *patch.LineHeight
	}
	if patch.LetterSpacing != nil {
		base.LetterSpacing = *patch.LetterSpacing
	}
	if patch.ParagraphSpacing != nil {
		base.ParagraphSpacing = *patch.ParagraphSpacing
	}
	if patch.ReadingWidth != nil {
		base.ReadingWidth = *patch.ReadingWidth
	}
	if patch.TextIndent != nil {
		base.TextIndent = *patch.TextIndent
	}
	if patch.SimplifiedChinese != nil {
		base.SimplifiedChinese = *patch.SimplifiedChinese
	}
	return base
}
