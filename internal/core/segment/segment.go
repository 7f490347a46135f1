// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package segment

import (
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/yuedu/pkg/pointer"
)

// # Heading Model

// Heading is one chapter boundary found in a book's text.
type Heading struct {
	Title   string `json:"title"`
	Offset  int64  `json:"offset"` // Rune offset of the heading line
	Ordinal int    `json:"ordinal"`
	Number  *int64 `json:"number,omitempty"` // nil when the title carries no numbering
}

// # Splitting

/*
Split scans text line by line and returns its chapter headings in document order.

Description: The first non-empty line is always chapter 0 (the book title
line). Every later line matching [IsHeading] opens a new chapter. Identical
headings are kept as separate chapters. A text without any heading yields the
single chapter 0; an empty text yields one untitled chapter at offset 0.

Parameters:
  - text: string (Full book text, "\n" or "\r\n" line endings)

Returns:
  - []Heading: Non-empty, offsets strictly increasing
*/
func Split(text string) []Heading {
	var splitter splitter

	for text != "" {
		line, rest, terminated := strings.Cut(text, "\n")
		splitter.feed(line, terminated)
		text = rest
	}

	return splitter.result()
}

// splitter accumulates headings while lines are fed in document order.
type splitter struct {
	headings []Heading
	offset   int64
}

// feed processes one raw line (without its "\n") starting at the current offset.
func (s *splitter) feed(raw string, terminated bool) {
	title := strings.TrimSpace(raw)

	if title != "" && (len(s.headings) == 0 || IsHeading(title)) {
		heading := Heading{
			Title:   title,
			Offset:  s.offset,
			Ordinal: len(s.headings),
		}
		if number, ok := ChapterNumber(title); ok {
			heading.Number = pointer.To(number)
		}
		s.headings = append(s.headings, heading)
	}

	s.offset += int64(utf8.RuneCountInString(raw))
	if terminated {
		s.offset++
	}
}

// result returns the collected headings, synthesizing chapter 0 when nothing was found.
func (s *splitter) result() []Heading {
	if len(s.headings) == 0 {
		return []Heading{{Title: "", Offset: 0, Ordinal: 0}}
	}
	return s.headings
}
