// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package segment splits the flat text of an uploaded book into chapters.

A line is a chapter heading when, after trimming, it starts with a structural
keyword (序章, 后记, 番外 …) or with a numbered unit such as "第十二章", and is
followed by at most 30 more characters. The cap keeps body sentences that
merely mention a chapter from being taken as headings.

# Offsets

Every [Heading] carries the character (rune) offset of its line in the text,
the same unit the content API slices by, so multi-byte text never splits
inside a character.

All functions in this package are pure and safe for concurrent use.
*/
package segment

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// # Heading Patterns

const (
	// numeralGlyphs lists every character allowed in a chapter numbering token.
	// \p{Nd} covers full-width digits ("第１２章") as well as ASCII ones.
	numeralGlyphs = `\p{Nd}〇零一二两三四五六七八九十百千万壹贰叁肆伍陆柒捌玖拾佰仟`

	// blank matches any Unicode space separator (ideographic space, NBSP) and ASCII whitespace.
	blank = `[\p{Z}\s]`

	// MaxTitleTail is the number of characters allowed after the unit word or keyword.
	MaxTitleTail = 30
)

var (
	// headingPattern is anchored on both ends so only whole lines qualify.
	//
	// Groups: 1 keyword, 2 unit word, 3 trailing title text.
	headingPattern = regexp.MustCompile(
		`^(?:(序章|序言|卷首语|扉页|楔子|正文|终章|后记|尾声|番外)|` +
			`第?` + blank + `{0,4}[` + numeralGlyphs + `]+?` + blank + `{0,4}(章|节|卷|集|部|篇))` +
			`(.{0,`+strconv.Itoa(MaxTitleTail)+`})$`,
	)

	// wordContinuations lists characters that, directly after a keyword or unit,
	// turn it into an ordinary word ("一部分", "第一节课", "正文完").
	wordContinuations = map[string]string{
		"正文": "完结",
		"节":  "课",
		"集":  "合和",
		"部":  "分赛游",
		"篇":  "张",
	}
)

// IsHeading reports whether line looks like a chapter heading.
// Surrounding whitespace is ignored.
func IsHeading(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	match := headingPattern.FindStringSubmatch(line)
	if match == nil {
		return false
	}

	word := match[1]
	if word == "" {
		word = match[2]
	}

	return !continuesWord(word, match[3])
}

// continuesWord reports whether tail starts with a character that extends word.
func continuesWord(word, tail string) bool {
	breakers, ok := wordContinuations[word]
	if !ok || tail == "" {
		return false
	}

	next, _ := utf8.DecodeRuneInString(tail)
	return strings.ContainsRune(breakers, next)
}
