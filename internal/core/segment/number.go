// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package segment

import (
	"regexp"
	"strconv"

	"golang.org/x/text/width"

	"github.com/taibuivan/yuedu/pkg/cnnum"
)

// # Chapter Numbering

var (
	arabicNumberPattern = regexp.MustCompile(`第?` + blank + `*(\p{Nd}+)` + blank + `*[章节卷集部篇]`)
	cjkNumberPattern    = regexp.MustCompile(`第?` + blank + `*([零〇一二两三四五六七八九十百千万壹贰叁肆伍陆柒捌玖拾佰仟]+)` + blank + `*[章节卷集部篇]`)
)

/*
ChapterNumber extracts the chapter number from a heading title.

Arabic digits are tried first ("第12章", also full-width "第１２章"), then Chinese numerals ("第十二章").
The result is metadata only; it never decides whether a line is a heading.

Returns:
  - int64: The chapter number
  - bool: false when no numbered unit is found or the digits overflow
*/
func ChapterNumber(title string) (int64, bool) {
	if match := arabicNumberPattern.FindStringSubmatch(title); match != nil {
		// Full-width digits are folded to ASCII before parsing
		number, err := strconv.ParseInt(width.Narrow.String(match[1]), 10, 64)
		if err != nil {
			return 0, false
		}
		return number, true
	}

	if match := cjkNumberPattern.FindStringSubmatch(title); match != nil {
		return cnnum.Parse(match[1])
	}

	return 0, false
}
