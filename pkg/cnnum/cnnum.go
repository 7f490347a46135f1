// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cnnum interprets Chinese numerals such as "三十一" or "壹佰贰拾".

Both the common glyphs and the formal ("banker's") variants are accepted and
map to the same values. Only the ten, hundred and thousand units are known;
any other character is skipped.

Usage:

	n, ok := cnnum.Parse("二十三") // 23, true
*/
package cnnum

// # Glyph Tables

// digits maps every recognised digit glyph to its value.
var digits = map[rune]int64{
	'零': 0, '〇': 0,
	'一': 1, '壹': 1,
	'二': 2, '贰': 2, '两': 2,
	'三': 3, '叁': 3,
	'四': 4, '肆': 4,
	'五': 5, '伍': 5,
	'六': 6, '陆': 6,
	'七': 7, '柒': 7,
	'八': 8, '捌': 8,
	'九': 9, '玖': 9,
}

// units maps every recognised unit glyph to its multiplier.
var units = map[rune]int64{
	'十': 10, '拾': 10,
	'百': 100, '佰': 100,
	'千': 1000, '仟': 1000,
}

// # Parsing

// Parse converts a run of numeral glyphs into an integer.
//
// Only the most recent digit before a unit counts, and a unit with no digit in
// front of it stands for itself ("十一" is 11). A trailing digit is the ones place.
//
// The second result is false when s contains no recognised glyph at all.
// The literal zero glyph yields (0, true).
func Parse(s string) (int64, bool) {
	var (
		pending int64
		total   int64
		seen    bool
	)

	for _, char := range s {
		if value, ok := digits[char]; ok {
			pending = value
			seen = true
			continue
		}

		if unit, ok := units[char]; ok {
			if pending > 0 {
				total += pending * unit
			} else {
				total += unit
			}
			pending = 0
			seen = true
		}
	}

	total += pending

	if !seen && total == 0 {
		return 0, false
	}

	return total, true
}
