// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cnnum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yuedu/pkg/cnnum"
)

/*
TestParse covers the common numeral shapes seen in chapter headings.
*/
func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int64
		wantOK bool
	}{
		{"ten", "十", 10, true},
		{"eleven", "十一", 11, true},
		{"twenty_three", "二十三", 23, true},
		{"one_hundred", "一百", 100, true},
		{"thirty", "三十", 30, true},
		{"empty", "", 0, false},
		{"zero", "零", 0, true},
		{"hollow_zero", "〇", 0, true},
		{"single_digit", "七", 7, true},
		{"one_hundred_five", "一百零五", 105, true},
		{"hundred_without_digit", "百", 100, true},
		{"thousand_mixed", "一千二百三十四", 1234, true},
		{"liang_alias", "两百", 200, true},
		{"formal_glyphs", "壹佰贰拾叁", 123, true},
		{"formal_nine_and_thousand", "玖仟", 9000, true},
		{"latest_digit_wins", "三五十", 50, true},
		{"unknown_only", "abc", 0, false},
		{"unknown_skipped", "第十二", 12, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cnnum.Parse(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestParse_FormalAliases verifies that every formal glyph parses like its common twin.
*/
func TestParse_FormalAliases(t *testing.T) {
	pairs := map[string]string{
		"壹": "一", "贰": "二", "叁": "三", "肆": "四", "伍": "五",
		"陆": "六", "柒": "七", "捌": "八", "玖": "九",
		"拾": "十", "佰": "百", "仟": "千",
	}

	for formal, common := range pairs {
		want, _ := cnnum.Parse(common)
		got, ok := cnnum.Parse(formal)
		assert.True(t, ok, formal)
		assert.Equal(t, want, got, formal)
	}
}
