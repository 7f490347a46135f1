// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package segment_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yuedu/internal/core/segment"
)

/*
TestIsHeading checks the structural heading heuristic line by line.
*/
func TestIsHeading(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"arabic_short_title", "第3章 短标题", true},
		{"arabic_long_tail", "第3章 ABCDEFGHIJKLMNOPQRSTUVWXYZABCDEFG", false},
		{"cjk_numeral", "第十二章 风起云涌", true},
		{"formal_numeral", "第壹佰章", true},
		{"without_di_marker", "12章 开端", true},
		{"inner_spaces", "第 十二 章 风起", true},
		{"ideographic_spaces", "第　一　章　初见", true},
		{"indented_line", "　　第五节 夜雨", true},
		{"fullwidth_digits", "第１２章 风起", true},
		{"fullwidth_digits_no_title", "第３卷", true},
		{"nbsp_separator", "第\u00a0十二\u00a0章 风起", true},
		{"fullwidth_long_tail", "第１章 " + strings.Repeat("字", 31), false},
		{"volume", "第二卷 江湖路远", true},
		{"episode", "第3集", true},
		{"part", "第一部 风", true},
		{"piece", "第七篇", true},
		{"prologue", "序章", true},
		{"preface", "序言", true},
		{"frontispiece", "卷首语", true},
		{"title_page", "扉页", true},
		{"interlude", "楔子 一场大雨", true},
		{"main_text", "正文", true},
		{"final_chapter", "终章 归来", true},
		{"afterword", "后记", true},
		{"epilogue", "尾声", true},
		{"extra", "番外 小师妹的日常", true},
		{"plain_body", "萧炎站在广场上，脸色平静。", false},
		{"chapter_mid_line", "他想起了第3章里发生的事", false},
		{"empty", "", false},
		{"blank", "   ", false},
		{"number_only", "第十二", false},
		{"lesson_not_section", "第1节课", false},
		{"portion_not_part", "一部分人认为他不会回来", false},
		{"tournament_not_part", "三部赛车停在门口", false},
		{"collection_not_episode", "三集合在一起", false},
		{"sheet_not_piece", "三篇张贴的告示", false},
		{"text_finished", "正文完", false},
		{"text_concluded", "正文结束了", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, segment.IsHeading(tt.line), tt.line)
		})
	}
}

/*
TestIsHeading_TailBoundary pins the 30 character cap after the unit word.
*/
func TestIsHeading_TailBoundary(t *testing.T) {
	atLimit := "第3章 " + strings.Repeat("字", segment.MaxTitleTail-1)
	overLimit := "第3章 " + strings.Repeat("字", segment.MaxTitleTail)

	assert.True(t, segment.IsHeading(atLimit))
	assert.False(t, segment.IsHeading(overLimit))
}

/*
TestChapterNumber covers Arabic, Chinese and missing numbering.
*/
func TestChapterNumber(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		want   int64
		wantOK bool
	}{
		{"arabic", "第12章 开端", 12, true},
		{"arabic_without_marker", "3节", 3, true},
		{"arabic_spaced", "第 7 卷", 7, true},
		{"fullwidth", "第１２章 风起", 12, true},
		{"fullwidth_mixed", "第1２0章", 120, true},
		{"nbsp_spaced", "第\u00a07\u00a0卷", 7, true},
		{"cjk", "第三百零五章 终局", 305, true},
		{"cjk_liang", "第两千章", 2000, true},
		{"cjk_ten", "第十章", 10, true},
		{"formal", "第贰拾壹章", 21, true},
		{"first_match_wins", "第一卷 第三章", 1, true},
		{"keyword_only", "序章", 0, false},
		{"no_unit", "第十二", 0, false},
		{"arabic_overflow", "第99999999999999999999章", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := segment.ChapterNumber(tt.title)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
