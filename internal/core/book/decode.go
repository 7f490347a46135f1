// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/yuedu/internal/platform/validate"
)

// utf8BOM is stripped from the start of uploaded files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

/*
decodeText turns an uploaded file into UTF-8 text.

Description: A leading byte order mark is dropped. Valid UTF-8 is returned
as is. Otherwise, when allowGB18030 is set, the bytes are decoded as GB18030
(a superset of GBK and GB2312, the usual encodings of Chinese .txt files);
a decode that produces replacement characters is rejected.

Returns:
  - string: The text that is stored and segmented
  - error: VALIDATION_ERROR on the "file" field
*/
func decodeText(data []byte, allowGB18030 bool) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	if utf8.Valid(data) {
		return string(data), nil
	}
	if !allowGB18030 {
		return "", validate.FieldErr(FieldFile, "File is not valid UTF-8 text")
	}

	decoded, err := simplifiedchinese.GB18030.NewDecoder().Bytes(data)
	if err != nil || bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", validate.FieldErr(FieldFile, "File is neither UTF-8 nor GB18030 text")
	}
	return string(decoded), nil
}

// normalizeLabel trims a title or author and composes it to NFC so equal
// names compare equal regardless of the client's input method.
func normalizeLabel(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// sliceRunes returns up to length characters of text starting at the
// character offset start, and the offset just past the slice.
func sliceRunes(text string, start, length int64) (string, int64) {
	var (
		index     int64
		byteStart = len(text)
		byteEnd   = len(text)
	)

	for byteOffset := range text {
		if index == start {
			byteStart = byteOffset
		}
		if index == start+length {
			byteEnd = byteOffset
			break
		}
		index++
	}

	if byteStart > byteEnd {
		return "", start
	}

	slice := text[byteStart:byteEnd]
	return slice, start + int64(utf8.RuneCountInString(slice))
}
