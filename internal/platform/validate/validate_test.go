// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yuedu/internal/platform/apperr"
	"github.com/taibuivan/yuedu/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "title", "斗破苍穹", false},
		{"empty_string", "title", "", true},
		{"whitespace_only", "title", "   ", true},
		{"ideographic_space_only", "title", "　", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, apperr.CodeValidation, ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_MaxLen counts characters, not bytes.
*/
func TestValidator_MaxLen(t *testing.T) {
	v := &validate.Validator{}
	v.MaxLen("title", "三个字", 3)
	assert.False(t, v.HasErrors())

	v.MaxLen("title", "四个汉字", 3)
	assert.True(t, v.HasErrors())
}

/*
TestValidator_HexColor checks the colour literal rule.
*/
func TestValidator_HexColor(t *testing.T) {
	tests := []struct {
		value   string
		isValid bool
	}{
		{"#F5F5DC", true},
		{"#000", true},
		{"#abcdef", true},
		{"F5F5DC", false},
		{"#F5F5D", false},
		{"#GGGGGG", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := &validate.Validator{}
			v.HexColor("background_color", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Numbers covers the numeric rules.
*/
func TestValidator_Numbers(t *testing.T) {
	v := &validate.Validator{}
	v.NonNegative("position", 0).
		Positive("book_id", 1).
		Range("font_size", 18, 10, 40).
		FloatRange("line_height", 1.5, 1.0, 3.0)
	assert.NoError(t, v.Err())

	v = &validate.Validator{}
	v.NonNegative("position", -1).
		Positive("book_id", 0).
		Range("font_size", 41, 10, 40).
		FloatRange("line_height", 0.5, 1.0, 3.0)

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 4)
}

/*
TestValidator_OneOfAndCustom ensures both helpers report their field.
*/
func TestValidator_OneOfAndCustom(t *testing.T) {
	v := &validate.Validator{}
	v.OneOf("environment", "staging", "development", "production")
	v.Custom("file", true, "Only .txt files are accepted")

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 2)
	assert.Equal(t, "environment", ae.Details[0].Field)
	assert.Equal(t, "file", ae.Details[1].Field)
}

func TestFieldErr(t *testing.T) {
	err := validate.FieldErr("device_id", "This field is required")
	assert.Equal(t, apperr.CodeValidation, err.Code)
	assert.Equal(t, "device_id", err.Details[0].Field)
}
