// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yuedu/internal/platform/apperr"
)

/*
TestConstructors pins the status and code of every constructor.
*/
func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
	}{
		{"not_found", apperr.NotFound("Book"), http.StatusNotFound, apperr.CodeNotFound},
		{"unauthorized", apperr.Unauthorized("login"), http.StatusUnauthorized, apperr.CodeUnauthorized},
		{"forbidden", apperr.Forbidden("no"), http.StatusForbidden, apperr.CodeForbidden},
		{"validation", apperr.ValidationError("bad"), http.StatusBadRequest, apperr.CodeValidation},
		{"too_large", apperr.PayloadTooLarge(10), http.StatusRequestEntityTooLarge, apperr.CodePayloadTooLarge},
		{"media", apperr.UnsupportedMedia("txt only"), http.StatusUnsupportedMediaType, apperr.CodeUnsupportedMedia},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}

	assert.Equal(t, "Book not found", apperr.NotFound("Book").Error())
}

/*
TestAs_TraversesWrappedErrors finds an AppError behind fmt wrapping.
*/
func TestAs_TraversesWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", apperr.Forbidden("nope"))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeForbidden, ae.Code)
	assert.True(t, apperr.HasCode(wrapped, apperr.CodeForbidden))
	assert.False(t, apperr.HasCode(errors.New("plain"), apperr.CodeForbidden))
	assert.Nil(t, apperr.As(errors.New("plain")))
}

/*
TestInternal_KeepsCause exposes the cause to errors.Is only.
*/
func TestInternal_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperr.Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, err.Error(), "connection reset")
}
