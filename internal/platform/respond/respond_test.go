// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yuedu/internal/platform/apperr"
	"github.com/taibuivan/yuedu/internal/platform/respond"
	"github.com/taibuivan/yuedu/pkg/pagination"
)

func TestOK(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, map[string]int{"position": 42})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"position":42}}`, recorder.Body.String())
}

func TestPaginated(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Paginated(recorder, []string{"a"}, pagination.NewMeta(2, 10, 11))

	assert.JSONEq(t,
		`{"data":["a"],"meta":{"page":2,"limit":10,"total":11,"total_pages":2}}`,
		recorder.Body.String(),
	)
}

func TestError(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	t.Run("application error keeps its status and details", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		respond.Error(recorder, request, apperr.ValidationError("Invalid input",
			apperr.FieldError{Field: "position", Message: "Must be non-negative"}))

		require.Equal(t, http.StatusBadRequest, recorder.Code)

		var envelope respond.ErrorEnvelope
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, apperr.CodeValidation, envelope.Code)
		require.Len(t, envelope.Details, 1)
		assert.Equal(t, "position", envelope.Details[0].Field)
	})

	t.Run("plain error becomes an opaque 500", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		respond.Error(recorder, request, errors.New("connection reset by peer"))

		require.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.NotContains(t, recorder.Body.String(), "connection reset")
		assert.Contains(t, recorder.Body.String(), apperr.CodeInternal)
	})
}

func TestNoContent(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.NoContent(recorder)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.String())
}
