// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yuedu/internal/api"
	"github.com/taibuivan/yuedu/internal/core/book"
	"github.com/taibuivan/yuedu/internal/library/progress"
	"github.com/taibuivan/yuedu/internal/library/settings"
	"github.com/taibuivan/yuedu/internal/platform/config"
	"github.com/taibuivan/yuedu/internal/platform/sec"
)

type rejectAll struct{}

func (rejectAll) VerifyToken(string) (*sec.AuthClaims, error) {
	return nil, errors.New("invalid token")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, dependencies api.HealthDependencies) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	liveness, readiness := api.NewHealthHandlers(dependencies, discardLogger())
	cfg := &config.Config{ServerPort: "0", Environment: "test"}

	server := api.NewServer(ctx, cfg, discardLogger(), rejectAll{}, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Book:      book.NewHandler(nil),
		Progress:  progress.NewHandler(nil),
		Settings:  settings.NewHandler(nil),
	})
	return server.Handler()
}

func TestServer_Health(t *testing.T) {
	router := newTestServer(t, api.HealthDependencies{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, recorder.Body.String())
}

func TestServer_Ready(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("all healthy", func(t *testing.T) {
		router := newTestServer(t, api.HealthDependencies{Database: ok, Cache: ok, Storage: ok})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("one dependency down", func(t *testing.T) {
		router := newTestServer(t, api.HealthDependencies{Database: ok, Cache: down, Storage: ok})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
		require.Equal(t, http.StatusServiceUnavailable, recorder.Code)

		var envelope struct {
			Data struct {
				Status string `json:"status"`
				Checks []struct {
					Name string `json:"name"`
					OK   bool   `json:"ok"`
				} `json:"checks"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, "degraded", envelope.Data.Status)
		require.Len(t, envelope.Data.Checks, 3)
		assert.False(t, envelope.Data.Checks[1].OK)
	})
}

func TestServer_APIRequiresAuth(t *testing.T) {
	router := newTestServer(t, api.HealthDependencies{})

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/books"},
		{http.MethodGet, "/api/v1/books/1/content"},
		{http.MethodPost, "/api/v1/reading/heartbeat"},
		{http.MethodGet, "/api/v1/reading/settings"},
	}

	for _, tc := range paths {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, tc.path)
	}

	// A malformed token is rejected before routing
	request := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
	request.Header.Set("Authorization", "Bearer not-a-jwt")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
