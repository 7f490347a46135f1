// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yuedu/internal/platform/ctxutil"
	"github.com/taibuivan/yuedu/internal/platform/sec"
)

func TestEmptyContext(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRequestID(ctx))
	assert.Same(t, slog.Default(), ctxutil.GetLogger(ctx))
	assert.Nil(t, ctxutil.GetAuthUser(ctx))
}

func TestRoundTrip(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	claims := &sec.AuthClaims{UserID: "reader-42", Username: "linyu"}

	ctx := ctxutil.WithRequestID(context.Background(), "0192f0c4-req")
	ctx = ctxutil.WithLogger(ctx, logger)
	ctx = ctxutil.WithAuthUser(ctx, claims)

	assert.Equal(t, "0192f0c4-req", ctxutil.GetRequestID(ctx))
	assert.Same(t, logger, ctxutil.GetLogger(ctx))

	got := ctxutil.GetAuthUser(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "reader-42", got.UserID)
}

func TestNilLoggerFallsBack(t *testing.T) {
	ctx := ctxutil.WithLogger(context.Background(), nil)
	assert.Same(t, slog.Default(), ctxutil.GetLogger(ctx))
}
