// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sixcities/internal/platform/constants"
	"github.com/taibuivan/sixcities/internal/platform/ctxutil"
	"github.com/taibuivan/sixcities/internal/platform/sec"
)

/*
TestContext_Anonymous checks the zero values a bare context yields.
*/
func TestContext_Anonymous(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRequestID(ctx))
	assert.Same(t, slog.Default(), ctxutil.GetLogger(ctx))
	assert.Nil(t, ctxutil.GetAuthUser(ctx))
	assert.Nil(t, ctxutil.GetPrincipal(ctx))
	assert.Empty(t, ctxutil.GetToken(ctx))
}

/*
TestContext_RequestScope stores what the middleware chain attaches to a request.
*/
func TestContext_RequestScope(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	claims := &sec.AuthClaims{UserID: "0190a0b0-0000-7000-8000-000000000001", Email: "host@sixcities.app", Kind: constants.TokenKindAccess}

	ctx := ctxutil.WithRequestID(context.Background(), "req-42")
	ctx = ctxutil.WithLogger(ctx, logger)
	ctx = ctxutil.WithAuthUser(ctx, claims, "raw-token")

	assert.Equal(t, "req-42", ctxutil.GetRequestID(ctx))
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
	assert.Same(t, claims, ctxutil.GetAuthUser(ctx))
	assert.Equal(t, "raw-token", ctxutil.GetToken(ctx))

	principal := ctxutil.GetPrincipal(ctx)
	require.NotNil(t, principal)
	assert.Equal(t, sec.Principal{ID: claims.UserID, Email: claims.Email}, *principal)
}
