// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sixcities/internal/platform/apperr"
	"github.com/taibuivan/sixcities/internal/platform/constants"
	"github.com/taibuivan/sixcities/internal/platform/ctxutil"
	"github.com/taibuivan/sixcities/internal/platform/middleware"
	"github.com/taibuivan/sixcities/internal/platform/respond"
	"github.com/taibuivan/sixcities/internal/platform/sec"
)

// failingSet simulates an unreachable revocation store.
type failingSet struct{}

func (failingSet) Contains(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func (failingSet) Insert(context.Context, string, time.Time) (bool, error) { return true, nil }

func newTokens(t *testing.T) *sec.TokenService {
	t.Helper()
	tokens, err := sec.NewTokenService("secret", "HS256", constants.AuthIssuer, time.Minute, time.Hour)
	require.NoError(t, err)
	return tokens
}

// whoAmI echoes the principal id, or "anonymous".
var whoAmI = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	principal := ctxutil.GetPrincipal(request.Context())
	if principal == nil {
		respond.OK(writer, "anonymous")
		return
	}
	respond.OK(writer, principal.ID)
})

/*
TestAuthenticate covers anonymous, valid, revoked and malformed requests.
*/
func TestAuthenticate(t *testing.T) {
	tokens := newTokens(t)
	revoked := sec.NewMemoryRevocationSet()

	pair, err := tokens.IssuePair(sec.Principal{ID: "u1", Email: "a@b.com"})
	require.NoError(t, err)

	loggedOut, err := tokens.Issue(sec.Principal{ID: "u2"}, constants.TokenKindAccess, time.Minute)
	require.NoError(t, err)
	_, err = revoked.Insert(context.Background(), loggedOut, time.Now().Add(time.Minute))
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
		wantCode   string
	}{
		{"anonymous", "", http.StatusOK, "anonymous", ""},
		{"valid_access", "Bearer " + pair.AccessToken, http.StatusOK, "u1", ""},
		{"scheme_case_insensitive", "bearer " + pair.AccessToken, http.StatusOK, "u1", ""},
		{"refresh_as_access", "Bearer " + pair.RefreshToken, http.StatusUnauthorized, "", apperr.CodeInvalidToken},
		{"revoked", "Bearer " + loggedOut, http.StatusUnauthorized, "", apperr.CodeInvalidToken},
		{"garbage", "Bearer nope", http.StatusUnauthorized, "", apperr.CodeInvalidToken},
		{"wrong_scheme", "Basic dXNlcjpwdw==", http.StatusUnauthorized, "", apperr.CodeInvalidToken},
	}

	handler := middleware.Authenticate(tokens, revoked)(whoAmI)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set(constants.HeaderAuthorization, tt.header)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantCode != "" {
				var body respond.ErrorEnvelope
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
				assert.Equal(t, tt.wantCode, body.Code)
				return
			}

			var body respond.SuccessEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body.Data)
		})
	}
}

/*
TestAuthenticate_RevocationStoreDown fails closed with a storage error.
*/
func TestAuthenticate_RevocationStoreDown(t *testing.T) {
	tokens := newTokens(t)
	token, err := tokens.Issue(sec.Principal{ID: "u1"}, constants.TokenKindAccess, time.Minute)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	recorder := httptest.NewRecorder()

	middleware.Authenticate(tokens, failingSet{})(whoAmI).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
