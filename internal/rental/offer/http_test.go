// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package offer_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sixcities/internal/platform/apperr"
	"github.com/taibuivan/sixcities/internal/platform/constants"
	"github.com/taibuivan/sixcities/internal/platform/middleware"
	"github.com/taibuivan/sixcities/internal/platform/pipeline"
	"github.com/taibuivan/sixcities/internal/platform/sec"
	"github.com/taibuivan/sixcities/internal/rental/offer"
	"github.com/taibuivan/sixcities/pkg/uuid"
)

type api struct {
	handler   http.Handler
	fixture   fixture
	tokens    *sec.TokenService
	uploadDir string
}

func newAPI(t *testing.T) api {
	t.Helper()

	tokens, err := sec.NewTokenService("test-secret", "HS256", constants.AuthIssuer, 300*time.Second, 7200*time.Second)
	require.NoError(t, err)

	f := newFixture()
	dir := t.TempDir()

	mux := chi.NewRouter()
	mux.Use(middleware.Authenticate(tokens, sec.NewMemoryRevocationSet()))
	router := pipeline.NewRouter(mux, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	router.Mount("/offers", offer.NewHandler(f.service, dir))

	return api{handler: mux, fixture: f, tokens: tokens, uploadDir: dir}
}

func (a api) token(t *testing.T, userID string) string {
	t.Helper()
	token, err := a.tokens.Issue(sec.Principal{ID: userID, Email: userID + "@example.com"}, constants.TokenKindAccess, time.Minute)
	require.NoError(t, err)
	return token
}

func (a api) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	request := httptest.NewRequest(method, target, reader)
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	a.handler.ServeHTTP(recorder, request)
	return recorder
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
	Code  string          `json:"code"`
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

/*
TestHandler_GuardOrdering checks the id guards on the public detail route.
*/
func TestHandler_GuardOrdering(t *testing.T) {
	a := newAPI(t)
	unknown := uuid.New()

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCode   string
		wantError  string
	}{
		{"malformed id", "/offers/not-an-id", http.StatusBadRequest, apperr.CodeBadRequest, "not-an-id is invalid id"},
		{"unknown id", "/offers/" + unknown, http.StatusNotFound, apperr.CodeNotFound, fmt.Sprintf("Offer with %s not found.", unknown)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := a.do(t, http.MethodGet, tc.target, "", nil)
			assert.Equal(t, tc.wantStatus, recorder.Code)
			body := decode(t, recorder)
			assert.Equal(t, tc.wantCode, body.Code)
			assert.Equal(t, tc.wantError, body.Error)
		})
	}

	// Private guard runs before the id guards
	recorder := a.do(t, http.MethodDelete, "/offers/not-an-id", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestHandler_OfferLifecycle creates, reads, edits and deletes an offer over HTTP.
*/
func TestHandler_OfferLifecycle(t *testing.T) {
	a := newAPI(t)
	owner, stranger := uuid.New(), uuid.New()

	// ── 1. Create ──
	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodPost, "/offers", "", validInput()).Code)

	recorder := a.do(t, http.MethodPost, "/offers", a.token(t, owner), validInput())
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created offer.Offer
	require.NoError(t, json.Unmarshal(decode(t, recorder).Data, &created))
	assert.Equal(t, owner, created.UserID)

	// ── 2. List ──
	recorder = a.do(t, http.MethodGet, "/offers?page=1&limit=10", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var summaries []offer.Summary
	require.NoError(t, json.Unmarshal(decode(t, recorder).Data, &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, created.ID, summaries[0].ID)

	// ── 3. Edit ──
	target := "/offers/" + created.ID
	recorder = a.do(t, http.MethodPatch, target, a.token(t, stranger), map[string]any{"rental_cost": 999})
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, apperr.CodeForbidden, decode(t, recorder).Code)

	recorder = a.do(t, http.MethodPatch, target, a.token(t, owner), map[string]any{"rental_cost": 999})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var updated offer.Offer
	require.NoError(t, json.Unmarshal(decode(t, recorder).Data, &updated))
	assert.Equal(t, 999, updated.RentalCost)

	// ── 4. Delete ──
	assert.Equal(t, http.StatusForbidden, a.do(t, http.MethodDelete, target, a.token(t, stranger), nil).Code)
	assert.Equal(t, http.StatusNoContent, a.do(t, http.MethodDelete, target, a.token(t, owner), nil).Code)
	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodGet, target, "", nil).Code)
}

/*
TestHandler_Favorites exercises the idempotent favorite endpoints.
*/
func TestHandler_Favorites(t *testing.T) {
	a := newAPI(t)
	owner, fan := uuid.New(), uuid.New()
	created := createOffer(t, a.fixture, owner, nil)
	token := a.token(t, fan)

	for range 2 {
		assert.Equal(t, http.StatusNoContent, a.do(t, http.MethodPost, "/offers/favorites/"+created.ID, token, nil).Code)
	}

	recorder := a.do(t, http.MethodGet, "/offers/favorites", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var favorites []offer.Summary
	require.NoError(t, json.Unmarshal(decode(t, recorder).Data, &favorites))
	require.Len(t, favorites, 1)
	assert.True(t, favorites[0].IsFavorite)

	recorder = a.do(t, http.MethodGet, "/offers/"+created.ID, token, nil)
	var detail offer.Offer
	require.NoError(t, json.Unmarshal(decode(t, recorder).Data, &detail))
	assert.True(t, detail.IsFavorite)

	for range 2 {
		assert.Equal(t, http.StatusNoContent, a.do(t, http.MethodDelete, "/offers/favorites/"+created.ID, token, nil).Code)
	}
	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodPost, "/offers/favorites/"+uuid.New(), token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodGet, "/offers/favorites", "", nil).Code)
}

/*
TestHandler_Preview stores an owner's upload and discards a stranger's.
*/
func TestHandler_Preview(t *testing.T) {
	a := newAPI(t)
	owner, stranger := uuid.New(), uuid.New()
	created := createOffer(t, a.fixture, owner, nil)

	upload := func(userID string) *httptest.ResponseRecorder {
		var body bytes.Buffer
		form := multipart.NewWriter(&body)
		part, err := form.CreateFormFile(offer.FieldPreview, "room.png")
		require.NoError(t, err)
		_, err = part.Write(append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...))
		require.NoError(t, err)
		require.NoError(t, form.Close())

		request := httptest.NewRequest(http.MethodPost, "/offers/"+created.ID+"/preview", &body)
		request.Header.Set("Content-Type", form.FormDataContentType())
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+a.token(t, userID))

		recorder := httptest.NewRecorder()
		a.handler.ServeHTTP(recorder, request)
		return recorder
	}

	recorder := upload(stranger)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	entries, err := os.ReadDir(a.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected uploads are removed")

	recorder = upload(owner)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var updated offer.Offer
	require.NoError(t, json.Unmarshal(decode(t, recorder).Data, &updated))
	assert.True(t, strings.HasPrefix(updated.PreviewImage, constants.UploadRoutePrefix+"/"))
	assert.FileExists(t, filepath.Join(a.uploadDir, filepath.Base(updated.PreviewImage)))
}
