// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sixcities/internal/platform/constants"
	"github.com/taibuivan/sixcities/internal/platform/middleware"
	"github.com/taibuivan/sixcities/internal/platform/pipeline"
	"github.com/taibuivan/sixcities/internal/platform/sec"
	"github.com/taibuivan/sixcities/internal/rental/comment"
	"github.com/taibuivan/sixcities/pkg/uuid"
)

func TestHandler_Comments(t *testing.T) {
	offerID, authorID := uuid.New(), uuid.New()
	store := newMemoryComments(offerID)

	tokens, err := sec.NewTokenService("test-secret", "HS256", constants.AuthIssuer, 300*time.Second, 7200*time.Second)
	require.NoError(t, err)
	token, err := tokens.Issue(sec.Principal{ID: authorID, Email: "alice@example.com"}, constants.TokenKindAccess, time.Minute)
	require.NoError(t, err)

	mux := chi.NewRouter()
	mux.Use(middleware.Authenticate(tokens, sec.NewMemoryRevocationSet()))
	router := pipeline.NewRouter(mux, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	router.Mount("/comments", comment.NewHandler(comment.NewService(store, store), store))

	do := func(method, target, bearer string, body any) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != nil {
			raw, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
		request := httptest.NewRequest(method, target, reader)
		if bearer != "" {
			request.Header.Set(constants.HeaderAuthorization, "Bearer "+bearer)
		}
		recorder := httptest.NewRecorder()
		mux.ServeHTTP(recorder, request)
		return recorder
	}

	review := map[string]any{"text": "Spotless and central", "rating": 4}

	tests := []struct {
		name       string
		method     string
		target     string
		bearer     string
		wantStatus int
	}{
		{"anonymous post", http.MethodPost, "/comments/" + offerID, "", http.StatusUnauthorized},
		{"malformed offer id", http.MethodPost, "/comments/abc", token, http.StatusBadRequest},
		{"unknown offer", http.MethodPost, "/comments/" + uuid.New(), token, http.StatusNotFound},
		{"created", http.MethodPost, "/comments/" + offerID, token, http.StatusCreated},
		{"list unknown offer", http.MethodGet, "/comments/" + uuid.New(), "", http.StatusNotFound},
		{"list", http.MethodGet, "/comments/" + offerID, "", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var body any
			if tc.method == http.MethodPost {
				body = review
			}
			recorder := do(tc.method, tc.target, tc.bearer, body)
			assert.Equal(t, tc.wantStatus, recorder.Code, recorder.Body.String())
		})
	}

	recorder := do(http.MethodGet, "/comments/"+offerID, "", nil)
	var envelope struct {
		Data []comment.Comment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, 4, envelope.Data[0].Rating)
	assert.Equal(t, authorID, envelope.Data[0].Author.ID)
}
