// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sixcities/internal/platform/apperr"
)

/*
TestConstructors_StatusMapping checks that every error kind maps to its HTTP status.
*/
func TestConstructors_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		code   string
		status int
	}{
		{"bad_request", apperr.BadRequest("x is invalid id"), apperr.CodeBadRequest, http.StatusBadRequest},
		{"validation", apperr.ValidationError("Validation failed"), apperr.CodeValidation, http.StatusBadRequest},
		{"unauthorized", apperr.Unauthorized("Unauthorized"), apperr.CodeUnauthorized, http.StatusUnauthorized},
		{"invalid_token", apperr.InvalidToken("Invalid token"), apperr.CodeInvalidToken, http.StatusUnauthorized},
		{"forbidden", apperr.Forbidden("nope"), apperr.CodeForbidden, http.StatusForbidden},
		{"not_found", apperr.DocumentNotFound("Offer", "42"), apperr.CodeNotFound, http.StatusNotFound},
		{"conflict", apperr.Conflict("dup"), apperr.CodeConflict, http.StatusConflict},
		{"storage", apperr.Storage(errors.New("db down")), apperr.CodeStorage, http.StatusInternalServerError},
		{"internal", apperr.Internal(errors.New("boom")), apperr.CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}

/*
TestDocumentNotFound_Message verifies the message names the kind and the id.
*/
func TestDocumentNotFound_Message(t *testing.T) {
	err := apperr.DocumentNotFound("Offer", "0190a3b2-0000-7000-8000-000000000001")
	assert.Equal(t, "Offer with 0190a3b2-0000-7000-8000-000000000001 not found.", err.Error())
}

/*
TestWithComponent_DoesNotMutateOriginal ensures sentinels stay untouched.
*/
func TestWithComponent_DoesNotMutateOriginal(t *testing.T) {
	base := apperr.Unauthorized("Unauthorized")
	tagged := base.WithComponent("PrivateRoute")

	assert.Empty(t, base.Component)
	assert.Equal(t, "PrivateRoute", tagged.Component)
	assert.Equal(t, base.Code, tagged.Code)
}

/*
TestAs_TraversesWrappedChain verifies extraction through fmt.Errorf wrapping.
*/
func TestAs_TraversesWrappedChain(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := fmt.Errorf("offer_service_create_failed: %w", apperr.Storage(cause))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeStorage, ae.Code)
	assert.ErrorIs(t, wrapped, cause)
	assert.True(t, apperr.HasCode(wrapped, apperr.CodeStorage))
	assert.False(t, apperr.IsAppError(cause))
}
