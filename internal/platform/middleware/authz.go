// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/sixcities/internal/platform/apperr"
	"github.com/taibuivan/sixcities/internal/platform/constants"
	"github.com/taibuivan/sixcities/internal/platform/ctxutil"
	"github.com/taibuivan/sixcities/internal/platform/respond"
	"github.com/taibuivan/sixcities/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the bearer token from the Authorization header.
//
// # Flow
//  1. No Authorization header: the request proceeds as anonymous.
//  2. Malformed header or failed verification: 401 INVALID_TOKEN.
//  3. Verified token found in the revocation set: 401 INVALID_TOKEN.
//  4. Otherwise the claims and the raw token are attached to the context.
//
// The revocation set is only consulted for tokens that verified, so forged
// tokens never cost a storage round trip.
func Authenticate(verifier TokenVerifier, revoked sec.RevocationSet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			scheme, tokenStr, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, constants.BearerScheme) || tokenStr == "" {
				respondError(writer, request, apperr.InvalidToken("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				respondError(writer, request, apperr.InvalidToken("Invalid or expired token"))
				return
			}

			// ── 4. Revocation Check ───────────────────────────────────────────
			isRevoked, err := revoked.Contains(request.Context(), tokenStr)
			if err != nil {
				respondError(writer, request, apperr.Storage(err))
				return
			}
			if isRevoked {
				respondError(writer, request, apperr.InvalidToken("Token has been revoked"))
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims, tokenStr)
			logger := ctxutil.GetLogger(ctx).With(slog.String("user_id", claims.UserID))
			ctx = ctxutil.WithLogger(ctx, logger)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

func respondError(writer http.ResponseWriter, request *http.Request, err *apperr.AppError) {
	respond.Error(writer, request, err.WithComponent("authenticate"))
}
