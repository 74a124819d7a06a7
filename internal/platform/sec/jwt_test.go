// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sixcities/internal/platform/constants"
	"github.com/taibuivan/sixcities/internal/platform/sec"
)

const testSecret = "super-secret"

// fakeClock is a manually advanced clock.
type fakeClock struct {
	current time.Time
}

func (clock *fakeClock) Now() time.Time { return clock.current }

func (clock *fakeClock) Advance(d time.Duration) { clock.current = clock.current.Add(d) }

func newTokenService(t *testing.T, clock *fakeClock) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(testSecret, "HS256", constants.AuthIssuer,
		300*time.Second, 7200*time.Second, sec.WithClock(clock.Now))
	require.NoError(t, err)
	return service
}

/*
TestTokenService_IssueVerifyExpire issues an access token, verifies it
immediately, then fails once the clock passes the TTL.
*/
func TestTokenService_IssueVerifyExpire(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	service := newTokenService(t, clock)

	principal := sec.Principal{ID: "u1", Email: "a@b.com"}
	token, err := service.Issue(principal, constants.TokenKindAccess, 300*time.Second)
	require.NoError(t, err)

	// 1. Fresh token verifies and carries the same identity
	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, principal, claims.Principal())

	// 2. Still valid one second before expiry
	clock.Advance(299 * time.Second)
	_, err = service.VerifyToken(token)
	require.NoError(t, err)

	// 3. Past the TTL
	clock.Advance(2 * time.Second)
	_, err = service.VerifyToken(token)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestTokenService_IssuePair verifies kinds and TTLs of the login pair.
*/
func TestTokenService_IssuePair(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	service := newTokenService(t, clock)

	pair, err := service.IssuePair(sec.Principal{ID: "u1", Email: "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, clock.current.Add(300*time.Second), pair.AccessExpiresAt)
	assert.Equal(t, clock.current.Add(7200*time.Second), pair.RefreshExpiresAt)

	// Access token is not a refresh token and vice versa
	_, err = service.VerifyRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
	_, err = service.VerifyToken(pair.RefreshToken)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)

	// Refresh token outlives the access token
	clock.Advance(301 * time.Second)
	_, err = service.VerifyToken(pair.AccessToken)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
	_, err = service.VerifyRefreshToken(pair.RefreshToken)
	assert.NoError(t, err)
}

/*
TestTokenService_RejectsOtherAlgorithms covers algorithm confusion.
*/
func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{current: time.Now()}
	service := newTokenService(t, clock)

	claims := sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    constants.AuthIssuer,
			IssuedAt:  jwt.NewNumericDate(clock.current),
			ExpiresAt: jwt.NewNumericDate(clock.current.Add(time.Hour)),
		},
		UserID: "u1",
		Email:  "a@b.com",
		Kind:   constants.TokenKindAccess,
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"hs512_same_secret", hs512},
		{"alg_none", none},
		{"garbage", "not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.VerifyToken(tt.token)
			assert.ErrorIs(t, err, sec.ErrInvalidToken)
		})
	}
}

/*
TestTokenService_RejectsForeignSecret ensures signatures are checked.
*/
func TestTokenService_RejectsForeignSecret(t *testing.T) {
	clock := &fakeClock{current: time.Now()}
	service := newTokenService(t, clock)

	other, err := sec.NewTokenService("other-secret", "HS256", constants.AuthIssuer,
		time.Minute, time.Hour, sec.WithClock(clock.Now))
	require.NoError(t, err)

	token, err := other.Issue(sec.Principal{ID: "u1"}, constants.TokenKindAccess, time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestNewTokenService_Validation rejects unusable configurations.
*/
func TestNewTokenService_Validation(t *testing.T) {
	_, err := sec.NewTokenService("", "HS256", "iss", time.Minute, time.Hour)
	assert.Error(t, err)

	_, err = sec.NewTokenService("s", "RS256", "iss", time.Minute, time.Hour)
	assert.Error(t, err)
}
