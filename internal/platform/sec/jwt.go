// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, JWT
// signing, token revocation) from the domain logic. The [TokenService] is
// injected into the auth service and the authenticate middleware.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/sixcities/internal/platform/constants"
	"github.com/taibuivan/sixcities/pkg/uuid"
)

// ErrInvalidToken is returned for any token that fails signature, algorithm,
// expiry, or kind checks. Callers must not distinguish between the causes.
var ErrInvalidToken = errors.New("sec: invalid token")

// Principal is the verified identity attached to an authenticated request.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthClaims represents the payload embedded inside a signed session token.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"uid"`
	Email  string `json:"email"`
	Kind   string `json:"knd"`
}

// Principal returns the identity part of the claims.
func (claims *AuthClaims) Principal() Principal {
	return Principal{ID: claims.UserID, Email: claims.Email}
}

// TokenPair is the access/refresh couple issued at login.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// TokenService issues and verifies HMAC-signed JWTs.
//
// The signing algorithm is fixed at construction and pinned at verification:
// a token whose header names any other algorithm is rejected.
type TokenService struct {
	secret     []byte
	method     *jwt.SigningMethodHMAC
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// Option customizes a [TokenService].
type Option func(*TokenService)

// WithClock replaces the wall clock used for issuing and verifying tokens.
func WithClock(now func() time.Time) Option {
	return func(service *TokenService) {
		service.now = now
	}
}

// NewTokenService creates a new TokenService.
//
// # Parameters
//   - secret: shared HMAC secret, must not be empty.
//   - algorithm: one of HS256, HS384, HS512.
//   - issuer: value of the 'iss' claim.
//   - accessTTL, refreshTTL: lifetimes of the two token kinds.
func NewTokenService(secret, algorithm, issuer string, accessTTL, refreshTTL time.Duration, opts ...Option) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: empty signing secret")
	}

	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("sec: unsupported signing algorithm %q", algorithm)
	}

	service := &TokenService{
		secret:     []byte(secret),
		method:     method,
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// AccessTTL returns the configured access token lifetime.
func (service *TokenService) AccessTTL() time.Duration {
	return service.accessTTL
}

// Issue signs a token of the given kind for principal, valid for ttl.
func (service *TokenService) Issue(principal Principal, kind string, ttl time.Duration) (string, error) {
	currentTime := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			Subject:   principal.ID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(ttl)),
		},
		UserID: principal.ID,
		Email:  principal.Email,
		Kind:   kind,
	}

	token := jwt.NewWithClaims(service.method, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// IssuePair signs an access token and a refresh token together.
// Either both are returned or neither is.
func (service *TokenService) IssuePair(principal Principal) (*TokenPair, error) {
	currentTime := service.now()

	accessToken, err := service.Issue(principal, constants.TokenKindAccess, service.accessTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := service.Issue(principal, constants.TokenKindRefresh, service.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  currentTime.Add(service.accessTTL),
		RefreshToken:     refreshToken,
		RefreshExpiresAt: currentTime.Add(service.refreshTTL),
	}, nil
}

// VerifyToken checks an access token. Refresh tokens are rejected.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	return service.verify(tokenString, constants.TokenKindAccess)
}

// VerifyRefreshToken checks a refresh token. Access tokens are rejected.
func (service *TokenService) VerifyRefreshToken(tokenString string) (*AuthClaims, error) {
	return service.verify(tokenString, constants.TokenKindRefresh)
}

// verify checks signature, pinned algorithm, expiry, issuer and kind.
func (service *TokenService) verify(tokenString, kind string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if token.Method.Alg() != service.method.Alg() {
				return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
			}
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{service.method.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Kind != kind || claims.UserID == "" {
		return nil, fmt.Errorf("%w: unexpected token kind %q", ErrInvalidToken, claims.Kind)
	}

	return claims, nil
}
