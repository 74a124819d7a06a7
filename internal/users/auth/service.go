// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/sixcities/internal/platform/apperr"
	"github.com/taibuivan/sixcities/internal/platform/constants"
	"github.com/taibuivan/sixcities/internal/platform/ctxutil"
	"github.com/taibuivan/sixcities/internal/platform/dberr"
	"github.com/taibuivan/sixcities/internal/platform/metrics"
	"github.com/taibuivan/sixcities/internal/platform/sec"
	"github.com/taibuivan/sixcities/internal/platform/validate"
	"github.com/taibuivan/sixcities/pkg/uuid"
)

// # Contracts & Types

// TokenProvider issues token pairs and verifies refresh tokens.
// *sec.TokenService satisfies it.
type TokenProvider interface {
	IssuePair(principal sec.Principal) (*sec.TokenPair, error)
	VerifyRefreshToken(tokenString string) (*sec.AuthClaims, error)
}

// Service implements user authentication use cases.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
	revoked        sec.RevocationSet
	metrics        *metrics.Metrics
}

// NewService constructs a new [Service] with necessary dependencies.
// metrics may be nil.
func NewService(userRepo UserRepository, tokenProv TokenProvider, revoked sec.RevocationSet, m *metrics.Metrics) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
		revoked:        revoked,
		metrics:        m,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Type     UserType
}

func (input *RegisterInput) validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		Length(FieldName, input.Name, NameMinLength, NameMaxLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Length(FieldPassword, input.Password, PasswordMinLength, PasswordMaxLength).
		OneOf(FieldType, string(input.Type), string(UserTypeSimple), string(UserTypePro))
	return validator.Err()
}

/*
Register validates, hashes, and persists a brand new user account.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Validation, Conflict (email exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	input.Email = normalizeEmail(input.Email)
	input.Name = strings.TrimSpace(input.Name)
	if input.Type == "" {
		input.Type = UserTypeSimple
	}

	if err := input.validate(); err != nil {
		return nil, err
	}

	// ── 1. Uniqueness ─────────────────────────────────────────────────────
	_, err := service.userRepository.FindByEmail(context, input.Email)
	switch {
	case err == nil:
		return nil, apperr.Conflict(fmt.Sprintf("User with email %s already exists.", input.Email)).WithComponent("auth_service")
	case !dberr.IsNotFound(err):
		return nil, err
	}

	// ── 2. Hash ───────────────────────────────────────────────────────────
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 3. Persist ────────────────────────────────────────────────────────
	user := &User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		Type:         input.Type,
		PasswordHash: hashedPassword,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_registered", slog.String("user_id", user.ID))
	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginSession is a freshly issued token pair with the user it belongs to.
type LoginSession struct {
	Tokens *sec.TokenPair
	User   *User
}

/*
Login validates user credentials and issues an access/refresh token pair.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Tokens and the authenticated user
  - error: Unauthorized on unknown email or wrong password
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByEmail(context, normalizeEmail(input.Email))
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid login credentials").WithComponent("auth_service")
		}
		return nil, err
	}

	// bcrypt comparison is constant-time
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials").WithComponent("auth_service")
	}

	tokens, err := service.tokenProvider.IssuePair(sec.Principal{ID: user.ID, Email: user.Email})
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginSession{Tokens: tokens, User: user}, nil
}

/*
CurrentUser returns the account behind an authenticated principal.

Returns:
  - *User
  - error: Unauthorized if the account no longer exists
*/
func (service *Service) CurrentUser(context context.Context, userID string) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Unauthorized").WithComponent("auth_service")
		}
		return nil, err
	}
	return user, nil
}

/*
Logout revokes the presented access token and, optionally, a refresh token.

Description: The access token stays revoked until it would have expired. A
refresh token is revoked only if it verifies and belongs to the same user;
anything else is ignored so that logout stays idempotent.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (of the access token)
  - accessToken: string
  - refreshToken: string (may be empty)

Returns:
  - error: revocation store failures
*/
func (service *Service) Logout(context context.Context, claims *sec.AuthClaims, accessToken, refreshToken string) error {
	if _, err := service.revoke(context, accessToken, claims, constants.TokenKindAccess); err != nil {
		return err
	}

	if refreshToken == "" {
		return nil
	}

	refreshClaims, err := service.tokenProvider.VerifyRefreshToken(refreshToken)
	if err != nil || refreshClaims.UserID != claims.UserID {
		return nil
	}

	_, err = service.revoke(context, refreshToken, refreshClaims, constants.TokenKindRefresh)
	return err
}

/*
Refresh exchanges a refresh token for a new pair and revokes the old one.

Description: The old token is revoked before anything else happens. The
revocation set inserts atomically, so among concurrent refreshes with the
same token only the caller whose insert lands gets a new pair.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *LoginSession
  - error: InvalidToken when the token fails verification, was already used
    or revoked, or belongs to a deleted account
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*LoginSession, error) {
	claims, err := service.tokenProvider.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.InvalidToken("Invalid or expired refresh token").WithComponent("auth_service")
	}

	// Rotation: the old refresh token is single-use
	claimed, err := service.revoke(context, refreshToken, claims, constants.TokenKindRefresh)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, apperr.InvalidToken("Token has been revoked").WithComponent("auth_service")
	}

	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.InvalidToken("Invalid or expired refresh token").WithComponent("auth_service")
		}
		return nil, err
	}

	tokens, err := service.tokenProvider.IssuePair(sec.Principal{ID: user.ID, Email: user.Email})
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginSession{Tokens: tokens, User: user}, nil
}

/*
UpdateAvatar stores the uploaded avatar file name on the account.

Returns:
  - *User: the updated account
  - error: Unauthorized if the account no longer exists
*/
func (service *Service) UpdateAvatar(context context.Context, userID, avatar string) (*User, error) {
	if err := service.userRepository.UpdateAvatar(context, userID, avatar); err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Unauthorized").WithComponent("auth_service")
		}
		return nil, err
	}
	return service.CurrentUser(context, userID)
}

// revoke reports false when the token was already revoked.
func (service *Service) revoke(context context.Context, token string, claims *sec.AuthClaims, kind string) (bool, error) {
	expiresAt := time.Now()
	if claims != nil && claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	inserted, err := service.revoked.Insert(context, token, expiresAt)
	if err != nil {
		return false, apperr.Storage(err).WithComponent("auth_service")
	}

	if inserted {
		service.metrics.TokenRevoked(kind)
	}
	return inserted, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
