// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements user accounts and the bearer-token session lifecycle.

Architecture:

  - Service: registration, login, logout with revocation, refresh, avatar.
  - Repository: [UserRepository] for accounts in PostgreSQL.
  - Tokens: issued and verified by sec.TokenService; logged-out tokens are
    remembered in a sec.RevocationSet until they expire.
*/
package auth

import (
	"time"
)

// # Domain Entities

// UserType is the account tier.
type UserType string

const (
	UserTypeSimple UserType = "simple"
	UserTypePro    UserType = "pro"
)

// User represents a registered member.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Avatar       string    `json:"avatar"`
	Type         UserType  `json:"type"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldName         = "name"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldType         = "type"
	FieldAvatar       = "avatar"
	FieldAccessToken  = "access_token"
	FieldRefreshToken = "refresh_token"
	FieldTokenType    = "token_type"
	FieldExpiresIn    = "expires_in"
	FieldUser         = "user"
)
