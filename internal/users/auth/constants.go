// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Account Constraints

const (
	NameMinLength     = 1
	NameMaxLength     = 15
	PasswordMinLength = 6
	PasswordMaxLength = 12
)

// # Avatar Upload

// AvatarContentTypes are the image types accepted for avatars.
var AvatarContentTypes = []string{"image/jpeg", "image/png"}

// TokenTypeBearer is returned as token_type on login and refresh.
const TokenTypeBearer = "Bearer"
