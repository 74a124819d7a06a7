// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/sixcities/internal/platform/constants"
)

// RedisRevocationSet stores revoked tokens in Redis so the set survives
// restarts. Each entry expires together with the token it revokes.
type RedisRevocationSet struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisRevocationSet creates a Redis-backed [RevocationSet].
func NewRedisRevocationSet(client *redis.Client) *RedisRevocationSet {
	return &RedisRevocationSet{client: client, now: time.Now}
}

/*
Contains reports whether the token has been revoked.

Parameters:
  - context: context.Context
  - token: string (raw bearer value)

Returns:
  - bool: true when revoked
  - error: connectivity errors
*/
func (set *RedisRevocationSet) Contains(context context.Context, token string) (bool, error) {
	count, err := set.client.Exists(context, revokedTokenKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("redis_revocation_contains_failed: %w", err)
	}
	return count > 0, nil
}

/*
Insert revokes the token until expiresAt.

Description: SETNX makes the insert atomic across replicas. Tokens that are
already past expiry are reported as present without a round trip because
verification rejects them before the set is consulted.

Parameters:
  - context: context.Context
  - token: string
  - expiresAt: time.Time

Returns:
  - bool: false when the token was already revoked or has expired
  - error: connectivity errors
*/
func (set *RedisRevocationSet) Insert(context context.Context, token string, expiresAt time.Time) (bool, error) {
	ttl := expiresAt.Sub(set.now())
	if ttl <= 0 {
		return false, nil
	}

	inserted, err := set.client.SetNX(context, revokedTokenKey(token), 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis_revocation_insert_failed: %w", err)
	}
	return inserted, nil
}

// revokedTokenKey hashes the token so raw credentials never sit in Redis.
func revokedTokenKey(token string) string {
	digest := sha256.Sum256([]byte(token))
	return constants.RedisPrefixRevokedToken + hex.EncodeToString(digest[:])
}
