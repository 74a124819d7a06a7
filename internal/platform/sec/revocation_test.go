// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sixcities/internal/platform/sec"
)

/*
TestMemoryRevocationSet_InsertIsIdempotent checks membership semantics.
*/
func TestMemoryRevocationSet_InsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	set := sec.NewMemoryRevocationSet()
	expiry := time.Now().Add(time.Minute)

	inserted, err := set.Insert(ctx, "token-a", expiry)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = set.Insert(ctx, "token-a", expiry)
	require.NoError(t, err)
	assert.False(t, inserted, "second insert reports the token as already revoked")

	revoked, err := set.Contains(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = set.Contains(ctx, "token-b")
	require.NoError(t, err)
	assert.False(t, revoked)

	assert.Equal(t, 1, set.Len())
}

/*
TestMemoryRevocationSet_Concurrent exercises concurrent readers and writers.
Run with -race.
*/
func TestMemoryRevocationSet_Concurrent(t *testing.T) {
	ctx := context.Background()
	set := sec.NewMemoryRevocationSet()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_, _ = set.Insert(ctx, fmt.Sprintf("token-%d", n), time.Time{})
		}(i)
		go func(n int) {
			defer wg.Done()
			_, _ = set.Contains(ctx, fmt.Sprintf("token-%d", n))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, set.Len())
}

/*
TestMemoryRevocationSet_SingleWinner races inserts of one token; exactly one
caller may observe the insert.
*/
func TestMemoryRevocationSet_SingleWinner(t *testing.T) {
	ctx := context.Background()
	set := sec.NewMemoryRevocationSet()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	start := make(chan struct{})
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			inserted, err := set.Insert(ctx, "refresh-token", time.Now().Add(time.Hour))
			if err == nil && inserted {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, wins)
}

/*
TestRevocation_VerifiedButRevokedToken combines TokenService and the set the
way the authenticate middleware does.
*/
func TestRevocation_VerifiedButRevokedToken(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{current: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	service := newTokenService(t, clock)
	set := sec.NewMemoryRevocationSet()

	revokedToken, err := service.Issue(sec.Principal{ID: "u1"}, "access", time.Hour)
	require.NoError(t, err)
	clock.Advance(time.Second)
	otherToken, err := service.Issue(sec.Principal{ID: "u1"}, "access", time.Hour)
	require.NoError(t, err)
	require.NotEqual(t, revokedToken, otherToken)

	_, err = set.Insert(ctx, revokedToken, clock.current.Add(time.Hour))
	require.NoError(t, err)

	for token, wantRevoked := range map[string]bool{revokedToken: true, otherToken: false} {
		_, err := service.VerifyToken(token)
		require.NoError(t, err)

		revoked, err := set.Contains(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, wantRevoked, revoked)
	}
}
