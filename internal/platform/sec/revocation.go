// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"context"
	"sync"
	"time"
)

// RevocationSet remembers token values invalidated by logout.
//
// # Concurrency
//
// Implementations must be safe for concurrent Contains and Insert calls: any
// request may log out while any other request is being authenticated.
type RevocationSet interface {
	// Contains reports whether the literal token value was revoked.
	Contains(ctx context.Context, token string) (bool, error)

	// Insert revokes the token. expiresAt lets bounded stores drop the entry
	// once the token could no longer verify anyway.
	//
	// The check and the write are one atomic step: inserted is false when the
	// token was already revoked, so exactly one concurrent caller wins.
	Insert(ctx context.Context, token string, expiresAt time.Time) (inserted bool, err error)
}

// MemoryRevocationSet is the process-local [RevocationSet].
//
// Entries are never evicted; the set is reset when the process restarts.
type MemoryRevocationSet struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

// NewMemoryRevocationSet returns an empty in-memory revocation set.
func NewMemoryRevocationSet() *MemoryRevocationSet {
	return &MemoryRevocationSet{tokens: make(map[string]struct{})}
}

// Contains implements [RevocationSet].
func (set *MemoryRevocationSet) Contains(_ context.Context, token string) (bool, error) {
	set.mu.RLock()
	defer set.mu.RUnlock()

	_, found := set.tokens[token]
	return found, nil
}

// Insert implements [RevocationSet].
func (set *MemoryRevocationSet) Insert(_ context.Context, token string, _ time.Time) (bool, error) {
	set.mu.Lock()
	defer set.mu.Unlock()

	if _, found := set.tokens[token]; found {
		return false, nil
	}
	set.tokens[token] = struct{}{}
	return true, nil
}

// Len returns the number of revoked tokens.
func (set *MemoryRevocationSet) Len() int {
	set.mu.RLock()
	defer set.mu.RUnlock()
	return len(set.tokens)
}
