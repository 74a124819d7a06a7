// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package aggregate

import "sync"

// keyedMutex hands out one mutex per key and forgets it once unused.
type keyedMutex struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu      sync.Mutex
	holders int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{entries: make(map[string]*lockEntry)}
}

// Lock blocks until key is free and returns its unlock function.
func (keyed *keyedMutex) Lock(key string) func() {
	keyed.mu.Lock()
	entry, found := keyed.entries[key]
	if !found {
		entry = &lockEntry{}
		keyed.entries[key] = entry
	}
	entry.holders++
	keyed.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		keyed.mu.Lock()
		entry.holders--
		if entry.holders == 0 {
			delete(keyed.entries, key)
		}
		keyed.mu.Unlock()
	}
}

func (keyed *keyedMutex) size() int {
	keyed.mu.Lock()
	defer keyed.mu.Unlock()
	return len(keyed.entries)
}
