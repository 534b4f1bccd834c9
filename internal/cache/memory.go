package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process Store for tests and single-node deployments
// without redis. Expired entries are dropped lazily on read and swept when
// the map is written, so the revocation list cannot grow past its live keys.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrMiss
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, ErrMiss
	}
	return entry.value, nil
}

func (m *Memory) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	// A zero TTL means no expiry, matching redis semantics.
	var expiresAt time.Time
	if ttl != 0 {
		expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	m.sweepLocked()
	m.entries[key] = memoryEntry{value: value, expiresAt: expiresAt}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// sweepLocked removes expired entries. Caller holds the write lock.
func (m *Memory) sweepLocked() {
	now := time.Now()
	for key, entry := range m.entries {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(m.entries, key)
		}
	}
}
