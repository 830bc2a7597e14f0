package cache

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"
)

// Ensure MemoryCache implements Cache
var _ Cache = (*MemoryCache)(nil)

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is the in-process stand-in for Redis used in development.
// Expired entries are dropped on read and by Sweep.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemory creates an empty MemoryCache.
func NewMemory() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Backend implements Cache.
func (m *MemoryCache) Backend() string { return "memory" }

// SetEx stores value under key for ttl. A non-positive ttl stores without expiry.
func (m *MemoryCache) SetEx(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.entries[key] = e
	return nil
}

// Get returns ErrMiss when the key is absent or expired.
func (m *MemoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", ErrMiss
	}
	if m.expired(e) {
		delete(m.entries, key)
		return "", ErrMiss
	}
	return e.value, nil
}

// Del removes key.
func (m *MemoryCache) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// CompareAndDelete removes key if it holds value and has not expired.
func (m *MemoryCache) CompareAndDelete(_ context.Context, key, value string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	if m.expired(e) {
		delete(m.entries, key)
		return false, nil
	}
	if subtle.ConstantTimeCompare([]byte(e.value), []byte(value)) != 1 {
		return false, nil
	}
	delete(m.entries, key)
	return true, nil
}

// Ping always succeeds.
func (m *MemoryCache) Ping(context.Context) error { return nil }

// Close drops every entry.
func (m *MemoryCache) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]entry)
	return nil
}

// Sweep removes expired entries and returns how many were removed.
func (m *MemoryCache) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, e := range m.entries {
		if m.expired(e) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired or not.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *MemoryCache) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt)
}
