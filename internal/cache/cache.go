// Package cache stores short-lived values such as one-time passwords.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache is a string key/value store with per-key expiry.
type Cache interface {
	// Backend names the implementation ("redis" or "memory").
	Backend() string
	SetEx(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
	// CompareAndDelete atomically removes key if it currently holds value.
	// It reports whether the key was removed.
	CompareAndDelete(ctx context.Context, key, value string) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}
