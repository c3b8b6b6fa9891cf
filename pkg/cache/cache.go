// Package cache provides response caching for upstream API lookups.
//
// Three backends implement the Cache interface: a file cache for normal CLI
// usage, a redis cache for shared environments, and a null cache that
// disables caching entirely. Keys are opaque strings; values are raw bytes
// (typically JSON-encoded API responses).
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Sentinel errors shared by the HTTP client layer.
var (
	// ErrNotFound is returned when an upstream resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection
	// errors, non-2xx responses).
	ErrNetwork = errors.New("network error")
)

// Cache stores raw byte values under string keys with a per-entry TTL.
// A TTL of zero means the entry never expires.
type Cache interface {
	// Get returns the stored bytes and whether the key was present and
	// fresh. Expired or missing entries report a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key, replacing any previous entry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes an entry; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Hash computes the SHA-256 hex digest of data. Used to derive filesystem
// safe names from arbitrary cache keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DefaultDir returns the default on-disk cache location
// (~/.cache/spmaudit).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "spmaudit"), nil
}
