// Package cache provides the short-lived response memoization layer.
//
// The cache is a pure performance optimization, never a correctness
// dependency: entries are immutable once inserted, expire by TTL and are
// lost on process restart. Implementations must be safe for concurrent
// readers and writers; duplicate concurrent misses for the same key may
// both recompute, which is acceptable because computation is cheap and
// side-effect free.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"dayzero/internal/recommend/models"
)

// Cache stores opaque response payloads under fingerprint keys.
type Cache interface {
	// Get returns the payload for key, reporting a miss for unknown or
	// expired entries. Expired entries are evicted lazily on read.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set inserts a payload with a per-entry TTL.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	// Purge removes all entries and returns how many were removed.
	Purge(ctx context.Context) (int, error)
	// Len returns the number of stored entries, expired ones included.
	Len(ctx context.Context) (int, error)
}

// Key builds a cache key from the request coordinates and a content
// fingerprint.
func Key(endpoint, countryCode string, programTypeID int, fingerprint string) string {
	if fingerprint == "" {
		return fmt.Sprintf("%s:%s:%d", endpoint, countryCode, programTypeID)
	}
	return fmt.Sprintf("%s:%s:%d:%s", endpoint, countryCode, programTypeID, fingerprint)
}

// ItemsFingerprint derives a short hash over the sorted, lowercased item
// titles, so that lists differing only in order or case share a key.
func ItemsFingerprint(items []models.ChecklistItem) string {
	titles := make([]string, 0, len(items))
	for _, item := range items {
		titles = append(titles, strings.ToLower(item.Title))
	}
	sort.Strings(titles)
	return ShortHash(strings.Join(titles, "|"), 8)
}

// ShortHash returns the first n hex characters of the SHA-256 of s.
func ShortHash(s string, n int) string {
	sum := sha256.Sum256([]byte(s))
	out := hex.EncodeToString(sum[:])
	if n < len(out) {
		out = out[:n]
	}
	return out
}
