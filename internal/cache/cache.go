// Package cache provides memory, disk, and layered caches for grammar-engine
// responses, keyed by content hash so identical text is never checked twice
// within the TTL.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage interface shared by all layers.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from arbitrary content (typically the analyzed
// text plus the engine language). Hashing keeps keys bounded and avoids
// writing document text into cache filenames.
func Key(content string) string {
	hash := sha256.Sum256([]byte(content))
	return "prosecheck:v1:" + hex.EncodeToString(hash[:])
}
