package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"time"
)

// CacheEntry represents a cached API response.
type CacheEntry struct {
	Response  *PriceResponse
	ExpiresAt time.Time
}

// ResponseCache provides in-memory caching for EnergyZero responses.
// It exists so that repeated batch runs against the same historical year
// don't hammer the service while iterating locally; historical prices never
// change, but the cache still carries a TTL as a safety valve.
//
// Enabled only when ENABLE_ENERGYZERO_CACHE=true and never in production
// (API_ENV=production disables it).
type ResponseCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
}

var globalCache *ResponseCache
var cacheOnce sync.Once

// GetCache returns the global cache instance if caching is enabled,
// nil otherwise.
func GetCache() *ResponseCache {
	if os.Getenv("ENABLE_ENERGYZERO_CACHE") != "true" {
		return nil
	}
	if os.Getenv("API_ENV") == "production" {
		return nil
	}

	cacheOnce.Do(func() {
		ttl := time.Hour
		if ttlStr := os.Getenv("ENERGYZERO_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}
		globalCache = &ResponseCache{
			store: make(map[string]*CacheEntry),
			ttl:   ttl,
		}
	})

	return globalCache
}

// Get retrieves a cached response if available and not expired.
func (c *ResponseCache) Get(key string) (*PriceResponse, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Response, true
}

// Set stores a response in the cache.
func (c *ResponseCache) Set(key string, response *PriceResponse) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		Response:  response,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries from the cache.
func (c *ResponseCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

// CacheKey creates a deterministic cache key for one query range.
func CacheKey(from, till time.Time) string {
	keyStr := fmt.Sprintf("%d:%d", from.UTC().Unix(), till.UTC().Unix())
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
