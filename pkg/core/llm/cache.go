package llm

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// ResponseCache is a TTL plus capacity bounded in-memory cache for generated
// answers, keyed by a stable hash of (question, context).
//
// Eviction is FIFO by insertion, not LRU: when the cache is full, the
// oldest-inserted entry goes first regardless of how recently it was read.
// Expired entries are removed lazily on the next lookup, never swept.
// The cache is a pure optimization; it holds no state that correctness
// depends on, and it does not survive a restart.
type ResponseCache struct {
	mu       sync.Mutex
	entries  map[string]cacheEntry
	order    []string // insertion order, oldest first
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

type cacheEntry struct {
	response   string
	insertedAt time.Time
}

const (
	// DefaultCacheTTL is how long a cached answer stays valid.
	DefaultCacheTTL = time.Hour
	// DefaultCacheCapacity bounds the number of live entries.
	DefaultCacheCapacity = 1000
)

// NewResponseCache creates a cache with the given bounds. Zero values fall
// back to the defaults.
func NewResponseCache(ttl time.Duration, capacity int) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &ResponseCache{
		entries:  make(map[string]cacheEntry),
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
	}
}

// CacheKey hashes question and context into a stable cache key. The
// separator keeps (a, bc) and (ab, c) from colliding.
func CacheKey(question, context string) string {
	h := sha256.Sum256([]byte(question + "\x1f" + context))
	return fmt.Sprintf("%x", h)
}

// Get returns the cached response for key if it exists and has not expired.
// An expired entry is deleted on the spot and reported as a miss.
func (c *ResponseCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.now().Sub(entry.insertedAt) >= c.ttl {
		delete(c.entries, key)
		c.removeFromOrder(key)
		return "", false
	}
	return entry.response, true
}

// Put stores a response, evicting the oldest-inserted entry first when at
// capacity. Re-inserting an existing key refreshes its value and timestamp
// but keeps its position in the insertion order.
func (c *ResponseCache) Put(key, response string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = cacheEntry{response: response, insertedAt: c.now()}
		return
	}

	for len(c.entries) >= c.capacity && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = cacheEntry{response: response, insertedAt: c.now()}
	c.order = append(c.order, key)
}

// Len reports the number of live (possibly expired, not yet collected)
// entries.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *ResponseCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
