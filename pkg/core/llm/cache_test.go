package llm

import (
	"fmt"
	"testing"
	"time"
)

func TestCacheFIFOEviction(t *testing.T) {
	cache := NewResponseCache(time.Hour, 1000)

	// Insert 1001 distinct keys into a capacity-1000 cache.
	for i := 0; i < 1001; i++ {
		cache.Put(fmt.Sprintf("key-%d", i), fmt.Sprintf("answer-%d", i))
	}

	if cache.Len() != 1000 {
		t.Fatalf("expected 1000 live entries, got %d", cache.Len())
	}

	// The very first inserted key is the one evicted.
	if _, ok := cache.Get("key-0"); ok {
		t.Error("expected key-0 to be evicted (FIFO by insertion)")
	}
	// The 1000 most recent remain.
	for _, k := range []string{"key-1", "key-500", "key-1000"} {
		if _, ok := cache.Get(k); !ok {
			t.Errorf("expected %s to survive eviction", k)
		}
	}
}

func TestCacheEvictionIgnoresRecencyOfUse(t *testing.T) {
	cache := NewResponseCache(time.Hour, 2)
	cache.Put("a", "1")
	cache.Put("b", "2")

	// Reading "a" does not protect it: eviction is FIFO, not LRU.
	if _, ok := cache.Get("a"); !ok {
		t.Fatal("expected a to be present")
	}
	cache.Put("c", "3")

	if _, ok := cache.Get("a"); ok {
		t.Error("expected a (oldest-inserted) to be evicted despite recent read")
	}
	if _, ok := cache.Get("b"); !ok {
		t.Error("expected b to remain")
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	cache := NewResponseCache(time.Hour, 10)

	current := time.Unix(1_700_000_000, 0)
	cache.now = func() time.Time { return current }

	cache.Put("k", "v")
	if _, ok := cache.Get("k"); !ok {
		t.Fatal("expected fresh entry to hit")
	}

	// One hour later the entry is expired: reported as a miss and removed.
	current = current.Add(time.Hour)
	if _, ok := cache.Get("k"); ok {
		t.Error("expected expired entry to miss")
	}
	if cache.Len() != 0 {
		t.Errorf("expected lazy removal of expired entry, got %d entries", cache.Len())
	}

	// Recomputing (re-inserting) works normally afterwards.
	cache.Put("k", "v2")
	if v, ok := cache.Get("k"); !ok || v != "v2" {
		t.Errorf("expected recomputed value v2, got %q (ok=%v)", v, ok)
	}
}

func TestCacheKeySeparator(t *testing.T) {
	// The separator keeps shifted question/context splits from colliding.
	if CacheKey("ab", "c") == CacheKey("a", "bc") {
		t.Error("expected distinct keys for shifted question/context boundary")
	}
	if CacheKey("q", "c") != CacheKey("q", "c") {
		t.Error("expected a stable key for identical input")
	}
}

func TestCacheReinsertKeepsInsertionOrder(t *testing.T) {
	cache := NewResponseCache(time.Hour, 2)
	cache.Put("a", "1")
	cache.Put("b", "2")
	cache.Put("a", "1-refreshed") // refresh, not re-append

	cache.Put("c", "3") // capacity reached: "a" is still the oldest insertion

	if _, ok := cache.Get("a"); ok {
		t.Error("expected a to be evicted; refresh must not move it to the back")
	}
	if v, ok := cache.Get("b"); !ok || v != "2" {
		t.Errorf("expected b to remain, got %q (ok=%v)", v, ok)
	}
}
