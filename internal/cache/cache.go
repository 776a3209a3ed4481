package cache

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"
)

const (
	// KeyPrefix namespaces every durable entry written by this package, so
	// Clear can enumerate and remove only what the cache owns.
	KeyPrefix = "cache:"

	DefaultTTL = 5 * time.Minute
)

// Entry wraps a cached payload with its freshness window. An entry is valid
// while now - StoredAt < TTL; expired entries are purged lazily on read.
type Entry struct {
	Data     json.RawMessage `json:"data"`
	StoredAt time.Time       `json:"stored_at"`
	TTL      time.Duration   `json:"ttl"`
}

// Store is the durable backing for cache entries. A nil or failing Store
// degrades the cache to memory-only: the in-memory map stays authoritative
// for the running process. A (nil, nil) Get means the key is absent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Cache is a process-wide read-through cache: an in-memory map mirrored into
// a durable Store so warm entries survive restarts.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	store   Store
	now     func() time.Time
}

// New builds a cache over the given durable store. store may be nil
// (memory-only); now defaults to time.Now.
func New(store Store, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries: make(map[string]Entry),
		store:   store,
		now:     now,
	}
}

// Set stores value under key with the given TTL (DefaultTTL when ttl <= 0).
// Durable-store failures are logged, never returned: caching is an
// optimization, not a correctness dependency.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache: could not marshal value for key %q: %v", key, err)
		return
	}

	entry := Entry{Data: raw, StoredAt: c.now(), TTL: ttl}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()

	if c.store == nil {
		return
	}
	encoded, err := json.Marshal(entry)
	if err != nil {
		log.Printf("cache: could not encode entry for key %q: %v", key, err)
		return
	}
	if err := c.store.Set(ctx, KeyPrefix+key, encoded); err != nil {
		log.Printf("cache: could not persist key %q: %v", key, err)
	}
}

// Get loads the entry under key into dest and reports whether a valid entry
// was found. Memory is checked first; on a miss the durable store is
// consulted, promoting valid entries into memory and deleting expired ones.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.valid(entry) {
		if err := json.Unmarshal(entry.Data, dest); err != nil {
			log.Printf("cache: could not decode memory entry for key %q: %v", key, err)
			return false
		}
		return true
	}

	if c.store == nil {
		return false
	}

	raw, err := c.store.Get(ctx, KeyPrefix+key)
	if err != nil {
		log.Printf("cache: could not read key %q from durable store: %v", key, err)
		return false
	}
	if raw == nil {
		return false
	}

	var stored Entry
	if err := json.Unmarshal(raw, &stored); err != nil {
		log.Printf("cache: could not decode durable entry for key %q: %v", key, err)
		return false
	}
	if !c.valid(stored) {
		if err := c.store.Del(ctx, KeyPrefix+key); err != nil {
			log.Printf("cache: could not delete expired key %q: %v", key, err)
		}
		return false
	}

	c.mu.Lock()
	c.entries[key] = stored
	c.mu.Unlock()

	if err := json.Unmarshal(stored.Data, dest); err != nil {
		log.Printf("cache: could not decode durable entry for key %q: %v", key, err)
		return false
	}
	return true
}

// Invalidate removes key from both stores, best effort.
func (c *Cache) Invalidate(ctx context.Context, key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()

	if c.store == nil {
		return
	}
	if err := c.store.Del(ctx, KeyPrefix+key); err != nil {
		log.Printf("cache: could not invalidate key %q: %v", key, err)
	}
}

// Clear empties the in-memory map and removes every durable entry carrying
// the cache namespace prefix.
func (c *Cache) Clear(ctx context.Context) {
	c.mu.Lock()
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	if c.store == nil {
		return
	}
	keys, err := c.store.Keys(ctx, KeyPrefix)
	if err != nil {
		log.Printf("cache: could not enumerate durable keys: %v", err)
		return
	}
	for _, k := range keys {
		if err := c.store.Del(ctx, k); err != nil {
			log.Printf("cache: could not delete key %q: %v", k, err)
		}
	}
}

func (c *Cache) valid(e Entry) bool {
	return c.now().Sub(e.StoredAt) < e.TTL
}

// Fetch returns the cached value under key when valid; otherwise it invokes
// producer, caches the result with ttl and returns it. There is no in-flight
// coalescing: two concurrent callers that miss on the same key will both
// invoke producer.
func Fetch[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, producer func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	if c.Get(ctx, key, &cached) {
		return cached, nil
	}

	fresh, err := producer(ctx)
	if err != nil {
		return fresh, err
	}

	c.Set(ctx, key, fresh, ttl)
	return fresh, nil
}
