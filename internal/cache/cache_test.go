package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store with switchable failures.
type fakeStore struct {
	mu   sync.Mutex
	data map[string][]byte
	fail bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (s *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errors.New("store unavailable")
	}
	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (s *fakeStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("store unavailable")
	}
	s.data[key] = value
	return nil
}

func (s *fakeStore) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("store unavailable")
	}
	delete(s.data, key)
	return nil
}

func (s *fakeStore) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errors.New("store unavailable")
	}
	var keys []string
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// fakeClock lets tests move time forward deterministically.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestCacheSetGet(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := New(newFakeStore(), clock.Now)

	c.Set(ctx, "greeting", "hello", time.Minute)

	var got string
	require.True(t, c.Get(ctx, "greeting", &got))
	assert.Equal(t, "hello", got)
}

func TestCacheMiss(t *testing.T) {
	ctx := context.Background()
	c := New(newFakeStore(), newFakeClock().Now)

	var got string
	assert.False(t, c.Get(ctx, "nothing", &got))
}

func TestCacheEntryExpires(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := New(newFakeStore(), clock.Now)

	c.Set(ctx, "greeting", "hello", time.Minute)

	clock.Advance(59 * time.Second)
	var got string
	require.True(t, c.Get(ctx, "greeting", &got))

	clock.Advance(2 * time.Second)
	assert.False(t, c.Get(ctx, "greeting", &got))
}

func TestCacheDefaultTTL(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := New(newFakeStore(), clock.Now)

	c.Set(ctx, "greeting", "hello", 0)

	clock.Advance(DefaultTTL - time.Second)
	var got string
	require.True(t, c.Get(ctx, "greeting", &got))

	clock.Advance(2 * time.Second)
	assert.False(t, c.Get(ctx, "greeting", &got))
}

func TestCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	clock := newFakeClock()
	c := New(store, clock.Now)

	c.Set(ctx, "greeting", "hello", time.Minute)
	c.Invalidate(ctx, "greeting")

	var got string
	assert.False(t, c.Get(ctx, "greeting", &got))
	assert.Empty(t, store.data)
}

func TestCacheClear(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	clock := newFakeClock()
	c := New(store, clock.Now)

	c.Set(ctx, "a", 1, time.Minute)
	c.Set(ctx, "b", 2, time.Minute)
	store.data["unrelated"] = []byte("kept")

	c.Clear(ctx)

	var got int
	assert.False(t, c.Get(ctx, "a", &got))
	assert.False(t, c.Get(ctx, "b", &got))
	// Keys outside the cache namespace are untouched.
	assert.Contains(t, store.data, "unrelated")
	assert.Len(t, store.data, 1)
}

func TestCachePromotesFromDurableStore(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	clock := newFakeClock()

	warm := New(store, clock.Now)
	warm.Set(ctx, "greeting", "hello", time.Minute)

	// A fresh cache over the same store simulates a process restart.
	cold := New(store, clock.Now)
	var got string
	require.True(t, cold.Get(ctx, "greeting", &got))
	assert.Equal(t, "hello", got)
}

func TestCacheDeletesExpiredDurableEntry(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	clock := newFakeClock()

	warm := New(store, clock.Now)
	warm.Set(ctx, "greeting", "hello", time.Minute)
	clock.Advance(2 * time.Minute)

	cold := New(store, clock.Now)
	var got string
	assert.False(t, cold.Get(ctx, "greeting", &got))
	assert.Empty(t, store.data)
}

func TestCacheDegradesWhenStoreFails(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.fail = true
	clock := newFakeClock()
	c := New(store, clock.Now)

	// Set never surfaces the store error and memory stays usable.
	c.Set(ctx, "greeting", "hello", time.Minute)

	var got string
	require.True(t, c.Get(ctx, "greeting", &got))
	assert.Equal(t, "hello", got)
}

func TestCacheMemoryOnly(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := New(nil, clock.Now)

	c.Set(ctx, "greeting", "hello", time.Minute)

	var got string
	require.True(t, c.Get(ctx, "greeting", &got))
	assert.Equal(t, "hello", got)

	c.Invalidate(ctx, "greeting")
	assert.False(t, c.Get(ctx, "greeting", &got))
}

func TestFetchProducesOnMissThenCaches(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := New(newFakeStore(), clock.Now)

	calls := 0
	producer := func(ctx context.Context) ([]string, error) {
		calls++
		return []string{"Douala", "Yaounde"}, nil
	}

	got, err := Fetch(ctx, c, "cities", time.Minute, producer)
	require.NoError(t, err)
	assert.Equal(t, []string{"Douala", "Yaounde"}, got)
	assert.Equal(t, 1, calls)

	got, err = Fetch(ctx, c, "cities", time.Minute, producer)
	require.NoError(t, err)
	assert.Equal(t, []string{"Douala", "Yaounde"}, got)
	assert.Equal(t, 1, calls)

	clock.Advance(2 * time.Minute)
	_, err = Fetch(ctx, c, "cities", time.Minute, producer)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestFetchDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := New(newFakeStore(), clock.Now)

	calls := 0
	producer := func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("database down")
		}
		return "ok", nil
	}

	_, err := Fetch(ctx, c, "flaky", time.Minute, producer)
	require.Error(t, err)

	got, err := Fetch(ctx, c, "flaky", time.Minute, producer)
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 2, calls)
}
