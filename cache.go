package hashcache

import (
	"context"
	"encoding/json"
	"iter"
	"time"
)

// Cache provides an ergonomic mapping API on top of Store. It owns the
// key-to-digest step: callers pass raw keys, the underlying store only ever
// sees digest strings.
type Cache struct {
	store    Store
	observer Observer
}

// NewCache creates a cache facade bound to a concrete store.
//
// Example: cache from store
//
//	ctx := context.Background()
//	s := hashcache.NewMemoryStore(ctx)
//	c := hashcache.NewCache(s)
//	fmt.Println(c.Driver()) // memory
func NewCache(store Store) *Cache {
	return &Cache{store: store}
}

// WithObserver attaches an observer to receive operation events.
func (c *Cache) WithObserver(o Observer) *Cache {
	c.observer = o
	return c
}

// Store returns the underlying store implementation.
func (c *Cache) Store() Store {
	return c.store
}

// Driver reports the underlying store driver.
func (c *Cache) Driver() Driver {
	return c.store.Driver()
}

// Close releases the underlying store's resources.
func (c *Cache) Close() error {
	return c.store.Close()
}

// Set writes raw bytes under key, replacing any existing entry.
//
// Example: set bytes
//
//	ctx := context.Background()
//	c := hashcache.NewCache(hashcache.NewMemoryStore(ctx))
//	fmt.Println(c.Set("user:1", []byte("hello")) == nil) // true
func (c *Cache) Set(key string, value []byte) error {
	return c.SetCtx(context.Background(), key, value)
}

func (c *Cache) SetCtx(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := c.store.Set(ctx, DigestKey(key), value)
	c.observe(ctx, "set", key, err == nil, err, start)
	return err
}

// Get returns the bytes stored under key, or ErrNotFound.
//
// Example: get bytes
//
//	ctx := context.Background()
//	c := hashcache.NewCache(hashcache.NewMemoryStore(ctx))
//	_ = c.Set("user:42", []byte("Ada"))
//	value, err := c.Get("user:42")
//	fmt.Println(err == nil, string(value)) // true Ada
func (c *Cache) Get(key string) ([]byte, error) {
	return c.GetCtx(context.Background(), key)
}

func (c *Cache) GetCtx(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	body, err := c.store.Get(ctx, DigestKey(key))
	c.observe(ctx, "get", key, err == nil, err, start)
	return body, err
}

// Contains reports whether an entry exists for key. It does not validate
// the entry's readability or content.
func (c *Cache) Contains(key string) (bool, error) {
	return c.ContainsCtx(context.Background(), key)
}

func (c *Cache) ContainsCtx(ctx context.Context, key string) (bool, error) {
	start := time.Now()
	ok, err := c.store.Contains(ctx, DigestKey(key))
	c.observe(ctx, "contains", key, ok, err, start)
	return ok, err
}

// Delete removes the entry for key, or returns ErrNotFound.
func (c *Cache) Delete(key string) error {
	return c.DeleteCtx(context.Background(), key)
}

func (c *Cache) DeleteCtx(ctx context.Context, key string) error {
	start := time.Now()
	err := c.store.Delete(ctx, DigestKey(key))
	c.observe(ctx, "delete", key, err == nil, err, start)
	return err
}

// Clear removes every entry owned by the cache.
func (c *Cache) Clear() error {
	return c.ClearCtx(context.Background())
}

func (c *Cache) ClearCtx(ctx context.Context) error {
	start := time.Now()
	err := c.store.Clear(ctx)
	c.observe(ctx, "clear", "", err == nil, err, start)
	return err
}

// Keys enumerates the digest string of every present entry. Digests cannot
// be mapped back to the original keys; the key digest is one-way.
func (c *Cache) Keys(ctx context.Context) iter.Seq2[string, error] {
	return c.store.Keys(ctx)
}

// Len counts present entries.
func (c *Cache) Len() (int, error) {
	return c.LenCtx(context.Background())
}

func (c *Cache) LenCtx(ctx context.Context) (int, error) {
	start := time.Now()
	n, err := c.store.Len(ctx)
	c.observe(ctx, "len", "", err == nil, err, start)
	return n, err
}

// SetString writes a string value under key.
func (c *Cache) SetString(key, value string) error {
	return c.SetStringCtx(context.Background(), key, value)
}

func (c *Cache) SetStringCtx(ctx context.Context, key, value string) error {
	return c.SetCtx(ctx, key, []byte(value))
}

// GetString returns a UTF-8 string value for key, or ErrNotFound.
func (c *Cache) GetString(key string) (string, error) {
	return c.GetStringCtx(context.Background(), key)
}

func (c *Cache) GetStringCtx(ctx context.Context, key string) (string, error) {
	body, err := c.GetCtx(ctx, key)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// SetJSON encodes value as JSON and writes it under key.
//
// Example: set JSON
//
//	type Settings struct { Enabled bool `json:"enabled"` }
//	ctx := context.Background()
//	c := hashcache.NewCache(hashcache.NewMemoryStore(ctx))
//	_ = hashcache.SetJSON(c, "settings", Settings{Enabled: true})
func SetJSON[T any](cache *Cache, key string, value T) error {
	return SetJSONCtx(context.Background(), cache, key, value)
}

// SetJSONCtx is the context-aware variant of SetJSON.
func SetJSONCtx[T any](ctx context.Context, cache *Cache, key string, value T) error {
	body, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return cache.SetCtx(ctx, key, body)
}

// GetJSON decodes a JSON value into T, or returns ErrNotFound.
func GetJSON[T any](cache *Cache, key string) (T, error) {
	return GetJSONCtx[T](context.Background(), cache, key)
}

// GetJSONCtx is the context-aware variant of GetJSON.
func GetJSONCtx[T any](ctx context.Context, cache *Cache, key string) (T, error) {
	var out T
	body, err := cache.GetCtx(ctx, key)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, err
	}
	return out, nil
}

func (c *Cache) observe(ctx context.Context, op, key string, hit bool, err error, start time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.OnCacheOp(ctx, op, key, hit, err, time.Since(start), c.Driver())
}
