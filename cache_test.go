package hashcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goforj/hashcache/hashcore"
)

func newMemoryCache(t *testing.T) *Cache {
	t.Helper()
	cache := NewCache(NewMemoryStore(context.Background()))
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestCacheSetGetDelete(t *testing.T) {
	cache := newMemoryCache(t)

	if err := cache.Set("user:1", []byte("Ada")); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	body, err := cache.Get("user:1")
	if err != nil || string(body) != "Ada" {
		t.Fatalf("unexpected get: err=%v body=%s", err, string(body))
	}

	ok, err := cache.Contains("user:1")
	if err != nil || !ok {
		t.Fatalf("expected present, ok=%v err=%v", ok, err)
	}
	ok, err = cache.Contains("user:2")
	if err != nil || ok {
		t.Fatalf("expected absent, ok=%v err=%v", ok, err)
	}

	if err := cache.Delete("user:1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := cache.Get("user:1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCacheKeysAreDigests(t *testing.T) {
	cache := newMemoryCache(t)

	if err := cache.Set("user:1", []byte("Ada")); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	var digests []string
	for d, err := range cache.Keys(context.Background()) {
		if err != nil {
			t.Fatalf("keys failed: %v", err)
		}
		digests = append(digests, d)
	}
	if len(digests) != 1 || digests[0] != DigestKey("user:1") {
		t.Fatalf("expected digest of the raw key, got %v", digests)
	}
}

func TestCacheStringHelpers(t *testing.T) {
	cache := newMemoryCache(t)

	if err := cache.SetString("greeting", "hello"); err != nil {
		t.Fatalf("set string failed: %v", err)
	}
	value, err := cache.GetString("greeting")
	if err != nil || value != "hello" {
		t.Fatalf("unexpected get string: err=%v value=%q", err, value)
	}
	if _, err := cache.GetString("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCacheJSONHelpers(t *testing.T) {
	type settings struct {
		Enabled bool   `json:"enabled"`
		Name    string `json:"name"`
	}
	cache := newMemoryCache(t)

	if err := SetJSON(cache, "settings", settings{Enabled: true, Name: "prod"}); err != nil {
		t.Fatalf("set json failed: %v", err)
	}
	got, err := GetJSON[settings](cache, "settings")
	if err != nil || !got.Enabled || got.Name != "prod" {
		t.Fatalf("unexpected get json: err=%v got=%+v", err, got)
	}
	if _, err := GetJSON[settings](cache, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Stored entry that is not valid JSON surfaces the decode error.
	if err := cache.Set("garbage", []byte("{not-json")); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if _, err := GetJSON[settings](cache, "garbage"); err == nil {
		t.Fatalf("expected json decode error")
	}
}

func TestCacheLenAndClear(t *testing.T) {
	cache := newMemoryCache(t)

	for _, key := range []string{"a", "b", "c"} {
		if err := cache.Set(key, []byte(key)); err != nil {
			t.Fatalf("set failed: %v", err)
		}
	}
	n, err := cache.Len()
	if err != nil || n != 3 {
		t.Fatalf("unexpected len: n=%d err=%v", n, err)
	}
	if err := cache.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	n, err = cache.Len()
	if err != nil || n != 0 {
		t.Fatalf("expected empty cache, n=%d err=%v", n, err)
	}
}

func TestCacheWithCodecOptions(t *testing.T) {
	cache := NewCache(NewMemoryStore(context.Background(),
		WithCompression(),
		WithBase64(),
	))
	t.Cleanup(func() { _ = cache.Close() })

	payload := []byte("a payload long enough to make compression do some work, repeated repeated repeated")
	if err := cache.Set("doc", payload); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	body, err := cache.Get("doc")
	if err != nil || string(body) != string(payload) {
		t.Fatalf("codec round-trip failed: err=%v body=%s", err, string(body))
	}
}

type cacheOpEvent struct {
	op     string
	key    string
	hit    bool
	err    error
	driver hashcore.Driver
}

func TestCacheObserverSeesOperations(t *testing.T) {
	var events []cacheOpEvent
	cache := newMemoryCache(t).WithObserver(ObserverFunc(
		func(_ context.Context, op, key string, hit bool, err error, _ time.Duration, driver hashcore.Driver) {
			events = append(events, cacheOpEvent{op: op, key: key, hit: hit, err: err, driver: driver})
		}))

	_ = cache.Set("user:1", []byte("Ada"))
	_, _ = cache.Get("user:1")
	_, _ = cache.Get("user:2")
	_ = cache.Delete("user:1")

	wantOps := []string{"set", "get", "get", "delete"}
	if len(events) != len(wantOps) {
		t.Fatalf("expected %d events, got %d", len(wantOps), len(events))
	}
	for i, want := range wantOps {
		if events[i].op != want {
			t.Fatalf("event %d: expected op %q, got %q", i, want, events[i].op)
		}
		if events[i].driver != DriverMemory {
			t.Fatalf("event %d: expected driver memory, got %q", i, events[i].driver)
		}
	}
	if !events[1].hit {
		t.Fatalf("expected hit for present key")
	}
	if events[2].hit || !errors.Is(events[2].err, ErrNotFound) {
		t.Fatalf("expected miss event with ErrNotFound, got hit=%v err=%v", events[2].hit, events[2].err)
	}
}
