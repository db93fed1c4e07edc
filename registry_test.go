package hashcache

import (
	"context"
	"sync"
	"testing"
)

func TestRegistrySharesCachesByConfig(t *testing.T) {
	reg := NewRegistry()
	t.Cleanup(func() { _ = reg.CloseAll() })
	ctx := context.Background()
	dir := t.TempDir()

	a := reg.GetOrOpen(ctx, StoreConfig{Driver: DriverFile, RootDir: dir})
	b := reg.GetOrOpen(ctx, StoreConfig{Driver: DriverFile, RootDir: dir})
	if a != b {
		t.Fatalf("same config should return the same cache instance")
	}
	if reg.Len() != 1 {
		t.Fatalf("expected one registered cache, got %d", reg.Len())
	}

	c := reg.GetOrOpen(ctx, StoreConfig{Driver: DriverFile, RootDir: t.TempDir()})
	if c == a {
		t.Fatalf("different root dir should open a distinct cache")
	}
	d := reg.GetOrOpen(ctx, StoreConfig{Driver: DriverFile, RootDir: dir, Compress: true})
	if d == a {
		t.Fatalf("different codec should open a distinct cache")
	}
	if reg.Len() != 3 {
		t.Fatalf("expected three registered caches, got %d", reg.Len())
	}
}

func TestRegistryDefaultsBeforeKeying(t *testing.T) {
	reg := NewRegistry()
	t.Cleanup(func() { _ = reg.CloseAll() })
	ctx := context.Background()

	// Empty config and the fully-defaulted equivalent share an identity.
	a := reg.GetOrOpen(ctx, StoreConfig{})
	b := reg.GetOrOpen(ctx, StoreConfig{Driver: DriverFile, RootDir: defaultRootDir(), Prefix: defaultPrefix})
	if a != b {
		t.Fatalf("defaulted configs should share one cache")
	}
}

func TestRegistryCloseAllEmptiesRegistry(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	cache := reg.GetOrOpen(ctx, StoreConfig{Driver: DriverMemory})
	if err := cache.Set("k", []byte("v")); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := reg.CloseAll(); err != nil {
		t.Fatalf("close all failed: %v", err)
	}
	if reg.Len() != 0 {
		t.Fatalf("expected empty registry after CloseAll, got %d", reg.Len())
	}

	// A later GetOrOpen constructs a fresh cache.
	again := reg.GetOrOpen(ctx, StoreConfig{Driver: DriverMemory})
	if again == cache {
		t.Fatalf("expected a new cache after CloseAll")
	}
}

func TestRegistryConcurrentGetOrOpen(t *testing.T) {
	reg := NewRegistry()
	t.Cleanup(func() { _ = reg.CloseAll() })
	ctx := context.Background()
	dir := t.TempDir()

	const workers = 16
	caches := make([]*Cache, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			caches[i] = reg.GetOrOpen(ctx, StoreConfig{Driver: DriverFile, RootDir: dir})
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if caches[i] != caches[0] {
			t.Fatalf("worker %d received a different cache instance", i)
		}
	}
	if reg.Len() != 1 {
		t.Fatalf("expected one registered cache, got %d", reg.Len())
	}
}
