package hashcache

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Registry is an explicit, caller-owned cache registry keyed on connection
// parameters. Two GetOrOpen calls with the same parameters share one Cache;
// nothing is cached at package level, so unrelated call sites only share
// state when they share a Registry.
type Registry struct {
	mu     sync.Mutex
	caches map[string]*Cache
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{caches: make(map[string]*Cache)}
}

// GetOrOpen returns the cache for cfg, constructing it on first use.
// Injected clients (redis, nats, dynamo) are not part of the identity key;
// callers providing live clients should use one Registry per client.
func (r *Registry) GetOrOpen(ctx context.Context, cfg StoreConfig) *Cache {
	key := registryKey(cfg.withDefaults())

	r.mu.Lock()
	defer r.mu.Unlock()

	if cache, ok := r.caches[key]; ok {
		return cache
	}
	cache := NewCache(NewStore(ctx, cfg))
	r.caches[key] = cache
	return cache
}

// Len reports how many caches the registry currently holds.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.caches)
}

// CloseAll closes every registered cache and empties the registry.
// All close errors are joined.
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for key, cache := range r.caches {
		if err := cache.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(r.caches, key)
	}
	return errors.Join(errs...)
}

func registryKey(cfg StoreConfig) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s|%s|%s|compress=%t|b64=%t|atomic=%t",
		cfg.Driver, cfg.RootDir, cfg.Prefix,
		cfg.SQLDriverName, cfg.SQLDSN, cfg.SQLTable,
		cfg.DynamoTable, cfg.DynamoRegion, cfg.DynamoEndpoint,
		cfg.Compress, cfg.Base64, cfg.AtomicWrites)
}
