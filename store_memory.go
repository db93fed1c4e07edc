package hashcache

import (
	"context"
	"iter"

	gocache "github.com/patrickmn/go-cache"
)

type memoryStore struct {
	cache *gocache.Cache
}

func newMemoryStore() Store {
	// No expiration and no janitor: the contract has no TTL semantics.
	return &memoryStore{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

func (s *memoryStore) Driver() Driver {
	return DriverMemory
}

func (s *memoryStore) Set(_ context.Context, digest string, value []byte) error {
	s.cache.Set(digest, cloneBytes(value), gocache.NoExpiration)
	return nil
}

func (s *memoryStore) Get(_ context.Context, digest string) ([]byte, error) {
	item, ok := s.cache.Get(digest)
	if !ok {
		return nil, ErrNotFound
	}
	body, ok := item.([]byte)
	if !ok {
		return nil, ErrNotFound
	}
	return cloneBytes(body), nil
}

func (s *memoryStore) Contains(_ context.Context, digest string) (bool, error) {
	_, ok := s.cache.Get(digest)
	return ok, nil
}

func (s *memoryStore) Delete(_ context.Context, digest string) error {
	if _, ok := s.cache.Get(digest); !ok {
		return ErrNotFound
	}
	s.cache.Delete(digest)
	return nil
}

func (s *memoryStore) Clear(_ context.Context) error {
	s.cache.Flush()
	return nil
}

func (s *memoryStore) Keys(_ context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for digest := range s.cache.Items() {
			if !yield(digest, nil) {
				return
			}
		}
	}
}

func (s *memoryStore) Len(_ context.Context) (int, error) {
	return s.cache.ItemCount(), nil
}

func (s *memoryStore) Close() error { return nil }

func cloneBytes(value []byte) []byte {
	if value == nil {
		return nil
	}
	clone := make([]byte, len(value))
	copy(clone, value)
	return clone
}
