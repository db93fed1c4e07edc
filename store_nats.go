package hashcache

import (
	"context"
	"errors"
	"iter"

	"github.com/nats-io/nats.go"
)

// NATSKeyValue captures the subset of nats.KeyValue used by the store.
type NATSKeyValue interface {
	Get(key string) (nats.KeyValueEntry, error)
	Put(key string, value []byte) (uint64, error)
	Delete(key string, opts ...nats.DeleteOpt) error
	Purge(key string, opts ...nats.DeleteOpt) error
	ListKeys(opts ...nats.WatchOpt) (nats.KeyLister, error)
}

// natsStore maps the contract onto a JetStream key-value bucket. The bucket
// is the namespace; digests are used as KV keys directly (hex is a valid
// NATS key character set).
type natsStore struct {
	kv NATSKeyValue
}

func newNATSStore(kv NATSKeyValue) Store {
	return &natsStore{kv: kv}
}

func (s *natsStore) Driver() Driver { return DriverNATS }

func (s *natsStore) Set(_ context.Context, digest string, value []byte) error {
	if s.kv == nil {
		return errors.New("hashcache: nats key-value unavailable")
	}
	_, err := s.kv.Put(digest, value)
	return err
}

func (s *natsStore) Get(_ context.Context, digest string) ([]byte, error) {
	if s.kv == nil {
		return nil, errors.New("hashcache: nats key-value unavailable")
	}
	entry, err := s.kv.Get(digest)
	if isNATSMiss(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if entry.Operation() == nats.KeyValueDelete || entry.Operation() == nats.KeyValuePurge {
		return nil, ErrNotFound
	}
	return cloneBytes(entry.Value()), nil
}

func (s *natsStore) Contains(ctx context.Context, digest string) (bool, error) {
	_, err := s.Get(ctx, digest)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *natsStore) Delete(_ context.Context, digest string) error {
	if s.kv == nil {
		return errors.New("hashcache: nats key-value unavailable")
	}
	entry, err := s.kv.Get(digest)
	if isNATSMiss(err) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if entry.Operation() == nats.KeyValueDelete || entry.Operation() == nats.KeyValuePurge {
		return ErrNotFound
	}
	// Purge rather than Delete so enumeration does not see tombstones.
	return s.kv.Purge(digest)
}

func (s *natsStore) Clear(ctx context.Context) error {
	if s.kv == nil {
		return errors.New("hashcache: nats key-value unavailable")
	}
	for digest, err := range s.Keys(ctx) {
		if err != nil {
			return err
		}
		if err := s.kv.Purge(digest); err != nil {
			return err
		}
	}
	return nil
}

func (s *natsStore) Keys(_ context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if s.kv == nil {
			yield("", errors.New("hashcache: nats key-value unavailable"))
			return
		}
		lister, err := s.kv.ListKeys()
		if err != nil {
			if isNATSMiss(err) {
				return
			}
			yield("", err)
			return
		}
		defer func() { _ = lister.Stop() }()
		for key := range lister.Keys() {
			if !yield(key, nil) {
				return
			}
		}
	}
}

func (s *natsStore) Len(ctx context.Context) (int, error) {
	count := 0
	for _, err := range s.Keys(ctx) {
		if err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}

func (s *natsStore) Close() error { return nil }

func isNATSMiss(err error) bool {
	return errors.Is(err, nats.ErrKeyNotFound) || errors.Is(err, nats.ErrNoKeysFound)
}
