package hashcache

import (
	"context"
	"errors"
	"iter"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient captures the subset of redis.Client used by the store.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Close() error
}

const redisScanBatch = 200

// redisStore is a thin client over a shared redis database. Keys are
// prefix-scoped so multiple caches can share one database; enumeration and
// clearing SCAN the prefix rather than touching the whole keyspace.
type redisStore struct {
	client RedisClient
	prefix string
}

func newRedisStore(client RedisClient, prefix string) Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &redisStore{
		client: client,
		prefix: prefix,
	}
}

func (s *redisStore) Driver() Driver {
	return DriverRedis
}

func (s *redisStore) Set(ctx context.Context, digest string, value []byte) error {
	if s.client == nil {
		return errors.New("hashcache: redis client unavailable")
	}
	return s.client.Set(ctx, s.cacheKey(digest), value, 0).Err()
}

func (s *redisStore) Get(ctx context.Context, digest string) ([]byte, error) {
	if s.client == nil {
		return nil, errors.New("hashcache: redis client unavailable")
	}
	value, err := s.client.Get(ctx, s.cacheKey(digest)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(value), nil
}

func (s *redisStore) Contains(ctx context.Context, digest string) (bool, error) {
	if s.client == nil {
		return false, errors.New("hashcache: redis client unavailable")
	}
	n, err := s.client.Exists(ctx, s.cacheKey(digest)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *redisStore) Delete(ctx context.Context, digest string) error {
	if s.client == nil {
		return errors.New("hashcache: redis client unavailable")
	}
	n, err := s.client.Del(ctx, s.cacheKey(digest)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context) error {
	if s.client == nil {
		return errors.New("hashcache: redis client unavailable")
	}
	pattern := s.cacheKey("*")
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, redisScanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (s *redisStore) Keys(ctx context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if s.client == nil {
			yield("", errors.New("hashcache: redis client unavailable"))
			return
		}
		pattern := s.cacheKey("*")
		var cursor uint64
		for {
			keys, next, err := s.client.Scan(ctx, cursor, pattern, redisScanBatch).Result()
			if err != nil {
				yield("", err)
				return
			}
			for _, key := range keys {
				if !yield(strings.TrimPrefix(key, s.prefix+":"), nil) {
					return
				}
			}
			cursor = next
			if cursor == 0 {
				return
			}
		}
	}
}

func (s *redisStore) Len(ctx context.Context) (int, error) {
	count := 0
	for _, err := range s.Keys(ctx) {
		if err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}

func (s *redisStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *redisStore) cacheKey(digest string) string {
	return s.prefix + ":" + digest
}
