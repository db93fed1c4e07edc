package hashcache

import (
	"context"
	"iter"

	"github.com/goforj/hashcache/hashcore"
)

// codecStore applies the value codec transparently on top of any concrete
// Store implementation. Digests and enumeration pass through untouched;
// only entry bytes are shaped.
type codecStore struct {
	inner hashcore.Store
	codec Codec
}

func newCodecStore(inner hashcore.Store, codec Codec) hashcore.Store {
	if codec.identity() {
		return inner
	}
	return &codecStore{inner: inner, codec: codec}
}

func (s *codecStore) Driver() Driver { return s.inner.Driver() }

func (s *codecStore) Set(ctx context.Context, digest string, value []byte) error {
	encoded, err := s.codec.Encode(value)
	if err != nil {
		return err
	}
	return s.inner.Set(ctx, digest, encoded)
}

func (s *codecStore) Get(ctx context.Context, digest string) ([]byte, error) {
	stored, err := s.inner.Get(ctx, digest)
	if err != nil {
		return nil, err
	}
	return s.codec.Decode(stored)
}

func (s *codecStore) Contains(ctx context.Context, digest string) (bool, error) {
	return s.inner.Contains(ctx, digest)
}

func (s *codecStore) Delete(ctx context.Context, digest string) error {
	return s.inner.Delete(ctx, digest)
}

func (s *codecStore) Clear(ctx context.Context) error {
	return s.inner.Clear(ctx)
}

func (s *codecStore) Keys(ctx context.Context) iter.Seq2[string, error] {
	return s.inner.Keys(ctx)
}

func (s *codecStore) Len(ctx context.Context) (int, error) {
	return s.inner.Len(ctx)
}

func (s *codecStore) Close() error { return s.inner.Close() }
