package hashcache

import (
	"context"
	"iter"
)

// nullStore accepts writes and never returns entries.
type nullStore struct{}

func newNullStore() Store { return &nullStore{} }

func (s *nullStore) Driver() Driver { return DriverNull }

func (s *nullStore) Set(context.Context, string, []byte) error { return nil }

func (s *nullStore) Get(context.Context, string) ([]byte, error) {
	return nil, ErrNotFound
}

func (s *nullStore) Contains(context.Context, string) (bool, error) {
	return false, nil
}

func (s *nullStore) Delete(context.Context, string) error { return ErrNotFound }

func (s *nullStore) Clear(context.Context) error { return nil }

func (s *nullStore) Keys(context.Context) iter.Seq2[string, error] {
	return func(func(string, error) bool) {}
}

func (s *nullStore) Len(context.Context) (int, error) { return 0, nil }

func (s *nullStore) Close() error { return nil }
