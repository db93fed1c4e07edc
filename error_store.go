package hashcache

import (
	"context"
	"iter"

	"github.com/goforj/hashcache/hashcore"
)

// errorStore is returned when a driver fails to initialize; it preserves the
// driver identity while surfacing the construction error on every call.
type errorStore struct {
	driver hashcore.Driver
	err    error
}

func (e *errorStore) Driver() hashcore.Driver { return e.driver }

func (e *errorStore) Set(context.Context, string, []byte) error { return e.err }

func (e *errorStore) Get(context.Context, string) ([]byte, error) { return nil, e.err }

func (e *errorStore) Contains(context.Context, string) (bool, error) { return false, e.err }

func (e *errorStore) Delete(context.Context, string) error { return e.err }

func (e *errorStore) Clear(context.Context) error { return e.err }

func (e *errorStore) Keys(context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		yield("", e.err)
	}
}

func (e *errorStore) Len(context.Context) (int, error) { return 0, e.err }

func (e *errorStore) Close() error { return nil }
