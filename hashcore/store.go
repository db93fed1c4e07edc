package hashcore

import (
	"context"
	"errors"
	"iter"
)

// ErrNotFound is returned by Get and Delete when no entry exists for the
// requested digest.
var ErrNotFound = errors.New("hashcache: entry not found")

// Store is the shared backend contract. Keys at this level are digest
// strings produced by the cache's key digester; values are opaque bytes.
type Store interface {
	Driver() Driver

	// Set writes value under digest, replacing any existing entry.
	Set(ctx context.Context, digest string, value []byte) error

	// Get returns the stored bytes or ErrNotFound.
	Get(ctx context.Context, digest string) ([]byte, error)

	// Contains reports entry existence without reading content.
	Contains(ctx context.Context, digest string) (bool, error)

	// Delete removes the entry or returns ErrNotFound.
	Delete(ctx context.Context, digest string) error

	// Clear removes every entry owned by this store.
	Clear(ctx context.Context) error

	// Keys enumerates the digest of every present entry. Each call starts a
	// fresh traversal; order is backend-defined.
	Keys(ctx context.Context) iter.Seq2[string, error]

	// Len counts present entries.
	Len(ctx context.Context) (int, error)

	// Close releases backend resources. Stores stay unusable afterwards.
	Close() error
}
