package hashcache

import (
	"context"
	"iter"
)

// CoreAPI exposes basic cache metadata.
type CoreAPI interface {
	Driver() Driver
	Close() error
}

// ReadAPI exposes read-oriented cache operations.
type ReadAPI interface {
	Get(key string) ([]byte, error)
	GetCtx(ctx context.Context, key string) ([]byte, error)
	GetString(key string) (string, error)
	GetStringCtx(ctx context.Context, key string) (string, error)
	Contains(key string) (bool, error)
	ContainsCtx(ctx context.Context, key string) (bool, error)
}

// WriteAPI exposes write and invalidation operations.
type WriteAPI interface {
	Set(key string, value []byte) error
	SetCtx(ctx context.Context, key string, value []byte) error
	SetString(key, value string) error
	SetStringCtx(ctx context.Context, key, value string) error
	Delete(key string) error
	DeleteCtx(ctx context.Context, key string) error
	Clear() error
	ClearCtx(ctx context.Context) error
}

// EnumAPI exposes whole-cache enumeration.
type EnumAPI interface {
	Keys(ctx context.Context) iter.Seq2[string, error]
	Len() (int, error)
	LenCtx(ctx context.Context) (int, error)
}

// CacheAPI is the composed application-facing interface for Cache.
type CacheAPI interface {
	CoreAPI
	ReadAPI
	WriteAPI
	EnumAPI
}

var _ CacheAPI = (*Cache)(nil)
