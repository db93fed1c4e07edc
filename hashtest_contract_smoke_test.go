package hashcache_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/goforj/hashcache"
	"github.com/goforj/hashcache/hashtest"
)

func TestHashtestRunStoreContract_MemoryStore(t *testing.T) {
	store := hashcache.NewMemoryStore(context.Background())
	hashtest.RunStoreContract(t, store, hashtest.Options{})
}

func TestHashtestRunStoreContract_NullStore(t *testing.T) {
	store := hashcache.NewNullStore(context.Background())
	hashtest.RunStoreContract(t, store, hashtest.Options{NullSemantics: true})
}

func TestHashtestRunStoreContract_SQLStore(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "hashcache.db")
	store := hashcache.NewSQLStore(context.Background(), "sqlite", dsn)
	t.Cleanup(func() { _ = store.Close() })
	hashtest.RunStoreContract(t, store, hashtest.Options{})
}
