package hashcache

import "context"

// NewStore returns a concrete store for the requested driver, wrapped with
// the configured value codec. Driver initialization failures are surfaced as
// a store whose every operation returns the construction error, so callers
// get a usable handle and a consistent error path.
//
// Example: select driver explicitly
//
//	ctx := context.Background()
//	store := hashcache.NewStore(ctx, hashcache.StoreConfig{
//		Driver:  hashcache.DriverFile,
//		RootDir: "/tmp/my-cache",
//	})
//	fmt.Println(store.Driver()) // file
func NewStore(ctx context.Context, cfg StoreConfig) Store {
	cfg = cfg.withDefaults()
	var (
		store Store
		err   error
	)
	switch cfg.Driver {
	case DriverNull:
		store = newNullStore()
	case DriverMemory:
		store = newMemoryStore()
	case DriverRedis:
		store = newRedisStore(cfg.RedisClient, cfg.Prefix)
	case DriverNATS:
		store = newNATSStore(cfg.NATSKeyValue)
	case DriverSQL:
		store, err = newSQLStore(cfg)
	case DriverDynamo:
		store, err = newDynamoStore(ctx, cfg)
	default:
		store = newFileStore(cfg.RootDir, cfg.AtomicWrites)
	}
	if err != nil {
		return &errorStore{driver: cfg.Driver, err: err}
	}
	return newCodecStore(store, cfg.codec())
}

// NewStoreWith builds a store using a driver and a set of functional
// options. Required data (e.g., the redis client) must be provided via
// options when needed.
//
// Example: redis store (options)
//
//	redisClient := redis.NewClient(&redis.Options{Addr: "127.0.0.1:6379"})
//	store := hashcache.NewStoreWith(ctx, hashcache.DriverRedis,
//		hashcache.WithRedisClient(redisClient),
//		hashcache.WithPrefix("app"),
//		hashcache.WithCompression(),
//	)
//	fmt.Println(store.Driver()) // redis
func NewStoreWith(ctx context.Context, driver Driver, opts ...StoreOption) Store {
	cfg := StoreConfig{Driver: driver}
	for _, opt := range opts {
		cfg = opt(cfg)
	}
	return NewStore(ctx, cfg)
}

// NewFileStore is a convenience for the filesystem-backed store.
func NewFileStore(ctx context.Context, root string, opts ...StoreOption) Store {
	return NewStoreWith(ctx, DriverFile, append([]StoreOption{WithRootDir(root)}, opts...)...)
}

// NewNullStore is a convenience for the always-empty store.
func NewNullStore(ctx context.Context, opts ...StoreOption) Store {
	return NewStoreWith(ctx, DriverNull, opts...)
}

// NewMemoryStore is a convenience for an in-process store.
func NewMemoryStore(ctx context.Context, opts ...StoreOption) Store {
	return NewStoreWith(ctx, DriverMemory, opts...)
}

// NewRedisStore is a convenience for a redis-backed store. The client is
// required.
func NewRedisStore(ctx context.Context, client RedisClient, opts ...StoreOption) Store {
	return NewStoreWith(ctx, DriverRedis, append([]StoreOption{WithRedisClient(client)}, opts...)...)
}

// NewNATSStore is a convenience for a JetStream key-value backed store.
func NewNATSStore(ctx context.Context, kv NATSKeyValue, opts ...StoreOption) Store {
	return NewStoreWith(ctx, DriverNATS, append([]StoreOption{WithNATSKeyValue(kv)}, opts...)...)
}

// NewSQLStore is a convenience for a database/sql backed store.
func NewSQLStore(ctx context.Context, driverName, dsn string, opts ...StoreOption) Store {
	return NewStoreWith(ctx, DriverSQL, append([]StoreOption{WithSQL(driverName, dsn)}, opts...)...)
}

// NewDynamoStore is a convenience for a DynamoDB-backed store.
func NewDynamoStore(ctx context.Context, table string, opts ...StoreOption) Store {
	return NewStoreWith(ctx, DriverDynamo, append([]StoreOption{WithDynamoTable(table)}, opts...)...)
}
