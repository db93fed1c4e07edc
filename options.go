package hashcache

// StoreOption mutates StoreConfig when constructing a store.
type StoreOption func(StoreConfig) StoreConfig

// WithRootDir sets the directory subtree owned by the file driver.
func WithRootDir(dir string) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.RootDir = dir
		return cfg
	}
}

// WithAtomicWrites makes file-driver writes crash-safe via
// temp-file-plus-rename, at the cost of an extra rename per set.
func WithAtomicWrites() StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.AtomicWrites = true
		return cfg
	}
}

// WithCompression enables zlib compression of stored values.
func WithCompression() StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.Compress = true
		return cfg
	}
}

// WithBase64 stores values text-safe base64 encoded.
func WithBase64() StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.Base64 = true
		return cfg
	}
}

// WithPrefix sets the key prefix for shared backends (e.g., redis).
func WithPrefix(prefix string) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.Prefix = prefix
		return cfg
	}
}

// WithRedisClient sets the redis client; required when using DriverRedis.
func WithRedisClient(client RedisClient) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.RedisClient = client
		return cfg
	}
}

// WithNATSKeyValue sets the JetStream bucket; required when using DriverNATS.
func WithNATSKeyValue(kv NATSKeyValue) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.NATSKeyValue = kv
		return cfg
	}
}

// WithSQL sets the database/sql driver name and DSN for DriverSQL.
func WithSQL(driverName, dsn string) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.SQLDriverName = driverName
		cfg.SQLDSN = dsn
		return cfg
	}
}

// WithSQLTable overrides the table name used by DriverSQL.
func WithSQLTable(table string) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.SQLTable = table
		return cfg
	}
}

// WithDynamoClient sets a pre-built DynamoDB client.
func WithDynamoClient(client DynamoAPI) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.DynamoClient = client
		return cfg
	}
}

// WithDynamoTable sets the DynamoDB table name.
func WithDynamoTable(table string) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.DynamoTable = table
		return cfg
	}
}

// WithDynamoRegion sets the AWS region used when building a client.
func WithDynamoRegion(region string) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.DynamoRegion = region
		return cfg
	}
}

// WithDynamoEndpoint overrides the DynamoDB endpoint (local testing).
func WithDynamoEndpoint(endpoint string) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.DynamoEndpoint = endpoint
		return cfg
	}
}
