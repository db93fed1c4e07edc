package hashcache

import (
	"os"
	"path/filepath"
)

const defaultPrefix = "hashcache"

func defaultRootDir() string {
	return filepath.Join(os.TempDir(), "hashcache")
}

// StoreConfig controls how a Store is constructed. All fields are fixed at
// construction; stores carry no mutable configuration afterwards.
type StoreConfig struct {
	Driver Driver

	// RootDir is the directory subtree owned by the file driver.
	RootDir string

	// AtomicWrites makes the file driver write via temp-file-plus-rename
	// instead of the default direct overwrite.
	AtomicWrites bool

	// Compress and Base64 select the value codec applied to every backend.
	Compress bool
	Base64   bool

	// Prefix scopes keys on shared backends (redis).
	Prefix string

	// RedisClient is required when DriverRedis is used.
	RedisClient RedisClient

	// NATSKeyValue is required when DriverNATS is used.
	NATSKeyValue NATSKeyValue

	// SQL driver settings; driver name and DSN are required for DriverSQL.
	SQLDriverName string
	SQLDSN        string
	SQLTable      string

	// Dynamo settings. When DynamoClient is nil one is built from region,
	// endpoint and the default credential chain.
	DynamoClient   DynamoAPI
	DynamoTable    string
	DynamoRegion   string
	DynamoEndpoint string
}

func (c StoreConfig) withDefaults() StoreConfig {
	if c.Driver == "" {
		c.Driver = DriverFile
	}
	if c.RootDir == "" {
		c.RootDir = defaultRootDir()
	}
	if c.Prefix == "" {
		c.Prefix = defaultPrefix
	}
	return c
}

func (c StoreConfig) codec() Codec {
	return Codec{Compress: c.Compress, Base64: c.Base64}
}
