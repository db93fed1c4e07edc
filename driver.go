package hashcache

import "github.com/goforj/hashcache/hashcore"

// Driver identifies a cache backend.
type Driver = hashcore.Driver

const (
	DriverNull   = hashcore.DriverNull
	DriverFile   = hashcore.DriverFile
	DriverMemory = hashcore.DriverMemory
	DriverRedis  = hashcore.DriverRedis
	DriverNATS   = hashcore.DriverNATS
	DriverSQL    = hashcore.DriverSQL
	DriverDynamo = hashcore.DriverDynamo
)

// ErrNotFound is returned by Get and Delete when no entry exists for a key.
var ErrNotFound = hashcore.ErrNotFound

// Store is the shared backend contract.
type Store = hashcore.Store
