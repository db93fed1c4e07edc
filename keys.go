package hashcache

import (
	"crypto/sha256"
	"encoding/hex"
)

// DigestKey maps an arbitrary cache key to its 64-character hex digest.
// Deterministic and one-way: the stores and Keys() only ever see digests,
// the original key cannot be recovered. Collisions between distinct keys
// are delegated to the hash.
func DigestKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
