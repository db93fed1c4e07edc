package hashcache

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// shardLen is the number of leading digest characters used as the
	// top-level directory, bounding fan-out at the root.
	shardLen = 2

	// maxSegmentLen caps each remaining path component; most filesystems
	// reject components longer than 255 bytes.
	maxSegmentLen = 255
)

// digestPath maps a digest string to its sharded location under root:
// root/<first 2 chars>/<255-char segments of the rest>. The final component
// doubles as the file name. Concatenating all components below root yields
// the digest again, which is what pathDigest relies on.
func digestPath(root, digest string) string {
	parts := []string{root, digest[:shardLen]}
	remainder := digest[shardLen:]
	for len(remainder) > maxSegmentLen {
		parts = append(parts, remainder[:maxSegmentLen])
		remainder = remainder[maxSegmentLen:]
	}
	if remainder != "" {
		parts = append(parts, remainder)
	}
	return filepath.Join(parts...)
}

// pathDigest is the exact inverse of digestPath: it strips root from path
// and concatenates the remaining components. It recovers the digest, never
// the original cache key; the key digest is one-way.
func pathDigest(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	if rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("hashcache: path %q is not below root %q", path, root)
	}
	return strings.ReplaceAll(rel, string(filepath.Separator), ""), nil
}
