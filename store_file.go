package hashcache

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

type fileStore struct {
	root         string
	atomicWrites bool
}

func newFileStore(root string, atomicWrites bool) Store {
	if root == "" {
		root = defaultRootDir()
	}
	// pruneEmptyDirs compares ancestors against root; filepath.Dir returns
	// cleaned paths, so root must be cleaned too or a trailing separator
	// would let the prune walk past it.
	root = filepath.Clean(root)
	_ = os.MkdirAll(root, 0o755)
	return &fileStore{
		root:         root,
		atomicWrites: atomicWrites,
	}
}

func (s *fileStore) Driver() Driver {
	return DriverFile
}

// Set overwrites the entry in full. Ancestor directories are created with
// exist-ok semantics so concurrent writers on shared shards both succeed.
// The default write is direct: a crash mid-write can leave a truncated
// entry, discovered later as ErrDecodeFailed. atomicWrites switches to
// write-temp-then-rename for callers that need crash safety.
func (s *fileStore) Set(_ context.Context, digest string, value []byte) error {
	path := digestPath(s.root, digest)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if s.atomicWrites {
		return atomic.WriteFile(path, bytes.NewReader(value))
	}
	return os.WriteFile(path, value, 0o644)
}

func (s *fileStore) Get(_ context.Context, digest string) ([]byte, error) {
	data, err := os.ReadFile(digestPath(s.root, digest))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *fileStore) Contains(_ context.Context, digest string) (bool, error) {
	_, err := os.Stat(digestPath(s.root, digest))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes the entry file, then prunes now-empty ancestor directories
// up to (but excluding) root. Races with concurrent deletes are tolerated:
// a directory that is already gone or no longer empty simply ends the walk.
func (s *fileStore) Delete(_ context.Context, digest string) error {
	path := digestPath(s.root, digest)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	s.pruneEmptyDirs(filepath.Dir(path))
	return nil
}

// pruneEmptyDirs walks upward from dir removing empty directories.
// os.Remove fails on non-empty directories, which is the stop condition;
// "already removed" means a concurrent delete got there first and the walk
// continues to the parent.
func (s *fileStore) pruneEmptyDirs(dir string) {
	for dir != s.root {
		err := os.Remove(dir)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// Clear is best-effort on removal, then recreates an empty root.
func (s *fileStore) Clear(_ context.Context) error {
	_ = os.RemoveAll(s.root)
	return os.MkdirAll(s.root, 0o755)
}

// Keys walks the tree fresh on every call, decoding each regular file's
// path back into its digest. Order follows the directory listing and is
// not stable across runs.
func (s *fileStore) Keys(_ context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stop := errors.New("stop")
		err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if !yield("", err) {
					return stop
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			digest, err := pathDigest(s.root, path)
			if err != nil {
				if !yield("", err) {
					return stop
				}
				return nil
			}
			if !yield(digest, nil) {
				return stop
			}
			return nil
		})
		if err != nil && !errors.Is(err, stop) {
			yield("", err)
		}
	}
}

func (s *fileStore) Len(ctx context.Context) (int, error) {
	count := 0
	for _, err := range s.Keys(ctx) {
		if err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}

func (s *fileStore) Close() error { return nil }
