package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of manifests kept by a CachedReader when no
// size is configured.
const DefaultCacheSize = 256

// Reader loads and parses the manifest file at path.
type Reader interface {
	Read(path string) (*Node, error)
}

// FileReader reads manifests straight from disk.
type FileReader struct{}

// Read implements Reader.
func (FileReader) Read(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	node, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return node, nil
}

type cachedManifest struct {
	modTime time.Time
	size    int64
	node    *Node
	err     error
}

// CachedReader memoizes another Reader. Entries are dropped when the file's
// modification time or size changes. It is safe for concurrent use.
type CachedReader struct {
	next  Reader
	cache *lru.Cache[string, cachedManifest]
}

// NewCachedReader wraps next with an LRU cache holding up to size manifests.
func NewCachedReader(next Reader, size int) (*CachedReader, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	cache, err := lru.New[string, cachedManifest](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create manifest cache: %w", err)
	}

	return &CachedReader{next: next, cache: cache}, nil
}

// Read implements Reader.
func (c *CachedReader) Read(path string) (*Node, error) {
	info, err := os.Stat(path)
	if err != nil {
		c.cache.Remove(path)
		return nil, fmt.Errorf("failed to stat manifest: %w", err)
	}

	if entry, ok := c.cache.Get(path); ok && entry.size == info.Size() && entry.modTime.Equal(info.ModTime()) {
		return entry.node, entry.err
	}

	node, err := c.next.Read(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		// Removed between the stat and the read.
		return nil, err
	}

	c.cache.Add(path, cachedManifest{
		modTime: info.ModTime(),
		size:    info.Size(),
		node:    node,
		err:     err,
	})

	return node, err
}

// Len returns the number of cached manifests.
func (c *CachedReader) Len() int {
	return c.cache.Len()
}
