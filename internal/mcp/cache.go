package mcp

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mvp-joe/layerlint/internal/design"
)

// DefaultDocumentCacheSize bounds how many decoded documents are kept.
const DefaultDocumentCacheSize = 16

type cachedDocument struct {
	modTime time.Time
	size    int64
	doc     *design.Document
}

// DocumentCache keeps decoded documents keyed by absolute path. An entry is
// reused only while the file's size and modification time are unchanged.
// Cached documents are shared and must be treated as read-only.
type DocumentCache struct {
	mu    sync.Mutex
	cache *lru.Cache[string, cachedDocument]
}

// NewDocumentCache creates a cache holding up to size documents.
func NewDocumentCache(size int) (*DocumentCache, error) {
	if size <= 0 {
		size = DefaultDocumentCacheSize
	}
	c, err := lru.New[string, cachedDocument](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create document cache: %w", err)
	}
	return &DocumentCache{cache: c}, nil
}

// Load returns the document at path, decoding it only when it changed.
func (c *DocumentCache) Load(path string) (*design.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to stat document: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.cache.Get(abs); ok && entry.size == info.Size() && entry.modTime.Equal(info.ModTime()) {
		return entry.doc, nil
	}

	doc, err := design.Load(abs)
	if err != nil {
		c.cache.Remove(abs)
		return nil, err
	}
	c.cache.Add(abs, cachedDocument{modTime: info.ModTime(), size: info.Size(), doc: doc})
	return doc, nil
}

// Len returns the number of cached documents.
func (c *DocumentCache) Len() int {
	return c.cache.Len()
}
