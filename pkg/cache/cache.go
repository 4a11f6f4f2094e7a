// Package cache provides an in-memory LRU cache for computed
// summaries. The ranking pipeline is deterministic, so a summary can
// be reused for as long as the same document and parameters show up.
package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNotFound is returned when a key is absent or expired.
var ErrNotFound = errors.New("key not found")

// Key derives a cache key from a document and its summarization
// parameters. The document itself is hashed, never stored.
func Key(text, language, mode string, param float64) string {
	h := sha256.New()
	h.Write([]byte(text))
	fmt.Fprintf(h, "|%s|%s|%g", language, mode, param)
	return hex.EncodeToString(h.Sum(nil))
}

// Config holds cache limits.
type Config struct {
	// MaxEntries caps the number of cached summaries. Zero means the
	// default of 1024.
	MaxEntries int

	// TTL is the lifetime of an entry. Zero disables expiration.
	TTL time.Duration
}

// Stats holds cache performance counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Sets      int64
	Evictions int64
	Size      int
}

// Cache is an in-memory LRU cache with TTL support. It is safe for
// concurrent use.
type Cache struct {
	mu    sync.Mutex
	items map[string]*list.Element
	lru   *list.List
	cfg   Config
	stats Stats
}

type entry struct {
	key       string
	sentences []string
	expiresAt time.Time
}

// New creates a cache with the given limits.
func New(cfg Config) *Cache {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 1024
	}
	return &Cache{
		items: make(map[string]*list.Element),
		lru:   list.New(),
		cfg:   cfg,
	}
}

// Get retrieves a cached summary. Returns ErrNotFound when the key is
// absent or its entry has expired.
func (c *Cache) Get(key string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		return nil, ErrNotFound
	}

	e := elem.Value.(*entry)
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.removeElement(elem)
		c.stats.Misses++
		return nil, ErrNotFound
	}

	c.lru.MoveToFront(elem)
	c.stats.Hits++
	return e.sentences, nil
}

// Set stores a summary, evicting the least recently used entries when
// the cache is full.
func (c *Cache) Set(key string, sentences []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if c.cfg.TTL > 0 {
		expiresAt = time.Now().Add(c.cfg.TTL)
	}

	if elem, ok := c.items[key]; ok {
		elem.Value = &entry{key: key, sentences: sentences, expiresAt: expiresAt}
		c.lru.MoveToFront(elem)
		c.stats.Sets++
		return
	}

	for c.lru.Len() >= c.cfg.MaxEntries {
		c.evictOldest()
	}

	elem := c.lru.PushFront(&entry{key: key, sentences: sentences, expiresAt: expiresAt})
	c.items[key] = elem
	c.stats.Sets++
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.Size = c.lru.Len()
	return stats
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.lru.Init()
}

func (c *Cache) evictOldest() {
	elem := c.lru.Back()
	if elem == nil {
		return
	}
	c.removeElement(elem)
	c.stats.Evictions++
}

func (c *Cache) removeElement(elem *list.Element) {
	c.lru.Remove(elem)
	delete(c.items, elem.Value.(*entry).key)
}
