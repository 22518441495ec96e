// Package cache holds recently extracted documents in memory so repeated
// generations against the same URL within the freshness window skip the
// outbound fetch.
package cache

import (
	"sync"
	"time"

	"github.com/faqforge/faqforge/models"
)

// defaultTTL is how long an extraction stays usable.
const defaultTTL = 1 * time.Hour

// entry holds a cached document with its creation timestamp.
type entry struct {
	doc       *models.ExtractedDocument
	createdAt time.Time
}

// Cache is a simple in-memory document cache keyed by normalized URL.
// It is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
}

// New creates a Cache with the given maximum number of entries. A background
// goroutine evicts expired entries every 5 minutes.
func New(maxEntries int) *Cache {
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
	}
	go c.cleanupLoop()
	return c
}

// Get retrieves a cached document if it exists and is still fresh.
func (c *Cache) Get(url string) (*models.ExtractedDocument, bool) {
	c.mu.RLock()
	e, ok := c.store[url]
	c.mu.RUnlock()

	if !ok || time.Since(e.createdAt) > defaultTTL {
		return nil, false
	}
	return e.doc, true
}

// Set stores a document. If the cache is at capacity, a random entry is
// evicted to make room (map iteration order is random in Go).
func (c *Cache) Set(url string, doc *models.ExtractedDocument) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}
	c.store[url] = &entry{doc: doc, createdAt: time.Now()}
}

// Invalidate drops a URL's entry, e.g. when a caller forces a refresh.
func (c *Cache) Invalidate(url string) {
	c.mu.Lock()
	delete(c.store, url)
	c.mu.Unlock()
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-defaultTTL)
		c.mu.Lock()
		for k, e := range c.store {
			if e.createdAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
