package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/use-agent/pagegrab/models"
)

// entry holds a cached result with its creation timestamp.
type entry struct {
	info      *models.PageInfo
	createdAt time.Time
}

// Cache is a simple in-memory cache for capture results.
// It is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
}

// New creates a new Cache with the given maximum number of entries.
// A background goroutine runs every 5 minutes to evict expired entries
// (older than 1 hour).
func New(maxEntries int) *Cache {
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
	}

	go c.cleanupLoop()
	return c
}

// Key derives a cache key from everything that shapes the result: URL,
// engine, screenshot flag, search interaction and the extraction config.
func Key(req *models.CaptureRequest) string {
	parts := []string{
		req.URL,
		req.Engine,
		strconv.FormatBool(req.Screenshot),
		strconv.FormatBool(req.Search.Enabled),
		req.Search.InputSelector,
		req.Search.ButtonSelector,
		req.Search.Term,
		strconv.FormatBool(req.Items.Enabled),
		req.Items.ItemSelector,
		req.Items.TitleSelector,
		req.Items.DateSelector,
		strconv.FormatBool(req.Body.Enabled),
		strings.Join(req.Body.BodySelectors, ","),
		strings.Join(req.Body.TitleSelectors, ","),
		strings.Join(req.Body.DateSelectors, ","),
		req.Body.Format,
	}

	h := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(h[:])
}

// Get retrieves a cached result if it exists and is younger than maxAge.
// maxAge is in milliseconds. If maxAge <= 0, no cache lookup is performed.
// Returns the result and whether it was a cache hit.
func (c *Cache) Get(key string, maxAgeMs int) (*models.PageInfo, bool) {
	if maxAgeMs <= 0 {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	maxAge := time.Duration(maxAgeMs) * time.Millisecond
	if time.Since(e.createdAt) > maxAge {
		return nil, false
	}

	return e.info, true
}

// Set stores a result in the cache. If the cache is at capacity,
// a random entry is evicted to make room.
func (c *Cache) Set(key string, info *models.PageInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Evict one random entry if at capacity (map iteration is random in Go).
	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}

	c.store[key] = &entry{
		info:      info,
		createdAt: time.Now(),
	}
}

// cleanupLoop evicts entries older than 1 hour every 5 minutes.
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-1 * time.Hour)
		c.mu.Lock()
		for k, e := range c.store {
			if e.createdAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
