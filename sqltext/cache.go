package sqltext

import (
	"crypto/sha256"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

// Cache memoizes Sanitize results for repeated model outputs. A Cache created
// with size 0 computes every result and stores nothing.
type Cache struct {
	entries *lru.Cache
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewCache creates a cache holding at most size results.
func NewCache(size int) (*Cache, error) {
	if size < 0 {
		return nil, fmt.Errorf("cache size must not be negative, got %d", size)
	}
	c := &Cache{}
	if size == 0 {
		return c, nil
	}

	entries, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}
	c.entries = entries
	return c, nil
}

// Sanitize returns the cached result for text and opts, computing and storing
// it on a miss.
func (c *Cache) Sanitize(text string, opts Options) Result {
	if c == nil || c.entries == nil {
		return Sanitize(text, opts)
	}

	key := cacheKey(text, opts)
	if v, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return v.(Result)
	}

	c.misses.Add(1)
	res := Sanitize(text, opts)
	c.entries.Add(key, res)
	return res
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	if c == nil || c.entries == nil {
		return 0
	}
	return c.entries.Len()
}

// Stats returns the hit and miss counts since the cache was created.
func (c *Cache) Stats() (hits, misses int64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}

// cacheKey fingerprints the input so large model outputs are not kept twice.
func cacheKey(text string, opts Options) string {
	h := sha256.New()
	fmt.Fprintf(h, "%t|%t|%t|", opts.ExtractCodeBlock, opts.RemoveLimit, opts.AddQuotes)
	h.Write([]byte(text))
	return fmt.Sprintf("%x", h.Sum(nil))
}
