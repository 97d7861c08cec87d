package catalog

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/PackBattle_Go/internal/domain"
)

// CacheSchemaVersion is bumped whenever the cached box layout changes so
// entries written by an older build are dropped on read
const CacheSchemaVersion = "1.0"

// CacheConfig sizes the box cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// DefaultCacheConfig returns the cache settings used when none are configured
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{Size: 256, TTL: 5 * time.Minute}
}

// CacheStats is a point-in-time view of cache effectiveness
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

type cachedBox struct {
	version string
	box     *domain.Box
}

// boxCache keeps fully loaded boxes, entries included, in an expiring LRU
type boxCache struct {
	lru    *expirable.LRU[uuid.UUID, *cachedBox]
	hits   atomic.Int64
	misses atomic.Int64
}

func newBoxCache(cfg CacheConfig) *boxCache {
	if cfg.Size <= 0 {
		cfg.Size = DefaultCacheConfig().Size
	}
	return &boxCache{lru: expirable.NewLRU[uuid.UUID, *cachedBox](cfg.Size, nil, cfg.TTL)}
}

func (c *boxCache) Get(id uuid.UUID) (*domain.Box, bool) {
	entry, ok := c.lru.Get(id)
	if !ok || entry.version != CacheSchemaVersion {
		if ok {
			c.lru.Remove(id)
		}
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return cloneBox(entry.box), true
}

func (c *boxCache) Set(box *domain.Box) {
	c.lru.Add(box.ID, &cachedBox{version: CacheSchemaVersion, box: cloneBox(box)})
}

func (c *boxCache) Invalidate(id uuid.UUID) {
	c.lru.Remove(id)
}

func (c *boxCache) Stats() CacheStats {
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load(), Size: c.lru.Len()}
}

// cloneBox copies the entry slice so callers cannot mutate the cached catalog
func cloneBox(b *domain.Box) *domain.Box {
	cp := *b
	cp.Entries = append([]domain.CatalogEntry(nil), b.Entries...)
	return &cp
}
