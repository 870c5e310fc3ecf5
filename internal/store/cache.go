// Package store memoizes the loaded snapshot so repeated filter changes in a
// session do not re-read the sources. Sources are treated as immutable for a
// session; the fingerprint catches out-of-band edits.
package store

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"mktintel/internal/models"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mktintel_snapshot_cache_hits_total",
		Help: "Snapshot requests served from the memoized load.",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mktintel_snapshot_cache_misses_total",
		Help: "Snapshot requests that triggered a source load.",
	})
)

type Loader interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Fingerprint() (string, error)
}

type Cache struct {
	mu     sync.Mutex
	loader Loader
	snap   *models.Snapshot
	key    string
}

func NewCache(l Loader) *Cache {
	return &Cache{loader: l}
}

// Snapshot returns the memoized snapshot, reloading only when the source
// fingerprint changed or the cache was invalidated. Callers must treat the
// returned snapshot as read-only.
func (c *Cache) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key, err := c.loader.Fingerprint()
	if err != nil {
		return nil, err
	}
	if c.snap != nil && c.key == key {
		cacheHits.Inc()
		return c.snap, nil
	}
	cacheMisses.Inc()
	snap, err := c.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.snap, c.key = snap, key
	return snap, nil
}

// Invalidate drops the memoized snapshot; the next Snapshot call reloads.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap, c.key = nil, ""
}
