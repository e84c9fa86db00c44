// Package cache memoizes callsign classification results.
//
// Both positive and negative lookup outcomes are cached indefinitely: a
// callsign that fails classification costs exactly one external lookup
// until an explicit Clear. The cache snapshots itself to disk every
// tenth insertion and on demand.
package cache

import (
	"log"
	"strings"
	"sync"

	"ft8spots/internal/lookup"
	"ft8spots/internal/metrics"
	"ft8spots/internal/persist"
)

// saveEvery is the insertion interval between automatic snapshots.
const saveEvery = 10

// Cache memoizes lookup outcomes keyed by uppercased callsign. A nil
// entry is a cached negative result, distinct from "never looked up".
type Cache struct {
	mu      sync.Mutex
	entries map[string]*lookup.Info
	inserts int

	fn   lookup.Func
	path string
}

// Stats reports cache contents. Field names match the query boundary.
type Stats struct {
	Total    int `json:"total_cached_callsigns"`
	Positive int `json:"successful_lookups"`
	Negative int `json:"failed_lookups"`
}

// New creates an empty cache backed by fn, persisting snapshots to path.
func New(fn lookup.Func, path string) *Cache {
	return &Cache{
		entries: make(map[string]*lookup.Info),
		fn:      fn,
		path:    path,
	}
}

// Classify returns the classification for callsign, consulting the
// external resolver only on a cache miss. A nil result means the lookup
// failed; that outcome is cached and never retried.
func (c *Cache) Classify(callsign string) *lookup.Info {
	key := strings.ToUpper(callsign)

	c.mu.Lock()
	if info, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return info
	}
	c.mu.Unlock()

	// Miss: resolve outside the lock. The resolver may be slow and must
	// not stall concurrent hits.
	metrics.Lookups.Inc()
	var entry *lookup.Info
	if info, err := c.fn(callsign); err == nil {
		entry = &info
	} else {
		metrics.LookupFailures.Inc()
		log.Printf("cache: lookup failed for %s: %v", callsign, err)
	}

	c.mu.Lock()
	// A concurrent miss for the same callsign may have resolved first;
	// keep whichever landed, the outcomes are equivalent.
	if prior, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return prior
	}
	c.entries[key] = entry
	c.inserts++
	shouldSave := c.inserts%saveEvery == 0
	c.mu.Unlock()

	if shouldSave {
		if err := c.Save(); err != nil {
			log.Printf("cache: periodic save failed: %v", err)
		}
	}
	return entry
}

// Clear purges all entries and returns how many were removed.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[string]*lookup.Info)
	return n
}

// GetStats reports entry counts.
func (c *Cache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{Total: len(c.entries)}
	for _, v := range c.entries {
		if v != nil {
			s.Positive++
		} else {
			s.Negative++
		}
	}
	return s
}

// Save writes a full snapshot of the cache to disk. The snapshot is
// copied under lock; file I/O happens outside the critical section.
func (c *Cache) Save() error {
	c.mu.Lock()
	snapshot := make(map[string]*lookup.Info, len(c.entries))
	for k, v := range c.entries {
		snapshot[k] = v
	}
	c.mu.Unlock()

	return persist.SaveJSON(c.path, snapshot)
}

// Load merges a persisted snapshot into the cache. Entries already in
// memory win over conflicting persisted ones. A missing file leaves the
// cache unchanged. Returns the number of entries in the document.
func (c *Cache) Load() (int, error) {
	var doc map[string]*lookup.Info
	ok, err := persist.LoadJSON(c.path, &doc)
	if err != nil || !ok {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range doc {
		if _, exists := c.entries[k]; !exists {
			c.entries[k] = v
		}
	}
	return len(doc), nil
}
