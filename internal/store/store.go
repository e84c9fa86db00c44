// Package store holds the live, time-windowed spot collection.
//
// Spots are retained in arrival order with no deduplication. The only
// removal path is the eviction sweep, which runs on a fixed cadence for
// the lifetime of the process.
package store

import (
	"context"
	"log"
	"sync"
	"time"

	"ft8spots/internal/metrics"
	"ft8spots/internal/spot"
)

// Store is the shared live-spot collection. Reads for external
// consumption go through Snapshot so serialization never holds the lock.
type Store struct {
	mu    sync.Mutex
	spots []spot.Spot
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Insert appends a spot. Repeated arrivals of the same station are all
// retained as separate spots.
func (s *Store) Insert(sp spot.Spot) {
	s.mu.Lock()
	s.spots = append(s.spots, sp)
	n := len(s.spots)
	s.mu.Unlock()

	metrics.SpotsInserted.Inc()
	metrics.ActiveSpots.Set(float64(n))
}

// Len returns the number of currently-retained spots.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.spots)
}

// Snapshot returns an independent copy of the retained spots matching
// filter. A nil filter matches everything.
func (s *Store) Snapshot(filter func(*spot.Spot) bool) []spot.Spot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]spot.Spot, 0, len(s.spots))
	for i := range s.spots {
		if filter == nil || filter(&s.spots[i]) {
			out = append(out, s.spots[i])
		}
	}
	return out
}

// Sweep removes every spot older than ttl and returns how many were
// evicted.
func (s *Store) Sweep(ttl time.Duration) int {
	now := time.Now().Unix()
	limit := int64(ttl.Seconds())

	s.mu.Lock()
	kept := s.spots[:0]
	for _, sp := range s.spots {
		if now-sp.Timestamp <= limit {
			kept = append(kept, sp)
		}
	}
	evicted := len(s.spots) - len(kept)
	s.spots = kept
	n := len(s.spots)
	s.mu.Unlock()

	metrics.SpotsEvicted.Add(float64(evicted))
	metrics.ActiveSpots.Set(float64(n))
	return evicted
}

// RunSweeper evicts expired spots every interval until ctx is cancelled.
// It never overlaps with itself.
func (s *Store) RunSweeper(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			evicted := s.Sweep(ttl)
			if evicted > 0 {
				log.Printf("store: evicted %d spots older than %s, %d remain", evicted, ttl, s.Len())
			}
		}
	}
}
