// Package edgestore tracks the externally reported realization state of a
// plan's integration edges. The store holds mutable execution state only; the
// plan itself stays immutable and is never referenced here.
package edgestore

import (
	"sort"
	"sync"
)

// Store is a concurrency-safe record of which edges the executor has realized
// and which have failed. The zero value is not usable; call New.
type Store struct {
	mu       sync.RWMutex
	realized map[string]bool
	failures map[string]string
}

// New creates an empty store.
func New() *Store {
	return &Store{
		realized: make(map[string]bool),
		failures: make(map[string]string),
	}
}

// MarkRealized records that the executor realized the edge. It clears any
// earlier failure for the same edge.
func (s *Store) MarkRealized(edgeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.realized[edgeID] = true
	delete(s.failures, edgeID)
}

// MarkFailed records an executor-reported failure for the edge. Failures do
// not remove an edge from the pending set; they annotate it for diagnostics.
func (s *Store) MarkFailed(edgeID, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.realized, edgeID)
	s.failures[edgeID] = reason
}

// Realized reports whether the edge has been realized.
func (s *Store) Realized(edgeID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.realized[edgeID]
}

// Failure returns the recorded failure reason for the edge, if any.
func (s *Store) Failure(edgeID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reason, ok := s.failures[edgeID]
	return reason, ok
}

// Pending filters the given edge IDs down to those not yet realized, sorted
// for stable diagnostics.
func (s *Store) Pending(edgeIDs []string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []string
	for _, id := range edgeIDs {
		if !s.realized[id] {
			pending = append(pending, id)
		}
	}
	sort.Strings(pending)
	return pending
}
