package services

import (
	"itinerary-route-service/internal/domain"
	"sync"
)

// RouteTracker keeps the newest route of an itinerary that is recomputed
// on every edit. Each computation is tagged by Begin; a result that
// finishes after a newer one was committed is dropped.
type RouteTracker struct {
	mu        sync.Mutex
	next      uint64
	committed uint64
	latest    domain.RouteResult
}

// Begin returns the sequence number for a new computation.
func (t *RouteTracker) Begin() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	return t.next
}

// Commit stores result unless a newer computation was already committed.
// It reports whether result was accepted.
func (t *RouteTracker) Commit(seq uint64, result domain.RouteResult) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if seq == 0 || seq > t.next || seq <= t.committed {
		return false
	}
	t.committed = seq
	t.latest = result
	return true
}

// Latest returns the newest accepted result and its sequence number
// (0 when nothing was committed yet).
func (t *RouteTracker) Latest() (domain.RouteResult, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest, t.committed
}
