package services

import (
	"itinerary-route-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteTrackerLastWriteWins(t *testing.T) {
	var tr RouteTracker

	first := tr.Begin()
	second := tr.Begin()
	assert.Greater(t, second, first)

	newer := domain.RouteResult{TotalDistanceKm: 189}
	older := domain.RouteResult{TotalDistanceKm: 42}

	assert.True(t, tr.Commit(second, newer))
	assert.False(t, tr.Commit(first, older), "stale result must be dropped")

	got, seq := tr.Latest()
	assert.Equal(t, newer, got)
	assert.Equal(t, second, seq)
}

func TestRouteTrackerInOrderCommits(t *testing.T) {
	var tr RouteTracker

	_, seq := tr.Latest()
	assert.Zero(t, seq)

	a := tr.Begin()
	assert.True(t, tr.Commit(a, domain.RouteResult{TotalDistanceKm: 1}))
	assert.False(t, tr.Commit(a, domain.RouteResult{TotalDistanceKm: 2}), "a sequence commits once")

	b := tr.Begin()
	assert.True(t, tr.Commit(b, domain.RouteResult{TotalDistanceKm: 3}))

	assert.False(t, tr.Commit(0, domain.RouteResult{}))
	assert.False(t, tr.Commit(b+10, domain.RouteResult{}), "unknown sequence")

	got, _ := tr.Latest()
	assert.InDelta(t, 3, got.TotalDistanceKm, 0)
}
