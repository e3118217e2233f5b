package domain

import "math"

// Represents the resolved path of an itinerary.
// Coordinates hold one point per successfully geocoded entry, in itinerary
// order. Unresolved lists the itinerary indexes that were skipped. The value
// is derived data: it is recomputed on every itinerary change and never stored.
type RouteResult struct {
	Coordinates     []GeoPoint
	TotalDistanceKm float64
	Unresolved      []int
}

// Rounded distance for display. The stored total is never rounded.
func (r RouteResult) RoundedKm() int {
	return int(math.Round(r.TotalDistanceKm))
}
