package domain

import (
	"errors"
	"fmt"
)

// Callers cap the number of stops a user can add to a single itinerary.
const MaxWaypoints = 6

var ErrIndexOutOfRange = errors.New("itinerary index out of range")

// Ordered list of place queries. Index 0 is the starting point and the
// remaining entries are waypoints in travel order.
type Itinerary struct {
	Stops []string
}

func NewItinerary(start string) *Itinerary {
	return &Itinerary{Stops: []string{start}}
}

// Append a waypoint at the end of the path.
func (it *Itinerary) Append(query string) {
	it.Stops = append(it.Stops, query)
}

// Remove the waypoint at index i, keeping the relative order of the others.
// Protecting the starting point is left to the caller.
func (it *Itinerary) RemoveAt(i int) error {
	if i < 0 || i >= len(it.Stops) {
		return fmt.Errorf("remove waypoint %d (len=%d): %w", i, len(it.Stops), ErrIndexOutOfRange)
	}
	it.Stops = append(it.Stops[:i:i], it.Stops[i+1:]...)
	return nil
}

func (it *Itinerary) Len() int { return len(it.Stops) }
