package services

import (
	"context"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/metrics"
	"itinerary-route-service/internal/platform/obs"
	"itinerary-route-service/internal/ports"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds concurrent geocode lookups per route.
const DefaultConcurrency = domain.MaxWaypoints

// RouteResolver turns an itinerary into a RouteResult by geocoding each
// entry and summing great-circle legs in itinerary order.
type RouteResolver struct {
	Geocoder    ports.Geocoder
	Concurrency int
}

func NewRouteResolver(geocoder ports.Geocoder, concurrency int) *RouteResolver {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &RouteResolver{Geocoder: geocoder, Concurrency: concurrency}
}

// ResolveRoute resolves itinerary with the default fan-out.
func ResolveRoute(
	ctx context.Context,
	geocoder ports.Geocoder,
	itinerary []string,
	language string,
) domain.RouteResult {
	return NewRouteResolver(geocoder, DefaultConcurrency).Resolve(ctx, itinerary, language)
}

// Resolve geocodes every non-empty entry, keeps the top-ranked suggestion
// of each and computes the total distance over the resolved points.
//
// Lookups run concurrently, but every goroutine writes only to the slot of
// its own itinerary index, so the path order never depends on which lookup
// finishes first. Entries that fail or return no suggestions are skipped
// and reported in Unresolved; they never abort the route.
func (r *RouteResolver) Resolve(ctx context.Context, itinerary []string, language string) domain.RouteResult {
	defer obs.Time(ctx, "route.Resolve")(nil)

	type slot struct {
		point    domain.GeoPoint
		resolved bool
	}
	slots := make([]slot, len(itinerary))

	limit := r.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	var g errgroup.Group
	g.SetLimit(limit)

	for i, query := range itinerary {
		if strings.TrimSpace(query) == "" {
			continue
		}

		g.Go(func() error {
			suggestions, err := r.Geocoder.Geocode(ctx, query, language)
			if err != nil {
				obs.Logger(ctx).WithError(err).WithFields(logrus.Fields{
					"index": i,
					"query": query,
				}).Warn("waypoint could not be geocoded")
				return nil
			}
			if len(suggestions) == 0 {
				obs.Logger(ctx).WithFields(logrus.Fields{
					"index": i,
					"query": query,
				}).Info("waypoint has no suggestions")
				return nil
			}

			slots[i] = slot{point: suggestions[0].Point, resolved: true}
			return nil
		})
	}

	// Lookups never return errors; failures are recorded per slot.
	_ = g.Wait()

	result := domain.RouteResult{Coordinates: []domain.GeoPoint{}}
	for i, s := range slots {
		switch {
		case s.resolved:
			result.Coordinates = append(result.Coordinates, s.point)
		case strings.TrimSpace(itinerary[i]) != "":
			result.Unresolved = append(result.Unresolved, i)
		}
	}

	result.TotalDistanceKm = domain.RouteDistanceKm(result.Coordinates)

	metrics.RouteDistance.Observe(result.TotalDistanceKm)
	metrics.RouteUnresolved.Add(float64(len(result.Unresolved)))

	return result
}
