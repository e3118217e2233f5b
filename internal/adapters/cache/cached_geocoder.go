package cache

import (
	"context"
	"fmt"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/metrics"
	"itinerary-route-service/internal/platform/obs"
	"itinerary-route-service/internal/ports"
	"slices"

	"golang.org/x/sync/singleflight"
)

// CachedGeocoder memoizes lookups by (query, language) in front of
// another Geocoder.
//
// Only successful lookups are stored; failures always reach the provider
// again on the next call. Concurrent misses for the same key share one
// upstream call, and each caller stops waiting when its own context ends.
// Cache errors are logged and never surface to callers.
type CachedGeocoder struct {
	next  ports.Geocoder
	cache ports.GeocodeCache
	group singleflight.Group
}

func NewCachedGeocoder(next ports.Geocoder, cache ports.GeocodeCache) *CachedGeocoder {
	return &CachedGeocoder{next: next, cache: cache}
}

func (c *CachedGeocoder) Geocode(ctx context.Context, query, language string) ([]domain.PlaceSuggestion, error) {
	key := Key(query, language)
	if key == "" {
		return nil, nil
	}

	hit, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.GeocodeCache.WithLabelValues("error").Inc()
		obs.Logger(ctx).WithError(err).WithField("key", key).Warn("geocode cache read failed")
	case ok:
		metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return hit, nil
	default:
		metrics.GeocodeCache.WithLabelValues("miss").Inc()
	}

	// The shared lookup is detached from any single caller so one caller
	// giving up does not fail the others waiting on the same key. The
	// provider transport timeout still bounds it.
	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		out, err := c.next.Geocode(flightCtx, query, language)
		if err != nil {
			return nil, err
		}

		if err := c.cache.Put(flightCtx, key, out); err != nil {
			obs.Logger(flightCtx).WithError(err).WithField("key", key).Warn("geocode cache write failed")
		}
		return out, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("geocode %q: %w", query, ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}

	return slices.Clone(res.Val.([]domain.PlaceSuggestion)), nil
}
