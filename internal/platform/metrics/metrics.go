package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "itinerary"

var (
	GeocodeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "geocode",
		Name:      "requests_total",
		Help:      "Geocode provider calls by outcome (ok, empty, network, provider, parse, credential)",
	}, []string{"provider", "outcome"})

	GeocodeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "geocode",
		Name:      "duration_seconds",
		Help:      "Latency of geocode provider calls",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"provider"})

	GeocodeCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "geocode",
		Name:      "cache_total",
		Help:      "Geocode cache lookups by result (hit, miss, error)",
	}, []string{"result"})

	RouteDistance = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "route",
		Name:      "distance_km",
		Help:      "Total distance of resolved itineraries",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})

	RouteUnresolved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "route",
		Name:      "unresolved_waypoints_total",
		Help:      "Itinerary entries skipped because they could not be geocoded",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests processed",
	}, []string{"method", "path", "status"})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
