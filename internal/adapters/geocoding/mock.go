package geocoding

import (
	"context"
	"itinerary-route-service/internal/domain"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type MockPlace struct {
	Query   string
	Name    string
	Country string
	Lat     float64
	Lon     float64
}

// MockGeocoder answers from a fixed table. Per-query latency and failures
// can be configured to exercise ordering and partial-failure paths.
// Queries are matched case-insensitively after whitespace normalization.
type MockGeocoder struct {
	mu       sync.RWMutex
	places   map[string][]domain.PlaceSuggestion
	failures map[string]error
	delays   map[string]time.Duration
	calls    atomic.Int64
}

func NewMockGeocoder(places []MockPlace) *MockGeocoder {
	m := &MockGeocoder{
		places:   make(map[string][]domain.PlaceSuggestion, len(places)),
		failures: map[string]error{},
		delays:   map[string]time.Duration{},
	}
	for _, p := range places {
		key := mockKey(p.Query)
		m.places[key] = append(m.places[key], domain.PlaceSuggestion{
			DisplayName: p.Name,
			Point:       domain.GeoPoint{Lat: p.Lat, Lon: p.Lon},
			CountryName: p.Country,
		})
	}
	return m
}

// Fail makes lookups for query return err.
func (m *MockGeocoder) Fail(query string, err error) *MockGeocoder {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[mockKey(query)] = err
	return m
}

// Delay makes lookups for query wait d before answering.
func (m *MockGeocoder) Delay(query string, d time.Duration) *MockGeocoder {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delays[mockKey(query)] = d
	return m
}

// Calls returns the number of lookups that reached the table
// (empty queries are not counted).
func (m *MockGeocoder) Calls() int {
	return int(m.calls.Load())
}

func (m *MockGeocoder) Geocode(ctx context.Context, query, language string) ([]domain.PlaceSuggestion, error) {
	return run(ctx, ProviderMock, query, language, m.lookup)
}

func (m *MockGeocoder) lookup(ctx context.Context, query, _ string) ([]domain.PlaceSuggestion, error) {
	m.calls.Add(1)
	key := mockKey(query)

	m.mu.RLock()
	delay := m.delays[key]
	failure := m.failures[key]
	places := m.places[key]
	m.mu.RUnlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, &Error{Kind: KindNetwork, Provider: ProviderMock, Query: query, Err: ctx.Err()}
		case <-timer.C:
		}
	}

	if failure != nil {
		return nil, failure
	}

	out := make([]domain.PlaceSuggestion, len(places))
	copy(out, places)
	return out, nil
}

func mockKey(q string) string {
	return strings.ToLower(normalize(q))
}

// DemoGeocoder returns a mock preloaded with a handful of cities, used
// when the service runs without a real provider.
func DemoGeocoder() *MockGeocoder {
	return NewMockGeocoder([]MockPlace{
		{Query: "Roma", Name: "Roma, Lazio, Italia", Country: "Italia", Lat: 41.9028, Lon: 12.4964},
		{Query: "Rome", Name: "Rome, Lazio, Italy", Country: "Italy", Lat: 41.9028, Lon: 12.4964},
		{Query: "Napoli", Name: "Napoli, Campania, Italia", Country: "Italia", Lat: 40.8518, Lon: 14.2681},
		{Query: "Naples", Name: "Naples, Campania, Italy", Country: "Italy", Lat: 40.8518, Lon: 14.2681},
		{Query: "Milano", Name: "Milano, Lombardia, Italia", Country: "Italia", Lat: 45.4642, Lon: 9.19},
		{Query: "Firenze", Name: "Firenze, Toscana, Italia", Country: "Italia", Lat: 43.7696, Lon: 11.2558},
		{Query: "Venezia", Name: "Venezia, Veneto, Italia", Country: "Italia", Lat: 45.4408, Lon: 12.3155},
		{Query: "Paris", Name: "Paris, Île-de-France, France", Country: "France", Lat: 48.8566, Lon: 2.3522},
		{Query: "Paris, France", Name: "Paris, Île-de-France, France", Country: "France", Lat: 48.8566, Lon: 2.3522},
	})
}
