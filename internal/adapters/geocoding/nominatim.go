package geocoding

import (
	"context"
	"encoding/json"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/obs"
	"net/url"
	"strconv"
)

const (
	nominatimBaseURL   = "https://nominatim.openstreetmap.org"
	nominatimUserAgent = "itinerary-route-service/1.0"
)

// nominatimPlace mirrors the relevant parts of the OSM search payload.
type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Address     struct {
		Country string `json:"country"`
	} `json:"address"`
}

// Nominatim resolves places through the OpenStreetMap search API.
// No credential is required, but the usage policy asks for a User-Agent.
type Nominatim struct {
	transport *transport
	baseURL   string
	limit     int
}

func NewNominatim(cfg Config) *Nominatim {
	if cfg.UserAgent == "" {
		cfg.UserAgent = nominatimUserAgent
	}
	return &Nominatim{
		transport: newTransport(cfg),
		baseURL:   cfg.baseURL(nominatimBaseURL),
		limit:     cfg.limit(),
	}
}

func (n *Nominatim) Geocode(ctx context.Context, query, language string) ([]domain.PlaceSuggestion, error) {
	return run(ctx, ProviderNominatim, query, language, n.lookup)
}

func (n *Nominatim) lookup(ctx context.Context, query, language string) ([]domain.PlaceSuggestion, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("limit", strconv.Itoa(n.limit))
	if language != "" {
		params.Set("accept-language", language)
	}

	body, err := n.transport.get(ctx, ProviderNominatim, query, n.baseURL+"/search", params, nil)
	if err != nil {
		return nil, err
	}

	var places []nominatimPlace
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, &Error{Kind: KindParse, Provider: ProviderNominatim, Query: query, Err: err}
	}

	out := make([]domain.PlaceSuggestion, 0, len(places))
	for _, p := range places {
		point, err := parsePoint(p.Lat, p.Lon)
		if err != nil {
			obs.Logger(ctx).WithError(err).WithField("place", p.DisplayName).Debug("nominatim: skip place")
			continue
		}
		out = append(out, domain.PlaceSuggestion{
			DisplayName: p.DisplayName,
			Point:       point,
			CountryName: p.Address.Country,
		})
		if len(out) == n.limit {
			break
		}
	}

	return out, nil
}
