package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/obs"
	"net/url"
	"strconv"
)

const geoNamesBaseURL = "http://api.geonames.org"

type geoNamesResponse struct {
	GeoNames []struct {
		Name        string `json:"name"`
		CountryName string `json:"countryName"`
		Lat         string `json:"lat"`
		Lng         string `json:"lng"`
	} `json:"geonames"`
	// Present instead of results when the request is rejected
	// (bad username, exhausted credits).
	Status *struct {
		Message string `json:"message"`
		Value   int    `json:"value"`
	} `json:"status"`
}

// GeoNames resolves places through the GeoNames searchJSON endpoint.
// The account username acts as the credential.
type GeoNames struct {
	transport *transport
	baseURL   string
	username  string
	limit     int
}

func NewGeoNames(cfg Config) *GeoNames {
	username := cfg.Username
	if username == "" {
		username = cfg.APIKey
	}
	return &GeoNames{
		transport: newTransport(cfg),
		baseURL:   cfg.baseURL(geoNamesBaseURL),
		username:  username,
		limit:     cfg.limit(),
	}
}

func (g *GeoNames) Geocode(ctx context.Context, query, language string) ([]domain.PlaceSuggestion, error) {
	return run(ctx, ProviderGeoNames, query, language, g.lookup)
}

func (g *GeoNames) lookup(ctx context.Context, query, language string) ([]domain.PlaceSuggestion, error) {
	if g.username == "" {
		return nil, &Error{Kind: KindCredential, Provider: ProviderGeoNames, Query: query, Err: ErrCredential}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxRows", strconv.Itoa(g.limit))
	params.Set("fuzzy", "0.7")
	params.Set("username", g.username)
	if language != "" {
		params.Set("lang", language)
	}

	body, err := g.transport.get(ctx, ProviderGeoNames, query, g.baseURL+"/searchJSON", params, nil)
	if err != nil {
		return nil, err
	}

	var decoded geoNamesResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &Error{Kind: KindParse, Provider: ProviderGeoNames, Query: query, Err: err}
	}
	if decoded.Status != nil {
		return nil, &Error{
			Kind:     KindProvider,
			Provider: ProviderGeoNames,
			Query:    query,
			Err:      errors.New(decoded.Status.Message),
		}
	}

	out := make([]domain.PlaceSuggestion, 0, len(decoded.GeoNames))
	for _, p := range decoded.GeoNames {
		point, err := parsePoint(p.Lat, p.Lng)
		if err != nil {
			obs.Logger(ctx).WithError(err).WithField("place", p.Name).Debug("geonames: skip place")
			continue
		}
		out = append(out, domain.PlaceSuggestion{
			DisplayName: p.Name,
			Point:       point,
			CountryName: p.CountryName,
		})
		if len(out) == g.limit {
			break
		}
	}

	return out, nil
}
