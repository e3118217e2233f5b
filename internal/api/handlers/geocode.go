package handlers

import (
	"itinerary-route-service/internal/adapters/geocoding"
	"itinerary-route-service/internal/api/dto"
	"itinerary-route-service/internal/platform/obs"
	"itinerary-route-service/internal/ports"
	"net/http"
	"strings"
)

const defaultLanguage = "en"

// GeocodeHandler serves place suggestions for the search box.
type GeocodeHandler struct {
	Geocoder ports.Geocoder
}

// Suggest answers GET /geocode?q=&lang=. A failed lookup degrades to an
// empty suggestion list; the failure is only logged.
func (h *GeocodeHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	query := r.URL.Query().Get("q")
	lang := language(r.URL.Query().Get("lang"))

	suggestions, err := h.Geocoder.Geocode(r.Context(), query, lang)
	if err != nil {
		obs.Logger(r.Context()).WithError(err).
			WithField("kind", geocoding.KindOf(err)).
			Warn("geocode failed")
		suggestions = nil
	}

	writeJSON(w, r, http.StatusOK, dto.NewGeocodeResponse(suggestions))
}

func language(raw string) string {
	if lang := strings.TrimSpace(raw); lang != "" {
		return lang
	}
	return defaultLanguage
}
