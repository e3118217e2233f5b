package handlers

import (
	"fmt"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/obs"
	"net/http"
	"strings"

	"github.com/twpayne/go-kml"
)

// KML answers GET /routes.kml?stop=..&stop=..&lang= with a KML document
// holding one placemark per resolved stop and the path between them.
func (h *RouteHandler) KML(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	stops := r.URL.Query()["stop"]
	if len(stops) == 0 {
		writeError(w, r, http.StatusBadRequest, "at least one stop is required")
		return
	}
	if len(stops) > domain.MaxWaypoints {
		writeError(w, r, http.StatusBadRequest,
			fmt.Sprintf("itinerary must have at most %d entries", domain.MaxWaypoints))
		return
	}

	result := h.Resolver.Resolve(r.Context(), stops, language(r.URL.Query().Get("lang")))

	w.Header().Set("Content-Type", "application/vnd.google-earth.kml+xml")
	w.WriteHeader(http.StatusOK)
	if err := routeKML(stops, result).WriteIndent(w, "", "  "); err != nil {
		obs.Logger(r.Context()).WithError(err).Warn("write kml failed")
	}
}

func routeKML(stops []string, result domain.RouteResult) *kml.CompoundElement {
	unresolved := make(map[int]bool, len(result.Unresolved))
	for _, i := range result.Unresolved {
		unresolved[i] = true
	}

	children := []kml.Element{
		kml.Name("Itinerary"),
		kml.Description(fmt.Sprintf("Total distance: %d km", result.RoundedKm())),
	}

	// Coordinates follow itinerary order, skipping blank and unresolved stops.
	next := 0
	for i, stop := range stops {
		if strings.TrimSpace(stop) == "" || unresolved[i] || next >= len(result.Coordinates) {
			continue
		}
		p := result.Coordinates[next]
		next++
		children = append(children, kml.Placemark(
			kml.Name(stop),
			kml.Point(kml.CoordinatesArray(p.CoordsToList())),
		))
	}

	if len(result.Coordinates) > 1 {
		coords := make([][]float64, 0, len(result.Coordinates))
		for _, p := range result.Coordinates {
			coords = append(coords, p.CoordsToList())
		}
		children = append(children, kml.Placemark(
			kml.Name("Route"),
			kml.LineString(kml.Tessellate(true), kml.CoordinatesArray(coords...)),
		))
	}

	return kml.KML(kml.Document(children...))
}
