package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"itinerary-route-service/internal/api/dto"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/services"
	"net/http"
)

// RouteHandler computes itinerary distances.
type RouteHandler struct {
	Resolver *services.RouteResolver
}

// Resolve answers POST /routes with the resolved path and its distance.
// Entries that cannot be geocoded are skipped and listed in "unresolved".
func (h *RouteHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.RouteRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Itinerary) > domain.MaxWaypoints {
		writeError(w, r, http.StatusBadRequest,
			fmt.Sprintf("itinerary must have at most %d entries", domain.MaxWaypoints))
		return
	}

	result := h.Resolver.Resolve(r.Context(), req.Itinerary, language(req.Language))

	writeJSON(w, r, http.StatusOK, dto.NewRouteResponse(result))
}
