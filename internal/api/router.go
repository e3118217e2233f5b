package api

import (
	"itinerary-route-service/internal/api/handlers"
	"itinerary-route-service/internal/platform/metrics"
	"itinerary-route-service/internal/ports"
	"itinerary-route-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(geocoder ports.Geocoder, resolver *services.RouteResolver) http.Handler {
	mux := http.NewServeMux()

	geocodeHandler := &handlers.GeocodeHandler{Geocoder: geocoder}
	routeHandler := &handlers.RouteHandler{Resolver: resolver}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/geocode", geocodeHandler.Suggest)
	mux.HandleFunc("/routes", routeHandler.Resolve)
	mux.HandleFunc("/routes.kml", routeHandler.KML)
	mux.Handle("/metrics", metrics.Handler())

	return requestIDMiddleware(loggingMiddleware(mux))
}
