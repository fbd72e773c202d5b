package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes wires the HTTP handlers into the provided router.
func RegisterRoutes(r *mux.Router, deps Dependencies) {
	health := HealthHandler{}
	categories := CategoryHandler{Categories: deps.Categories, Limiter: deps.WriteLimiter}
	videos := VideoHandler{Videos: deps.Videos, Metadata: deps.VideoMetadata, Limiter: deps.WriteLimiter}

	r.HandleFunc("/healthz", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/categories", categories.List).Methods(http.MethodGet)
	api.HandleFunc("/categories", categories.Create).Methods(http.MethodPost)
	api.HandleFunc("/categories/{id}", categories.Get).Methods(http.MethodGet)
	api.HandleFunc("/categories/{id}", categories.Update).Methods(http.MethodPut)
	api.HandleFunc("/categories/{id}", categories.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/videos", videos.List).Methods(http.MethodGet)
	api.HandleFunc("/videos", videos.Create).Methods(http.MethodPost)
	api.HandleFunc("/videos/search", videos.Search).Methods(http.MethodGet)
	api.HandleFunc("/videos/metadata", videos.LookupMetadata).Methods(http.MethodGet)
	api.HandleFunc("/videos/category/{categoryId}", videos.ListByCategory).Methods(http.MethodGet)
	api.HandleFunc("/videos/{id}", videos.Get).Methods(http.MethodGet)
	api.HandleFunc("/videos/{id}", videos.Update).Methods(http.MethodPut)
	api.HandleFunc("/videos/{id}", videos.Delete).Methods(http.MethodDelete)
}

// Dependencies aggregates collaborators required by the HTTP handlers.
type Dependencies struct {
	Categories    CategoryStore
	Videos        VideoStore
	VideoMetadata VideoMetadataProvider
	WriteLimiter  RateLimiter
}
