package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/correspondence-backend/internal/transport/middleware"
)

// NewRouter mounts the health endpoints behind the request middleware.
func NewRouter(log *slog.Logger, health *HealthHandler) http.Handler {
	log = log.With("component", "http")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.SourceIP)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))

	r.MethodFunc(http.MethodGet, "/live", health.Live)
	r.MethodFunc(http.MethodGet, "/ready", health.Ready)
	r.MethodFunc(http.MethodGet, "/health", health.Health)
	return r
}
