package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/job-radar/internal/middleware"
)

// NewRouter creates a new HTTP router with all routes
func NewRouter(h *Handler, auth *middleware.AuthMiddleware) http.Handler {
	mux := http.NewServeMux()

	// Swagger documentation
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// Public routes
	mux.HandleFunc("POST /api/v1/auth/register", h.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Login)
	mux.HandleFunc("GET /api/v1/health", h.Health)

	// User routes
	mux.Handle("GET /api/v1/auth/profile", auth.Authenticate(http.HandlerFunc(h.GetProfile)))
	mux.Handle("POST /api/v1/auth/api-key/regenerate", auth.Authenticate(http.HandlerFunc(h.RegenerateAPIKey)))

	// Job routes
	mux.Handle("GET /api/v1/jobs", auth.Authenticate(http.HandlerFunc(h.ListJobs)))
	mux.Handle("GET /api/v1/jobs/{id}", auth.Authenticate(http.HandlerFunc(h.GetJob)))
	mux.Handle("DELETE /api/v1/jobs/{id}", auth.Authenticate(http.HandlerFunc(h.DeleteJob)))

	// Saved search routes
	mux.Handle("POST /api/v1/searches", auth.Authenticate(http.HandlerFunc(h.CreateSearch)))
	mux.Handle("GET /api/v1/searches", auth.Authenticate(http.HandlerFunc(h.ListSearches)))
	mux.Handle("GET /api/v1/searches/{id}", auth.Authenticate(http.HandlerFunc(h.GetSearch)))
	mux.Handle("PUT /api/v1/searches/{id}", auth.Authenticate(http.HandlerFunc(h.UpdateSearch)))
	mux.Handle("DELETE /api/v1/searches/{id}", auth.Authenticate(http.HandlerFunc(h.DeleteSearch)))
	mux.Handle("POST /api/v1/searches/{id}/run", auth.Authenticate(http.HandlerFunc(h.TriggerSearch)))
	mux.Handle("GET /api/v1/searches/{id}/runs", auth.Authenticate(http.HandlerFunc(h.GetSearchRuns)))

	// Run routes
	mux.Handle("GET /api/v1/runs/recent", auth.Authenticate(http.HandlerFunc(h.GetRecentRuns)))

	// Status routes
	mux.Handle("GET /api/v1/status", auth.Authenticate(http.HandlerFunc(h.Status)))

	return middleware.CORS(middleware.JSON(middleware.Logger(mux)))
}
