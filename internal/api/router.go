// filepath: internal/api/router.go
package api

import (
	"embed"

	"github.com/noahchrist/myCbbModel/internal/api/handlers"
	"github.com/noahchrist/myCbbModel/internal/config"
	"github.com/noahchrist/myCbbModel/internal/web"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter creates and configures the HTTP router.
// All endpoints are public; the API carries no authentication layer.
func SetupRouter(h *handlers.Handlers, cfg *config.Config, frontendFS embed.FS) *mux.Router {
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(RecoveryMiddleware)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware(cfg.Server.CORSOrigin))

	// API endpoints
	// OPTIONS is listed so browser preflight requests reach the CORS middleware.
	r.HandleFunc("/ping", h.Ping).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/info", h.GetInfo).Methods("GET", "OPTIONS")

	// Swagger UI
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Frontend web server. Registers the catch-all route, so it must come last.
	web.AddRoutes(r, frontendFS, "index.html")

	return r
}
