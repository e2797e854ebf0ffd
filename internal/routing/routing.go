package routing

import (
	"net/http"

	"github.com/rs/zerolog"

	"coffeecatalog/internal/handlers"
	"coffeecatalog/internal/metrics"
	"coffeecatalog/internal/middleware"
	"coffeecatalog/internal/templates"
)

// Config holds the configuration needed for setting up routes
type Config struct {
	Handlers *handlers.Handler
	Metrics  *metrics.Metrics
	Logger   zerolog.Logger
}

// SetupRouter creates and configures the HTTP router with all routes and middleware
func SetupRouter(cfg Config) http.Handler {
	h := cfg.Handlers
	mux := http.NewServeMux()

	// Main window and its actions
	mux.HandleFunc("GET /{$}", h.HandleHome) // {$} means exact match
	mux.HandleFunc("GET /coffee/new", h.HandleCoffeeNew)
	mux.HandleFunc("GET /coffee/edit", h.HandleCoffeeEdit)
	mux.HandleFunc("POST /coffee", h.HandleCoffeeCreate)
	mux.HandleFunc("POST /coffee/{id}", h.HandleCoffeeUpdate)

	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(templates.Static())))

	// Catch-all 404 handler - must be last, catches any unmatched routes
	mux.HandleFunc("/", h.HandleNotFound)

	// Apply middleware in order (outermost last)
	var handler http.Handler = mux
	handler = middleware.LimitBodyMiddleware(handler)
	handler = middleware.SecurityHeadersMiddleware(handler)
	handler = middleware.CrossOriginMiddleware(handler)
	handler = middleware.LocalOnlyMiddleware(handler)
	handler = middleware.LoggingMiddleware(cfg.Logger)(handler)

	return handler
}
