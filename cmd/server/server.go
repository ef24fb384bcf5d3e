package main

import (
	"io/fs"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"scry"
	"scry/internal/config"
	"scry/internal/handlers"
	"scry/internal/images"
	localMiddleware "scry/internal/middleware"
	"scry/internal/scryfall"
	"scry/internal/search"
)

// SetupServer creates and configures the server
func SetupServer(cfg *config.AppConfig) http.Handler {
	client := scryfall.NewClient(scryfall.Options{
		BaseURL:           cfg.Scryfall.BaseURL,
		UserAgent:         cfg.Scryfall.UserAgent,
		Timeout:           cfg.Scryfall.Timeout,
		RequestsPerSecond: cfg.Scryfall.RequestsPerSecond,
		Burst:             cfg.Scryfall.Burst,
	})
	fetcher := images.NewFetcher(cfg.Images.Timeout, cfg.Scryfall.UserAgent)
	store := search.NewMemoryStore()

	h := handlers.New(store, client, fetcher, cfg)

	r := chi.NewRouter()

	// Chi's built-in middleware; no global timeout, SSE connections are
	// long-lived
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Our custom middleware
	r.Use(localMiddleware.RequestSizeLimiter(cfg.Server.MaxRequestSize))
	r.Use(localMiddleware.SecurityHeaders())

	// Rate limiting
	rateLimiter := localMiddleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateLimitBurst)
	r.Use(rateLimiter.Middleware())

	// Static files from the embedded FS
	staticFS, err := fs.Sub(scry.StaticFS, "static")
	if err != nil {
		log.Fatal("Failed to mount static assets: ", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Pages
	r.Get("/", h.Home)
	r.Post("/search", h.Search)

	// SSE route with validation middleware
	r.Get("/sse/search", handlers.ValidateSSERequest(h.StreamSearch))

	// Health check endpoints
	r.Get("/health/live", h.HealthLive)
	r.Get("/health/ready", h.HealthReady)

	return r
}
