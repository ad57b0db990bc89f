// Package router sets up the HTTP routes and middleware chains for the
// Theme Gate gateway. The submit endpoint carries the heaviest stack
// (rate limit plus API key); the read endpoints stay open for review tooling.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"

	"themegate/internal/handlers"
	"themegate/internal/middleware"
)

// submitRateLimit caps submissions per client IP per window. Theme
// submissions are rare human-driven events; anything past this is abuse.
const (
	submitRateLimit  = 10
	submitRateWindow = time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. apiKeyHash may be empty to disable the
// shared-key check. The returned rate limiter must be stopped on shutdown.
func New(subs *handlers.Submissions, apiKeyHash string) (chi.Router, *middleware.RateLimiter) {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check — no auth, no rate limit.
	r.Get("/health", handlers.Health)

	limiter := middleware.NewRateLimiter(submitRateLimit, submitRateWindow)

	r.Route("/api", func(r chi.Router) {
		// Submit — rate limited and key-gated.
		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware)
			r.Use(middleware.RequireAPIKey(apiKeyHash))
			r.Post("/submit", subs.Submit)
		})

		// Review endpoints.
		r.Get("/submissions", subs.List)
		r.Get("/submissions/{id}", subs.Get)
		r.Get("/submissions/{id}/qr.png", subs.QRCode)
	})

	return r, limiter
}
