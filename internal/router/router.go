// Package router sets up all HTTP routes and middleware chains for the
// TradeFX API. It organizes routes into public read endpoints and the
// session-gated admin group.
package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tradefx/internal/handlers"
	"tradefx/internal/middleware"
	"tradefx/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. loginLimiter guards the credential endpoint.
func New(sessionStore *session.Store, loginLimiter *middleware.RateLimiter,
	public *handlers.Public, admin *handlers.Admin, auth *handlers.Auth) chi.Router {

	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.Metrics)
	r.Use(middleware.LoadSession(sessionStore))

	// Liveness and observability — no auth, no CSRF.
	r.Get("/health", public.Health)
	r.Method("GET", "/metrics", promhttp.Handler())

	// Public read endpoints consumed by the blog frontend.
	r.Get("/posts", public.Posts)
	r.Get("/posts/{slug}", public.PostDetail)
	r.Get("/posts/{slug}/related", public.Related)
	r.Get("/tags", public.TagCloud)
	r.Get("/trending", public.Trending)

	// Post creation sits outside /admin but needs the same protections.
	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF)
		r.Use(middleware.RequireAuth)
		r.Use(middleware.Require2FA)
		r.Post("/posts", admin.PostCreate)
	})

	// Admin routes — CSRF-protected; writes require a verified session.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.CSRF)

		// Login is reachable without a session but rate-limited per IP.
		r.With(loginLimiter.Middleware).Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)

		// 2FA — requires auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup", auth.TwoFASetup)
			r.Post("/2fa/verify", auth.TwoFAVerify)
		})

		// Authenticated + 2FA-verified post management.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Put("/posts/{id}", admin.PostUpdate)
			r.Delete("/posts/{id}", admin.PostDelete)
		})
	})

	return r
}
