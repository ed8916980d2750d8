package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/riya/garba-tracker-website/internal/api/handlers"
	"github.com/riya/garba-tracker-website/internal/api/middleware"
	"github.com/riya/garba-tracker-website/internal/service"
	"github.com/riya/garba-tracker-website/internal/web"
)

func NewRouter(services *service.Services, renderer *web.Renderer) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, renderer)
	pagesHandler := handlers.NewPagesHandler(services.Tracker, services.Dashboard, renderer)
	sessionsHandler := handlers.NewSessionsHandler(services.Tracker, renderer)

	// Public routes: login affordance and the OAuth callback
	r.Get("/", authHandler.LoginPage)
	r.Get("/login", authHandler.Login)
	r.Get("/auth/callback", authHandler.Callback)

	// Everything else requires a live browser session
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(services.Auth))

		r.Get("/log", pagesHandler.LogPage)
		r.Get("/dashboard", pagesHandler.DashboardPage)
		r.Get("/manage", pagesHandler.ManagePage)
		r.Get("/logout", authHandler.Logout)

		r.Post("/sessions", sessionsHandler.Create)
		r.Post("/sessions/{id}", sessionsHandler.Update)
		r.Post("/sessions/{id}/delete", sessionsHandler.Delete)
	})

	return r
}
