package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"gridsense-backend/internal/handlers"
	"gridsense-backend/internal/middleware"
)

func New(
	userHandler *handlers.UserHandler,
	sessionHandler *handlers.SessionHandler,
	sharingHandler *handlers.SharingHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Credential endpoint rate limiter (10 req/min per IP)
	credentialLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── User Routes ────
		r.Route("/users", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(credentialLimiter.Middleware)
				r.Post("/", userHandler.Create)
				r.Post("/{cwid}/login", userHandler.Login)
			})

			r.Get("/{cwid}", userHandler.Get)
			r.Get("/{cwid}/sessions", sessionHandler.ListOwned)
			r.Get("/{cwid}/shared-sessions", sharingHandler.ListShared)
		})

		// ──── Session Routes ────
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)
			r.Get("/{cwid}/{sessionNumber}", sessionHandler.Get)
		})

		// ──── Sharing Routes ────
		r.Post("/shared-sessions", sharingHandler.Share)
	})

	return r
}
