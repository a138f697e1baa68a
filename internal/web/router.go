package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// NewRouter builds and returns the Chi router with all routes configured.
// The login page and health endpoint are public; the forecast pages
// require a live session. Rate limiting is applied globally: 60 requests
// per minute per IP.
func NewRouter(handlers *Handlers, sessions SessionStore, redisClient redisPinger, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(httprate.LimitByIP(60, time.Minute))

	r.Get("/healthz", HealthHandlerFunc(redisClient, log))
	r.Get("/login", handlers.LoginForm)
	r.Post("/login", handlers.Login)

	r.Group(func(r chi.Router) {
		r.Use(RequireSession(sessions))
		r.Get("/", handlers.Index)
		r.Post("/", handlers.RequestForecast)
		r.Get("/logout", handlers.Logout)
	})

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
