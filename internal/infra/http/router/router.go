package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/http/handlers"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/http/middleware"
)

type Config struct {
	AllowedOrigins     []string
	LoginRatePerMinute int
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxy bool
}

type Handlers struct {
	Auth   *handlers.AuthHandler
	Agents *handlers.AgentHandler
	Lists  *handlers.ListHandler
	Health *handlers.HealthHandler
}

// New builds the HTTP API. Everything under /api except login requires an
// admin bearer token.
func New(cfg Config, h Handlers, tokens middleware.TokenParser, users middleware.UserFinder) http.Handler {
	r := chi.NewRouter()
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(zap.L()))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	adminOnly := middleware.AdminOnly(tokens, users)
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRatePerMinute)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Limit).Post("/login", h.Auth.HandleLogin)
			r.With(adminOnly).Get("/me", h.Auth.HandleMe)
		})

		r.Route("/agents", func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/", h.Agents.List)
			r.Post("/", h.Agents.Create)
			r.Put("/{id}", h.Agents.Update)
			r.Delete("/{id}", h.Agents.Delete)
		})

		r.Route("/lists", func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/", h.Lists.List)
			r.Post("/upload", h.Lists.Upload)
			r.Get("/agent/{agentId}", h.Lists.ListByAgent)
			r.Get("/export", h.Lists.Export)
		})
	})

	return r
}
