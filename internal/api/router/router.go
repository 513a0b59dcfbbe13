package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/contentloom/contentloom/internal/api/handlers"
	"github.com/contentloom/contentloom/internal/api/middleware"
	"github.com/contentloom/contentloom/internal/config"
	"github.com/contentloom/contentloom/internal/domain/asset"
	"github.com/contentloom/contentloom/internal/pkg/logger"
	"github.com/contentloom/contentloom/internal/pkg/metrics"
)

type Handlers struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Subscription *handlers.SubscriptionHandler
	Billing      *handlers.BillingHandler
	Asset        *handlers.AssetHandler
	Team         *handlers.TeamHandler
	Content      *handlers.ContentHandler
	Session      *handlers.SessionHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(metrics.Middleware)
	r.Use(middleware.RateLimit(100, 200)) // 100 req/sec, burst of 200

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/swagger/*", httpSwagger.WrapHandler)

		r.Get("/health", h.Health.Healthz)
		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)
		r.Handle("/metrics", metrics.Handler())

		r.Post("/api/v1/auth/register", h.Auth.Register)
		r.Post("/api/v1/auth/login", h.Auth.Login)
		r.Post("/api/v1/auth/refresh", h.Auth.RefreshToken)

		r.Get("/api/v1/billing/plans", h.Billing.ListPlans)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))

		r.Get("/api/v1/auth/me", h.Auth.Me)

		// Subscription status, polled by the client's trial prompt
		r.Get("/api/v1/subscription/status", h.Subscription.Status)

		// Billing
		r.Route("/api/v1/billing", func(r chi.Router) {
			r.Post("/checkout", h.Billing.Checkout)
			r.Post("/trial", h.Billing.StartTrial)
			r.Post("/subscription", h.Billing.ActivatePlan)
		})

		// Team membership
		r.Route("/api/v1/team/members", func(r chi.Router) {
			r.Get("/", h.Team.ListMembers)
			r.Post("/", h.Team.AddMember)
		})

		// Quota-checked assets
		r.Route("/api/v1/brands", func(r chi.Router) {
			r.Get("/", h.Asset.List(asset.KindBrand))
			r.Post("/", h.Asset.Create(asset.KindBrand))
			r.Delete("/{id}", h.Asset.Delete)
		})
		r.Route("/api/v1/personas", func(r chi.Router) {
			r.Get("/", h.Asset.List(asset.KindPersona))
			r.Post("/", h.Asset.Create(asset.KindPersona))
			r.Delete("/{id}", h.Asset.Delete)
		})
		r.Route("/api/v1/themes", func(r chi.Router) {
			r.Get("/", h.Asset.List(asset.KindTheme))
			r.Post("/", h.Asset.Create(asset.KindTheme))
			r.Delete("/{id}", h.Asset.Delete)
		})

		// Credit-debited content generation
		r.Route("/api/v1/content", func(r chi.Router) {
			r.Post("/quick", h.Content.Quick)
			r.Post("/suggestions", h.Content.Suggestions)
			r.Post("/plans", h.Content.Plan)
			r.Post("/reviews", h.Content.Review)
		})

		// Usage-session tracking
		r.Route("/api/v1/usage-sessions", func(r chi.Router) {
			r.Post("/start", h.Session.Start)
			r.Post("/pause", h.Session.Pause)
			r.Post("/resume", h.Session.Resume)
			r.Post("/heartbeat", h.Session.Heartbeat)
			r.Post("/end", h.Session.End)
			r.Post("/beacon", h.Session.Beacon)
		})
	})

	return r
}
