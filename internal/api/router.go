package api

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/hugh/agencyhub/internal/api/handlers"
	"github.com/hugh/agencyhub/internal/api/middleware"
	"github.com/hugh/agencyhub/internal/auth"
	"github.com/hugh/agencyhub/internal/crm"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB              *gorm.DB
	Logger          *slog.Logger
	Service         *crm.Service
	Verifier        auth.TokenVerifier // nil leaves /rpc unauthenticated
	AllowedOrigins  []string
	RateLimitReqs   int // 0 disables rate limiting
	RateLimitWindow time.Duration
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Auth-Token", middleware.RequestIDHeader},
		ExposedHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB)
	agencyHandler := handlers.NewAgencyHandler(cfg.Service)
	userHandler := handlers.NewUserHandler(cfg.Service)
	contactHandler := handlers.NewContactHandler(cfg.Service)
	dealHandler := handlers.NewDealHandler(cfg.Service)
	pageHandler := handlers.NewLandingPageHandler(cfg.Service)
	interactionHandler := handlers.NewInteractionHandler(cfg.Service)

	// Health endpoints (no auth, no rate limit)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	r.Route("/rpc", func(r chi.Router) {
		r.Get("/healthcheck", healthHandler.Healthcheck)

		r.Group(func(r chi.Router) {
			if cfg.Verifier != nil {
				r.Use(middleware.Auth(cfg.Verifier))
			}
			if cfg.RateLimitReqs > 0 {
				r.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimitReqs, cfg.RateLimitWindow)))
			}

			// Queries
			r.Get("/getAgencies", agencyHandler.List)
			r.Get("/getAgencyBySubdomain", agencyHandler.GetBySubdomain)
			r.Get("/getUsersByAgency", userHandler.ListByAgency)
			r.Get("/getContactsByAgency", contactHandler.ListByAgency)
			r.Get("/searchContacts", contactHandler.Search)
			r.Get("/getDealsByAgency", dealHandler.ListByAgency)
			r.Get("/searchDeals", dealHandler.Search)
			r.Get("/getLandingPagesByAgency", pageHandler.ListByAgency)
			r.Get("/getContactInteractions", interactionHandler.ListByContact)

			// Mutations
			r.Post("/createAgency", agencyHandler.Create)
			r.Post("/updateAgency", agencyHandler.Update)
			r.Post("/createUser", userHandler.Create)
			r.Post("/createContact", contactHandler.Create)
			r.Post("/updateContact", contactHandler.Update)
			r.Post("/createDeal", dealHandler.Create)
			r.Post("/updateDeal", dealHandler.Update)
			r.Post("/createLandingPage", pageHandler.Create)
			r.Post("/publishLandingPage", pageHandler.Publish)
			r.Post("/createContactInteraction", interactionHandler.Create)
		})
	})

	return &Router{r}
}
