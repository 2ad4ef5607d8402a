package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/rs/zerolog/log"

	"saynope/internal/catalog"
	"saynope/internal/db"
	"saynope/internal/handlers"
	"saynope/internal/handlers/api"
	"saynope/internal/metrics"
)

// Deps are the collaborators the routes need.
type Deps struct {
	Catalog *catalog.Catalog
	// DB is optional; it enables the database health check and copy history.
	DB *db.DB
	// Metrics is optional; nil records nothing and hides /metrics.
	Metrics *metrics.Metrics
	// Rand overrides random selection in tests.
	Rand catalog.Rand
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(deps Deps) {
	var (
		pinger  handlers.Pinger
		popular api.PopularStore
	)
	if deps.DB != nil {
		pinger = deps.DB
		popular = deps.DB
	}

	pageHandler := handlers.NewPageHandler(deps.Catalog, s.Cfg, deps.Metrics, deps.Rand)
	themeHandler := handlers.NewThemeHandler(s.Cfg)
	healthHandler := handlers.NewHealthHandler(pinger)

	s.App.Get("/", pageHandler.Index)
	s.App.Get("/reasons", pageHandler.Reasons)
	s.App.Post("/random", pageHandler.Random)
	s.App.Post("/theme", themeHandler.Toggle)
	s.App.Get("/healthz", healthHandler.Healthz)

	if s.Cfg.MetricsEnabled && deps.Metrics != nil {
		s.App.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
		log.Info().Msg("metrics endpoint enabled at /metrics")
	}

	reasonHandler := api.NewReasonHandler(deps.Catalog, deps.Metrics, deps.Rand)
	copyHandler := api.NewCopyHandler(deps.Catalog, deps.Metrics, popular)

	apiGroup := s.App.Group("/api")
	apiGroup.Get("/reasons", reasonHandler.List)
	apiGroup.Get("/random", reasonHandler.Random)
	apiGroup.Get("/counts", reasonHandler.Counts)
	apiGroup.Get("/categories", reasonHandler.Categories)
	apiGroup.Post("/copies", copyHandler.Create)
	apiGroup.Get("/popular", copyHandler.Popular)
}
