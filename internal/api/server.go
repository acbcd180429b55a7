// Package api provides the HTTP API server and handlers for the SummerPlan application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/summerplanapp/summerplan-server/internal/auth"
	"github.com/summerplanapp/summerplan-server/internal/config"
	"github.com/summerplanapp/summerplan-server/internal/ratelimit"
	"github.com/summerplanapp/summerplan-server/internal/service"
	"github.com/summerplanapp/summerplan-server/internal/sse"
	"github.com/summerplanapp/summerplan-server/internal/store"
)

// Services bundles the service layer for handler access.
type Services struct {
	Child    *service.ChildService
	Schedule *service.ScheduleService
	Interest *service.InterestService
	Squad    *service.SquadService
	Profile  *service.ProfileService
	Camp     *service.CampService
	Planner  *service.PlannerService
	Preview  *service.PreviewService
	Favorite *service.FavoriteService
	Sample   *service.SampleService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store          *store.Store
	services       *Services
	tokenService   *auth.TokenService
	sessionLimiter *ratelimit.KeyedRateLimiter
	router         *chi.Mux
	api            huma.API
	logger         *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, st *store.Store, services *Services, tokenService *auth.TokenService, sseManager *sse.Manager, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(remoteAddrContext)
	router.Use(authMiddleware(tokenService))

	humaConfig := huma.DefaultConfig(cfg.Server.Name, "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:          st,
		services:       services,
		tokenService:   tokenService,
		sessionLimiter: ratelimit.New(1, 5),
		router:         router,
		api:            api,
		logger:         logger,
	}

	s.registerHealthRoutes()
	s.registerSessionRoutes()
	s.registerChildRoutes()
	s.registerScheduleRoutes()
	s.registerInterestRoutes()
	s.registerSquadRoutes()
	s.registerProfileRoutes()
	s.registerCampRoutes()
	s.registerPlanRoutes()
	s.registerPreviewRoutes()
	s.registerFavoriteRoutes()
	s.registerSampleRoutes()

	// The event stream speaks raw SSE, so it mounts on chi directly rather
	// than through huma.
	sseHandler := sse.NewHandler(sseManager, resolveAccount(tokenService), logger)
	router.Method(http.MethodGet, "/api/v1/events", sseHandler)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-owned resources.
func (s *Server) Close() {
	s.sessionLimiter.Stop()
}
