package main

import (
	"net/http"

	"github.com/benvon/date-night/internal/config"
	"github.com/benvon/date-night/internal/database"
	"github.com/benvon/date-night/internal/handlers"
	"github.com/benvon/date-night/internal/middleware"
	"github.com/benvon/date-night/internal/telemetry"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type routerDeps struct {
	cfg       *config.Config
	logger    *zap.Logger
	planner   handlers.IdeaPlanner
	ideas     database.IdeaRepositoryInterface // nil when no database is configured
	health    *handlers.HealthChecker
	rateLimit func(http.Handler) http.Handler
	tracing   bool
}

// newRouter mounts every route and wraps the router in the middleware chain
func newRouter(deps routerDeps) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)

	// gorilla/mux runs middleware in registration order; the first is outermost
	if deps.tracing {
		r.Use(telemetry.Middleware(telemetry.ServiceName))
	}
	r.Use(middleware.SecurityHeaders(deps.cfg.EnableHSTS))
	r.Use(middleware.Logging(deps.logger))
	r.Use(middleware.Audit(deps.logger))
	r.Use(middleware.ErrorHandler(deps.logger))
	r.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize))
	r.Use(middleware.ContentType)
	r.Use(middleware.Timeout(deps.cfg.RequestTimeout))

	// Health checks are not rate limited
	r.HandleFunc("/healthz", deps.health.HealthCheck).Methods("GET")

	// Subrouters fall through to NotFound on a method mismatch unless they
	// carry their own handler
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)
	if deps.rateLimit != nil {
		apiRouter.Use(deps.rateLimit)
	}

	if deps.ideas != nil {
		ideaHandler := handlers.NewIdeaHandler(deps.ideas, deps.logger)
		ideaRouter := apiRouter.PathPrefix("/date-night-ideas").Subrouter()
		ideaRouter.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)
		ideaHandler.RegisterRoutes(ideaRouter)
	}

	dateNightHandler := handlers.NewDateNightHandler(deps.planner, deps.logger)
	dateNightHandler.RegisterRoutes(apiRouter)

	// CORS wraps the router so preflight requests never reach route matching
	return middleware.CORS(deps.cfg.CORSAllowedOrigins)(r)
}
