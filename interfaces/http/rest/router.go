package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"proofr-backend/application/commands/bus"
	querybus "proofr-backend/application/queries/bus"
	"proofr-backend/interfaces/http/rest/handlers"
	"proofr-backend/interfaces/http/rest/middleware"
	v1 "proofr-backend/interfaces/http/rest/v1"
	"proofr-backend/pkg/auth"
	"proofr-backend/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	validator  *auth.JWTValidator
	limiter    *auth.TokenBucketLimiter
	metrics    *observability.Metrics
	tracer     *observability.Tracer
	logger     *zap.Logger
}

// NewRouter creates a new router instance. A nil metrics or tracer disables
// the corresponding request instrumentation.
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	validator *auth.JWTValidator,
	limiter *auth.TokenBucketLimiter,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		validator:  validator,
		limiter:    limiter,
		metrics:    metrics,
		tracer:     tracer,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.metrics != nil {
		router.Use(middleware.Collect(rt.metrics))
	}
	if rt.tracer != nil {
		router.Use(middleware.Trace(rt.tracer))
	}

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://*.proofr.com"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// API v1 routes (legacy shim)
	router.Mount("/api/v1", v1.NewRouter())

	// API v2 routes (current)
	requireAuth := middleware.Authenticate(rt.validator, rt.limiter, rt.logger)
	optionalAuth := middleware.OptionalAuth(rt.validator, rt.logger)

	router.Route("/api/v2", func(r chi.Router) {
		guideHandler := handlers.NewGuideHandler(rt.commandBus, rt.queryBus, rt.logger)
		commentHandler := handlers.NewCommentHandler(rt.commandBus, rt.queryBus, rt.logger)
		interactionHandler := handlers.NewInteractionHandler(rt.commandBus, rt.logger)

		r.Route("/guides", func(r chi.Router) {
			// Public read surface
			r.Get("/", guideHandler.ListGuides)
			r.With(optionalAuth).Get("/{guideID}", guideHandler.GetGuide)
			r.Get("/{guideID}/comments", commentHandler.ListComments)

			// Authoring and engagement require a caller identity
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", guideHandler.CreateGuide)
				r.Put("/{guideID}", guideHandler.UpdateGuide)
				r.Delete("/{guideID}", guideHandler.DeleteGuide)
				r.Post("/{guideID}/interact", interactionHandler.RecordInteraction)
				r.Post("/{guideID}/comments", commentHandler.CreateComment)
			})
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
