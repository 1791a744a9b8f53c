package di

import (
	"go.uber.org/zap"

	"proofr-backend/application/commands/bus"
	"proofr-backend/application/ports"
	querybus "proofr-backend/application/queries/bus"
	"proofr-backend/domain/services"
	"proofr-backend/infrastructure/config"
	"proofr-backend/pkg/auth"
	"proofr-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *zap.Logger
	GuideRepo       ports.GuideRepository
	InteractionRepo ports.InteractionRepository
	CommentRepo     ports.CommentRepository
	Searcher        ports.GuideSearcher
	EventBus        ports.EventBus
	Screener        *services.ContentScreener
	JWTValidator    *auth.JWTValidator
	RateLimiter     *auth.TokenBucketLimiter
	CommandBus      *bus.CommandBus
	QueryBus        *querybus.QueryBus
	Metrics         *observability.Metrics
	Tracer          *observability.Tracer
}
