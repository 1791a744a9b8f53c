package di

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"proofr-backend/application/commands"
	"proofr-backend/application/commands/bus"
	"proofr-backend/application/ports"
	"proofr-backend/application/queries"
	querybus "proofr-backend/application/queries/bus"
	"proofr-backend/domain/services"
	"proofr-backend/infrastructure/config"
	"proofr-backend/infrastructure/messaging/eventbridge"
	"proofr-backend/infrastructure/persistence/dynamodb"
	supabasesearch "proofr-backend/infrastructure/search/supabase"
	"proofr-backend/pkg/auth"
	"proofr-backend/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideGuideRepository creates a guide repository
func ProvideGuideRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.GuideRepository {
	return dynamodb.NewGuideRepository(
		client,
		cfg.DynamoDBTable,
		cfg.IndexName,
		cfg.StoreTimeout,
		logger,
	)
}

// ProvideInteractionRepository creates an interaction repository
func ProvideInteractionRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.InteractionRepository {
	return dynamodb.NewInteractionRepository(
		client,
		cfg.DynamoDBTable,
		cfg.StoreTimeout,
		logger,
	)
}

// ProvideCommentRepository creates a comment repository
func ProvideCommentRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.CommentRepository {
	return dynamodb.NewCommentRepository(
		client,
		cfg.DynamoDBTable,
		cfg.StoreTimeout,
		logger,
	)
}

// ProvideEventBus creates an event bus
func ProvideEventBus(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventBus {
	if cfg.EventBusName == "" {
		return eventbridge.NewNoop()
	}
	return eventbridge.NewPublisher(
		client,
		cfg.EventBusName,
		logger,
	)
}

// ProvideSearcher creates the delegated guide searcher
func ProvideSearcher(cfg *config.Config, logger *zap.Logger) (ports.GuideSearcher, error) {
	if !cfg.SearchEnabled() {
		logger.Warn("search delegation not configured, search queries will fail")
		return supabasesearch.NewDisabled(), nil
	}
	return supabasesearch.NewSearcher(cfg.SupabaseURL, cfg.SupabaseKey, logger)
}

// ProvideContentScreener creates the comment screener
func ProvideContentScreener(cfg *config.Config) *services.ContentScreener {
	return services.NewContentScreener(cfg.CommentDenylist)
}

// ProvideJWTValidator creates the JWT validator
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
	})
}

// ProvideRateLimiter creates the per-IP rate limiter
func ProvideRateLimiter() *auth.TokenBucketLimiter {
	return auth.NewIPRateLimiter(100)
}

// ProvideMetrics creates metrics instance
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config) *observability.Metrics {
	namespace := fmt.Sprintf("Proofr/%s", cfg.Environment)
	return observability.NewMetrics(namespace, client)
}

// ProvideTracer creates the request tracer
func ProvideTracer() *observability.Tracer {
	return observability.NewTracer("proofr-content")
}

// CommandHandlerAdapter adapts specific command handlers to the generic interface
type CommandHandlerAdapter struct {
	handler func(context.Context, bus.Command) error
}

func (a *CommandHandlerAdapter) Handle(ctx context.Context, cmd bus.Command) error {
	return a.handler(ctx, cmd)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	guideRepo ports.GuideRepository,
	interactionRepo ports.InteractionRepository,
	commentRepo ports.CommentRepository,
	screener *services.ContentScreener,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *bus.CommandBus {
	commandBus := bus.NewCommandBus()

	createGuideHandler := commands.NewCreateGuideHandler(guideRepo, eventBus, logger)
	commandBus.Register(commands.CreateGuideCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			createCmd, ok := cmd.(commands.CreateGuideCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			_, err := createGuideHandler.Handle(ctx, createCmd)
			return err
		},
	})

	updateGuideHandler := commands.NewUpdateGuideHandler(guideRepo, eventBus, logger)
	commandBus.Register(commands.UpdateGuideCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			updateCmd, ok := cmd.(commands.UpdateGuideCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			_, err := updateGuideHandler.Handle(ctx, updateCmd)
			return err
		},
	})

	deleteGuideHandler := commands.NewDeleteGuideHandler(guideRepo, eventBus, logger)
	commandBus.Register(commands.DeleteGuideCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			deleteCmd, ok := cmd.(commands.DeleteGuideCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return deleteGuideHandler.Handle(ctx, deleteCmd)
		},
	})

	recordInteractionHandler := commands.NewRecordInteractionHandler(guideRepo, interactionRepo, eventBus, logger)
	commandBus.Register(commands.RecordInteractionCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			recordCmd, ok := cmd.(commands.RecordInteractionCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return recordInteractionHandler.Handle(ctx, recordCmd)
		},
	})

	createCommentHandler := commands.NewCreateCommentHandler(guideRepo, commentRepo, screener, eventBus, logger)
	commandBus.Register(commands.CreateCommentCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			createCmd, ok := cmd.(commands.CreateCommentCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			_, err := createCommentHandler.Handle(ctx, createCmd)
			return err
		},
	})

	return commandBus
}

// QueryHandlerAdapter adapts specific query handlers to the generic interface
type QueryHandlerAdapter struct {
	handler func(context.Context, querybus.Query) (interface{}, error)
}

func (a *QueryHandlerAdapter) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	return a.handler(ctx, query)
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	guideRepo ports.GuideRepository,
	interactionRepo ports.InteractionRepository,
	commentRepo ports.CommentRepository,
	searcher ports.GuideSearcher,
	logger *zap.Logger,
) *querybus.QueryBus {
	queryBus := querybus.NewQueryBus()

	getGuideHandler := queries.NewGetGuideHandler(guideRepo, interactionRepo, logger)
	queryBus.Register(queries.GetGuideQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetGuideQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getGuideHandler.Handle(ctx, getQuery)
		},
	})

	listGuidesHandler := queries.NewListGuidesHandler(guideRepo, searcher, logger)
	queryBus.Register(queries.ListGuidesQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			listQuery, ok := query.(queries.ListGuidesQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listGuidesHandler.Handle(ctx, listQuery)
		},
	})

	listCommentsHandler := queries.NewListCommentsHandler(guideRepo, commentRepo)
	queryBus.Register(queries.ListCommentsQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			listQuery, ok := query.(queries.ListCommentsQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listCommentsHandler.Handle(ctx, listQuery)
		},
	})

	getCommentHandler := queries.NewGetCommentHandler(commentRepo)
	queryBus.Register(queries.GetCommentQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetCommentQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getCommentHandler.Handle(ctx, getQuery)
		},
	})

	return queryBus
}
