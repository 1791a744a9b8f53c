package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"proofr-backend/application/ports"
	"proofr-backend/domain/core/entities"
	"proofr-backend/domain/core/valueobjects"
)

// InteractionRepository implements ports.InteractionRepository using DynamoDB
type InteractionRepository struct {
	client    *dynamodb.Client
	tableName string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewInteractionRepository creates a new InteractionRepository
func NewInteractionRepository(client *dynamodb.Client, tableName string, timeout time.Duration, logger *zap.Logger) ports.InteractionRepository {
	return &InteractionRepository{
		client:    client,
		tableName: tableName,
		timeout:   timeout,
		logger:    logger,
	}
}

// interactionItem represents the DynamoDB item structure for an interaction
type interactionItem struct {
	PK           string `dynamodbav:"PK"`
	SK           string `dynamodbav:"SK"`
	EntityType   string `dynamodbav:"EntityType"`
	GuideID      string `dynamodbav:"GuideID"`
	UserID       string `dynamodbav:"UserID"`
	Bookmarked   bool   `dynamodbav:"Bookmarked"`
	BookmarkedAt string `dynamodbav:"BookmarkedAt,omitempty"`
	FoundHelpful bool   `dynamodbav:"FoundHelpful"`
	Rating       *int   `dynamodbav:"Rating,omitempty"`
	RatedAt      string `dynamodbav:"RatedAt,omitempty"`
	Shared       bool   `dynamodbav:"Shared"`
	SharedAt     string `dynamodbav:"SharedAt,omitempty"`
	ShareMedium  string `dynamodbav:"ShareMedium,omitempty"`
	ReadProgress int    `dynamodbav:"ReadProgress"`
	UpdatedAt    string `dynamodbav:"UpdatedAt"`
}

// Upsert merges the update into the (guide, user) item with a single
// UpdateItem call. Only the attributes the update touches appear in the
// expression, so concurrent writers for different kinds never interfere.
func (r *InteractionRepository) Upsert(ctx context.Context, u *entities.InteractionUpdate) error {
	guideID, err := valueobjects.NewGuideIDFromString(u.GuideID)
	if err != nil {
		return err
	}

	ctx, cancel := opCtx(ctx, r.timeout)
	defer cancel()

	update := expression.
		Set(expression.Name("EntityType"), expression.Value("INTERACTION")).
		Set(expression.Name("GuideID"), expression.Value(u.GuideID)).
		Set(expression.Name("UserID"), expression.Value(u.UserID)).
		Set(expression.Name("UpdatedAt"), expression.Value(time.Now().UTC().Format(time.RFC3339)))

	if u.Bookmarked != nil {
		update = update.Set(expression.Name("Bookmarked"), expression.Value(*u.Bookmarked))
	}
	if u.BookmarkedAt != nil {
		update = update.Set(expression.Name("BookmarkedAt"), expression.Value(u.BookmarkedAt.UTC().Format(time.RFC3339)))
	}
	if u.ClearBookmark {
		update = update.Remove(expression.Name("BookmarkedAt"))
	}
	if u.FoundHelpful != nil {
		update = update.Set(expression.Name("FoundHelpful"), expression.Value(*u.FoundHelpful))
	}
	if u.Rating != nil {
		update = update.Set(expression.Name("Rating"), expression.Value(*u.Rating))
	}
	if u.RatedAt != nil {
		update = update.Set(expression.Name("RatedAt"), expression.Value(u.RatedAt.UTC().Format(time.RFC3339)))
	}
	if u.Shared != nil {
		update = update.Set(expression.Name("Shared"), expression.Value(*u.Shared))
	}
	if u.SharedAt != nil {
		update = update.Set(expression.Name("SharedAt"), expression.Value(u.SharedAt.UTC().Format(time.RFC3339)))
	}
	if u.ShareMedium != nil {
		update = update.Set(expression.Name("ShareMedium"), expression.Value(*u.ShareMedium))
	}
	if u.ReadProgress != nil {
		update = update.Set(expression.Name("ReadProgress"), expression.Value(*u.ReadProgress))
	}

	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return fmt.Errorf("failed to build interaction expression: %w", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       interactionKey(guideID, u.UserID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return storeErr("upsert interaction", err)
	}

	r.logger.Debug("interaction upserted",
		zap.String("guideID", u.GuideID),
		zap.String("userID", u.UserID),
		zap.String("kind", u.Kind),
	)

	return nil
}

// Get returns the interaction record for (guide, user), or (nil, nil) when
// none exists
func (r *InteractionRepository) Get(ctx context.Context, guideID valueobjects.GuideID, userID string) (*entities.Interaction, error) {
	ctx, cancel := opCtx(ctx, r.timeout)
	defer cancel()

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       interactionKey(guideID, userID),
	})
	if err != nil {
		return nil, storeErr("get interaction", err)
	}
	if result.Item == nil {
		return nil, nil
	}

	var item interactionItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal interaction: %w", err)
	}

	return itemToInteraction(item)
}

func itemToInteraction(item interactionItem) (*entities.Interaction, error) {
	interaction := &entities.Interaction{
		GuideID:      item.GuideID,
		UserID:       item.UserID,
		Bookmarked:   item.Bookmarked,
		FoundHelpful: item.FoundHelpful,
		Rating:       item.Rating,
		Shared:       item.Shared,
		ShareMedium:  item.ShareMedium,
		ReadProgress: item.ReadProgress,
	}

	var err error
	if interaction.BookmarkedAt, err = parseOptionalTime(item.BookmarkedAt); err != nil {
		return nil, fmt.Errorf("corrupt interaction item: %w", err)
	}
	if interaction.RatedAt, err = parseOptionalTime(item.RatedAt); err != nil {
		return nil, fmt.Errorf("corrupt interaction item: %w", err)
	}
	if interaction.SharedAt, err = parseOptionalTime(item.SharedAt); err != nil {
		return nil, fmt.Errorf("corrupt interaction item: %w", err)
	}

	return interaction, nil
}

func parseOptionalTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
