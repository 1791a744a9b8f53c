package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"proofr-backend/application/ports"
	"proofr-backend/domain/core/entities"
	"proofr-backend/domain/core/valueobjects"
	pkgerrors "proofr-backend/pkg/errors"
	"proofr-backend/pkg/utils"
)

// GuideRepository implements ports.GuideRepository using DynamoDB
type GuideRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewGuideRepository creates a new GuideRepository
func NewGuideRepository(client *dynamodb.Client, tableName, indexName string, timeout time.Duration, logger *zap.Logger) ports.GuideRepository {
	return &GuideRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		timeout:   timeout,
		logger:    logger,
	}
}

// guideItem represents the DynamoDB item structure for a guide
type guideItem struct {
	PK              string   `dynamodbav:"PK"`
	SK              string   `dynamodbav:"SK"`
	GSI1PK          string   `dynamodbav:"GSI1PK"`
	GSI1SK          string   `dynamodbav:"GSI1SK"`
	GSI2PK          string   `dynamodbav:"GSI2PK"`
	GSI2SK          string   `dynamodbav:"GSI2SK"`
	EntityType      string   `dynamodbav:"EntityType"`
	GuideID         string   `dynamodbav:"GuideID"`
	AuthorID        string   `dynamodbav:"AuthorID"`
	Title           string   `dynamodbav:"Title"`
	Slug            string   `dynamodbav:"Slug"`
	Description     string   `dynamodbav:"Description"`
	Category        string   `dynamodbav:"Category"`
	Difficulty      string   `dynamodbav:"Difficulty"`
	Content         string   `dynamodbav:"Content"`
	Tags            []string `dynamodbav:"Tags"`
	MetaDescription string   `dynamodbav:"MetaDescription,omitempty"`
	Status          string   `dynamodbav:"Status"`
	ModerationScore float64  `dynamodbav:"ModerationScore"`
	Version         int      `dynamodbav:"Version"`
	WordCount       int      `dynamodbav:"WordCount"`
	ReadTime        int      `dynamodbav:"ReadTime"`
	ViewCount       int      `dynamodbav:"ViewCount"`
	AvgRating       float64  `dynamodbav:"AvgRating"`
	CreatedAt       string   `dynamodbav:"CreatedAt"`
	PublishedAt     string   `dynamodbav:"PublishedAt,omitempty"`
	LastMajorUpdate string   `dynamodbav:"LastMajorUpdate,omitempty"`
}

func guideToItem(g *entities.Guide) guideItem {
	item := guideItem{
		PK:              guidePKPrefix + g.ID().String(),
		SK:              metadataSK,
		GSI1PK:          statusGSI1Prefix + string(g.Status()),
		GSI2PK:          userGSI2Prefix + g.AuthorID(),
		GSI2SK:          guidePKPrefix + g.ID().String(),
		EntityType:      "GUIDE",
		GuideID:         g.ID().String(),
		AuthorID:        g.AuthorID(),
		Title:           g.Title(),
		Slug:            g.Slug(),
		Description:     g.Description(),
		Category:        g.Category(),
		Difficulty:      string(g.Difficulty()),
		Content:         g.Content(),
		Tags:            g.Tags(),
		MetaDescription: g.MetaDescription(),
		Status:          string(g.Status()),
		ModerationScore: g.ModerationScore(),
		Version:         g.Version(),
		WordCount:       g.WordCount(),
		ReadTime:        g.ReadTime(),
		ViewCount:       g.ViewCount(),
		AvgRating:       g.AvgRating(),
		CreatedAt:       g.CreatedAt().UTC().Format(time.RFC3339),
	}

	// GSI1SK orders published listings by publish time; unreviewed guides
	// sort by creation time within their status partition
	if p := g.PublishedAt(); p != nil {
		item.PublishedAt = p.UTC().Format(time.RFC3339)
		item.GSI1SK = "PUBLISHED#" + item.PublishedAt
	} else {
		item.GSI1SK = "CREATED#" + item.CreatedAt
	}
	if u := g.LastMajorUpdate(); u != nil {
		item.LastMajorUpdate = u.UTC().Format(time.RFC3339)
	}

	return item
}

func itemToGuide(item guideItem) (*entities.Guide, error) {
	id, err := valueobjects.NewGuideIDFromString(item.GuideID)
	if err != nil {
		return nil, fmt.Errorf("corrupt guide item: %w", err)
	}

	createdAt, err := utils.ParseRFC3339(item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("corrupt guide item: %w", err)
	}

	var publishedAt, lastMajorUpdate *time.Time
	if item.PublishedAt != "" {
		t, err := utils.ParseRFC3339(item.PublishedAt)
		if err != nil {
			return nil, fmt.Errorf("corrupt guide item: %w", err)
		}
		publishedAt = &t
	}
	if item.LastMajorUpdate != "" {
		t, err := utils.ParseRFC3339(item.LastMajorUpdate)
		if err != nil {
			return nil, fmt.Errorf("corrupt guide item: %w", err)
		}
		lastMajorUpdate = &t
	}

	return entities.ReconstructGuide(
		id,
		item.AuthorID,
		item.Title, item.Slug, item.Description, item.Category,
		entities.GuideDifficulty(item.Difficulty),
		item.Content,
		item.Tags,
		item.MetaDescription,
		entities.GuideStatus(item.Status),
		item.ModerationScore,
		item.Version, item.WordCount, item.ReadTime, item.ViewCount,
		item.AvgRating,
		createdAt,
		publishedAt, lastMajorUpdate,
	), nil
}

// Save persists a new guide
func (r *GuideRepository) Save(ctx context.Context, guide *entities.Guide) error {
	ctx, cancel := opCtx(ctx, r.timeout)
	defer cancel()

	av, err := attributevalue.MarshalMap(guideToItem(guide))
	if err != nil {
		return fmt.Errorf("failed to marshal guide: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return storeErr("save guide", err)
	}

	return nil
}

// GetByID retrieves a guide by its ID
func (r *GuideRepository) GetByID(ctx context.Context, id valueobjects.GuideID) (*entities.Guide, error) {
	ctx, cancel := opCtx(ctx, r.timeout)
	defer cancel()

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       guideKey(id),
	})
	if err != nil {
		return nil, storeErr("get guide", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("guide")
	}

	var item guideItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal guide: %w", err)
	}

	return itemToGuide(item)
}

// Update persists a modified guide. The whole item is rewritten; last
// writer wins.
func (r *GuideRepository) Update(ctx context.Context, guide *entities.Guide) error {
	ctx, cancel := opCtx(ctx, r.timeout)
	defer cancel()

	av, err := attributevalue.MarshalMap(guideToItem(guide))
	if err != nil {
		return fmt.Errorf("failed to marshal guide: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return storeErr("update guide", err)
	}

	return nil
}

// Delete permanently removes a guide
func (r *GuideRepository) Delete(ctx context.Context, id valueobjects.GuideID) error {
	ctx, cancel := opCtx(ctx, r.timeout)
	defer cancel()

	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       guideKey(id),
	})
	if err != nil {
		return storeErr("delete guide", err)
	}

	return nil
}

// ListPublished returns all published guides matching the filter, querying
// the status index and paging through every partition segment
func (r *GuideRepository) ListPublished(ctx context.Context, filter ports.ListFilter) ([]*entities.Guide, error) {
	ctx, cancel := opCtx(ctx, r.timeout)
	defer cancel()

	keyCond := expression.Key("GSI1PK").Equal(expression.Value(statusGSI1Prefix + string(entities.StatusPublished)))

	builder := expression.NewBuilder().WithKeyCondition(keyCond)
	var filterCond expression.ConditionBuilder
	hasFilter := false
	if filter.Category != "" {
		filterCond = expression.Name("Category").Equal(expression.Value(filter.Category))
		hasFilter = true
	}
	if filter.Difficulty != "" {
		cond := expression.Name("Difficulty").Equal(expression.Value(filter.Difficulty))
		if hasFilter {
			filterCond = filterCond.And(cond)
		} else {
			filterCond = cond
			hasFilter = true
		}
	}
	if hasFilter {
		builder = builder.WithFilter(filterCond)
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build list expression: %w", err)
	}

	var guides []*entities.Guide
	var lastKey map[string]types.AttributeValue
	for {
		input := &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(r.indexName),
			KeyConditionExpression:    expr.KeyCondition(),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		}

		result, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, storeErr("list guides", err)
		}

		for _, raw := range result.Items {
			var item guideItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("skipping unreadable guide item", zap.Error(err))
				continue
			}
			guide, err := itemToGuide(item)
			if err != nil {
				r.logger.Warn("skipping corrupt guide item",
					zap.String("guideID", item.GuideID),
					zap.Error(err),
				)
				continue
			}
			guides = append(guides, guide)
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		lastKey = result.LastEvaluatedKey
	}

	return guides, nil
}

// IncrementViewCount atomically bumps a guide's view counter
func (r *GuideRepository) IncrementViewCount(ctx context.Context, id valueobjects.GuideID, viewerID string) error {
	ctx, cancel := opCtx(ctx, r.timeout)
	defer cancel()

	update := expression.Add(expression.Name("ViewCount"), expression.Value(1))
	cond := expression.AttributeExists(expression.Name("PK"))

	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("failed to build view count expression: %w", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       guideKey(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return storeErr("increment view count", err)
	}

	r.logger.Debug("view recorded",
		zap.String("guideID", id.String()),
		zap.String("viewerID", viewerID),
	)

	return nil
}
