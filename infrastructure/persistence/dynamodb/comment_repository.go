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

// CommentRepository implements ports.CommentRepository using DynamoDB
type CommentRepository struct {
	client    *dynamodb.Client
	tableName string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(client *dynamodb.Client, tableName string, timeout time.Duration, logger *zap.Logger) ports.CommentRepository {
	return &CommentRepository{
		client:    client,
		tableName: tableName,
		timeout:   timeout,
		logger:    logger,
	}
}

// commentItem represents the DynamoDB item structure for a comment
type commentItem struct {
	PK              string `dynamodbav:"PK"`
	SK              string `dynamodbav:"SK"`
	EntityType      string `dynamodbav:"EntityType"`
	CommentID       string `dynamodbav:"CommentID"`
	GuideID         string `dynamodbav:"GuideID"`
	AuthorID        string `dynamodbav:"AuthorID"`
	AuthorEmail     string `dynamodbav:"AuthorEmail,omitempty"`
	Content         string `dynamodbav:"Content"`
	ParentCommentID string `dynamodbav:"ParentCommentID,omitempty"`
	IsQuestion      bool   `dynamodbav:"IsQuestion"`
	Hidden          bool   `dynamodbav:"Hidden"`
	CreatedAt       string `dynamodbav:"CreatedAt"`
}

func commentToItem(c *entities.Comment) commentItem {
	item := commentItem{
		PK:          guidePKPrefix + c.GuideID.String(),
		SK:          commentSKPrefix + c.ID.String(),
		EntityType:  "COMMENT",
		CommentID:   c.ID.String(),
		GuideID:     c.GuideID.String(),
		AuthorID:    c.Author.ID,
		AuthorEmail: c.Author.Email,
		Content:     c.Content,
		IsQuestion:  c.IsQuestion,
		Hidden:      c.Hidden,
		CreatedAt:   c.CreatedAt.UTC().Format(time.RFC3339),
	}
	if c.ParentCommentID != nil {
		item.ParentCommentID = *c.ParentCommentID
	}
	return item
}

func itemToComment(item commentItem) (*entities.Comment, error) {
	commentID, err := valueobjects.NewCommentIDFromString(item.CommentID)
	if err != nil {
		return nil, fmt.Errorf("corrupt comment item: %w", err)
	}
	guideID, err := valueobjects.NewGuideIDFromString(item.GuideID)
	if err != nil {
		return nil, fmt.Errorf("corrupt comment item: %w", err)
	}
	createdAt, err := utils.ParseRFC3339(item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("corrupt comment item: %w", err)
	}

	comment := &entities.Comment{
		ID:      commentID,
		GuideID: guideID,
		Author: entities.CommentAuthor{
			ID:    item.AuthorID,
			Email: item.AuthorEmail,
		},
		Content:    item.Content,
		IsQuestion: item.IsQuestion,
		Hidden:     item.Hidden,
		CreatedAt:  createdAt,
	}
	if item.ParentCommentID != "" {
		parent := item.ParentCommentID
		comment.ParentCommentID = &parent
	}

	return comment, nil
}

// Save persists a new comment
func (r *CommentRepository) Save(ctx context.Context, comment *entities.Comment) error {
	ctx, cancel := opCtx(ctx, r.timeout)
	defer cancel()

	av, err := attributevalue.MarshalMap(commentToItem(comment))
	if err != nil {
		return fmt.Errorf("failed to marshal comment: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return storeErr("save comment", err)
	}

	return nil
}

// GetByID retrieves one comment on a guide
func (r *CommentRepository) GetByID(ctx context.Context, guideID valueobjects.GuideID, commentID valueobjects.CommentID) (*entities.Comment, error) {
	ctx, cancel := opCtx(ctx, r.timeout)
	defer cancel()

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       commentKey(guideID, commentID),
	})
	if err != nil {
		return nil, storeErr("get comment", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("comment")
	}

	var item commentItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal comment: %w", err)
	}

	return itemToComment(item)
}

// ListVisibleByGuide returns all non-hidden comments for a guide. Ordering
// is left to the query handler.
func (r *CommentRepository) ListVisibleByGuide(ctx context.Context, guideID valueobjects.GuideID) ([]*entities.Comment, error) {
	ctx, cancel := opCtx(ctx, r.timeout)
	defer cancel()

	keyCond := expression.Key("PK").Equal(expression.Value(guidePKPrefix + guideID.String())).
		And(expression.Key("SK").BeginsWith(commentSKPrefix))
	filter := expression.Name("Hidden").Equal(expression.Value(false))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build comment expression: %w", err)
	}

	var comments []*entities.Comment
	var lastKey map[string]types.AttributeValue
	for {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, storeErr("list comments", err)
		}

		for _, raw := range result.Items {
			var item commentItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("skipping unreadable comment item", zap.Error(err))
				continue
			}
			comment, err := itemToComment(item)
			if err != nil {
				r.logger.Warn("skipping corrupt comment item",
					zap.String("commentID", item.CommentID),
					zap.Error(err),
				)
				continue
			}
			comments = append(comments, comment)
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		lastKey = result.LastEvaluatedKey
	}

	return comments, nil
}
