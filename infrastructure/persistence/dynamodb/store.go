package dynamodb

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"proofr-backend/domain/core/valueobjects"
	pkgerrors "proofr-backend/pkg/errors"
)

// Key prefixes for the single-table layout
const (
	guidePKPrefix       = "GUIDE#"
	metadataSK          = "METADATA"
	interactionSKPrefix = "INTERACTION#"
	commentSKPrefix     = "COMMENT#"
	statusGSI1Prefix    = "STATUS#"
	userGSI2Prefix      = "USER#"
)

// defaultStoreTimeout bounds every store call when no timeout is configured
const defaultStoreTimeout = 3 * time.Second

// opCtx derives a bounded context for one store operation
func opCtx(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// storeErr maps a DynamoDB failure onto the application error taxonomy.
// Deadline hits become timeouts so callers can answer 504 instead of 500.
func storeErr(operation string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return pkgerrors.NewTimeoutError(operation)
	}
	return pkgerrors.NewDatabaseError(operation, err)
}

func guideKey(id valueobjects.GuideID) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: guidePKPrefix + id.String()},
		"SK": &types.AttributeValueMemberS{Value: metadataSK},
	}
}

func interactionKey(guideID valueobjects.GuideID, userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: guidePKPrefix + guideID.String()},
		"SK": &types.AttributeValueMemberS{Value: interactionSKPrefix + userID},
	}
}

func commentKey(guideID valueobjects.GuideID, commentID valueobjects.CommentID) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: guidePKPrefix + guideID.String()},
		"SK": &types.AttributeValueMemberS{Value: commentSKPrefix + commentID.String()},
	}
}
