package ports

import (
	"context"

	"proofr-backend/domain/core/entities"
	"proofr-backend/domain/core/valueobjects"
	"proofr-backend/domain/events"
)

// Sort options for published guide listings
const (
	SortRecent       = "recent"
	SortHighestRated = "highest_rated"
	SortPopular      = "popular"
)

// ListFilter narrows a published-guide listing. Sorting and pagination are
// applied by the query handler; the repository only filters.
type ListFilter struct {
	Category   string
	Difficulty string
}

// GuideRepository defines the interface for guide persistence
type GuideRepository interface {
	// Save persists a new guide
	Save(ctx context.Context, guide *entities.Guide) error

	// GetByID retrieves a guide by its ID; returns a not-found error when absent
	GetByID(ctx context.Context, id valueobjects.GuideID) (*entities.Guide, error)

	// Update persists a modified guide. Last writer wins: there is no
	// compare-and-swap on version, matching the observed upstream behavior.
	Update(ctx context.Context, guide *entities.Guide) error

	// Delete permanently removes a guide
	Delete(ctx context.Context, id valueobjects.GuideID) error

	// ListPublished returns all published guides matching the filter
	ListPublished(ctx context.Context, filter ListFilter) ([]*entities.Guide, error)

	// IncrementViewCount atomically bumps a guide's view counter
	IncrementViewCount(ctx context.Context, id valueobjects.GuideID, viewerID string) error
}

// InteractionRepository defines the interface for interaction persistence
type InteractionRepository interface {
	// Upsert merges the update into the (guide, user) record, creating it if
	// absent. The merge must be field-level: attributes the update does not
	// touch keep their prior values even under concurrent writers.
	Upsert(ctx context.Context, update *entities.InteractionUpdate) error

	// Get returns the interaction record for (guide, user), or (nil, nil)
	// when none exists
	Get(ctx context.Context, guideID valueobjects.GuideID, userID string) (*entities.Interaction, error)
}

// CommentRepository defines the interface for comment persistence
type CommentRepository interface {
	// Save persists a new comment
	Save(ctx context.Context, comment *entities.Comment) error

	// GetByID retrieves one comment on a guide; returns a not-found error
	// when absent
	GetByID(ctx context.Context, guideID valueobjects.GuideID, commentID valueobjects.CommentID) (*entities.Comment, error)

	// ListVisibleByGuide returns all non-hidden comments for a guide,
	// top-level and replies, unthreaded
	ListVisibleByGuide(ctx context.Context, guideID valueobjects.GuideID) ([]*entities.Comment, error)
}

// GuideSearcher is the delegated full-text search collaborator. Result order
// is the collaborator's ranking and must not be re-sorted locally.
type GuideSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]*entities.Guide, error)
}

// EventBus publishes domain events to the outside world
type EventBus interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}
