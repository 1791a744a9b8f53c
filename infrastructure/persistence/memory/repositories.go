// Package memory provides in-memory implementations of the persistence
// ports. They back local development and the HTTP-level tests; semantics
// mirror the DynamoDB repositories.
package memory

import (
	"context"
	"sync"

	"proofr-backend/application/ports"
	"proofr-backend/domain/core/entities"
	"proofr-backend/domain/core/valueobjects"
	pkgerrors "proofr-backend/pkg/errors"
)

// GuideRepository is an in-memory ports.GuideRepository
type GuideRepository struct {
	mu     sync.RWMutex
	guides map[string]*entities.Guide
}

// NewGuideRepository creates an empty in-memory guide repository
func NewGuideRepository() *GuideRepository {
	return &GuideRepository{guides: make(map[string]*entities.Guide)}
}

// Save persists a new guide
func (r *GuideRepository) Save(ctx context.Context, guide *entities.Guide) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guides[guide.ID().String()] = guide
	return nil
}

// GetByID retrieves a guide by its ID
func (r *GuideRepository) GetByID(ctx context.Context, id valueobjects.GuideID) (*entities.Guide, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	guide, ok := r.guides[id.String()]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("guide")
	}
	return guide, nil
}

// Update persists a modified guide
func (r *GuideRepository) Update(ctx context.Context, guide *entities.Guide) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guides[guide.ID().String()] = guide
	return nil
}

// Delete permanently removes a guide
func (r *GuideRepository) Delete(ctx context.Context, id valueobjects.GuideID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.guides, id.String())
	return nil
}

// ListPublished returns all published guides matching the filter
func (r *GuideRepository) ListPublished(ctx context.Context, filter ports.ListFilter) ([]*entities.Guide, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var guides []*entities.Guide
	for _, g := range r.guides {
		if !g.IsPublished() {
			continue
		}
		if filter.Category != "" && g.Category() != filter.Category {
			continue
		}
		if filter.Difficulty != "" && string(g.Difficulty()) != filter.Difficulty {
			continue
		}
		guides = append(guides, g)
	}
	return guides, nil
}

// IncrementViewCount bumps a guide's view counter
func (r *GuideRepository) IncrementViewCount(ctx context.Context, id valueobjects.GuideID, viewerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	guide, ok := r.guides[id.String()]
	if !ok {
		return pkgerrors.NewNotFoundError("guide")
	}
	r.guides[id.String()] = withViewCount(guide, guide.ViewCount()+1)
	return nil
}

// withViewCount rebuilds the guide with a new view count. The entity keeps
// its counters read-only outside the store, so reconstruction is the only
// way to change one.
func withViewCount(g *entities.Guide, viewCount int) *entities.Guide {
	return entities.ReconstructGuide(
		g.ID(),
		g.AuthorID(),
		g.Title(), g.Slug(), g.Description(), g.Category(),
		g.Difficulty(),
		g.Content(),
		g.Tags(),
		g.MetaDescription(),
		g.Status(),
		g.ModerationScore(),
		g.Version(), g.WordCount(), g.ReadTime(), viewCount,
		g.AvgRating(),
		g.CreatedAt(),
		g.PublishedAt(), g.LastMajorUpdate(),
	)
}

// InteractionRepository is an in-memory ports.InteractionRepository
type InteractionRepository struct {
	mu           sync.RWMutex
	interactions map[string]*entities.Interaction
}

// NewInteractionRepository creates an empty in-memory interaction repository
func NewInteractionRepository() *InteractionRepository {
	return &InteractionRepository{interactions: make(map[string]*entities.Interaction)}
}

func interactionKey(guideID, userID string) string {
	return guideID + "#" + userID
}

// Upsert merges the update into the stored record, creating it if absent
func (r *InteractionRepository) Upsert(ctx context.Context, update *entities.InteractionUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := interactionKey(update.GuideID, update.UserID)
	record, ok := r.interactions[key]
	if !ok {
		record = &entities.Interaction{
			GuideID: update.GuideID,
			UserID:  update.UserID,
		}
		r.interactions[key] = record
	}
	record.Apply(update)
	return nil
}

// Get returns the interaction record for (guide, user), or (nil, nil)
func (r *InteractionRepository) Get(ctx context.Context, guideID valueobjects.GuideID, userID string) (*entities.Interaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.interactions[interactionKey(guideID.String(), userID)]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

// CommentRepository is an in-memory ports.CommentRepository
type CommentRepository struct {
	mu       sync.RWMutex
	comments map[string]*entities.Comment
}

// NewCommentRepository creates an empty in-memory comment repository
func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[string]*entities.Comment)}
}

func commentKey(guideID, commentID string) string {
	return guideID + "#" + commentID
}

// Save persists a new comment
func (r *CommentRepository) Save(ctx context.Context, comment *entities.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments[commentKey(comment.GuideID.String(), comment.ID.String())] = comment
	return nil
}

// GetByID retrieves one comment on a guide
func (r *CommentRepository) GetByID(ctx context.Context, guideID valueobjects.GuideID, commentID valueobjects.CommentID) (*entities.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	comment, ok := r.comments[commentKey(guideID.String(), commentID.String())]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("comment")
	}
	copied := *comment
	return &copied, nil
}

// ListVisibleByGuide returns all non-hidden comments for a guide
func (r *CommentRepository) ListVisibleByGuide(ctx context.Context, guideID valueobjects.GuideID) ([]*entities.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var comments []*entities.Comment
	for _, c := range r.comments {
		if c.GuideID.String() != guideID.String() || c.Hidden {
			continue
		}
		copied := *c
		copied.Replies = nil
		comments = append(comments, &copied)
	}
	return comments, nil
}

// Hide marks a comment hidden. Moderation tooling uses this directly; the
// public API never exposes it.
func (r *CommentRepository) Hide(guideID valueobjects.GuideID, commentID valueobjects.CommentID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.comments[commentKey(guideID.String(), commentID.String())]; ok {
		c.Hidden = true
	}
}
