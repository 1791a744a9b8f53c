// Package mocks provides testify mocks for the application ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"proofr-backend/application/ports"
	"proofr-backend/domain/core/entities"
	"proofr-backend/domain/core/valueobjects"
	"proofr-backend/domain/events"
)

// GuideRepository is a mock ports.GuideRepository
type GuideRepository struct {
	mock.Mock
}

func (m *GuideRepository) Save(ctx context.Context, guide *entities.Guide) error {
	args := m.Called(ctx, guide)
	return args.Error(0)
}

func (m *GuideRepository) GetByID(ctx context.Context, id valueobjects.GuideID) (*entities.Guide, error) {
	args := m.Called(ctx, id)
	if g := args.Get(0); g != nil {
		return g.(*entities.Guide), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *GuideRepository) Update(ctx context.Context, guide *entities.Guide) error {
	args := m.Called(ctx, guide)
	return args.Error(0)
}

func (m *GuideRepository) Delete(ctx context.Context, id valueobjects.GuideID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *GuideRepository) ListPublished(ctx context.Context, filter ports.ListFilter) ([]*entities.Guide, error) {
	args := m.Called(ctx, filter)
	if g := args.Get(0); g != nil {
		return g.([]*entities.Guide), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *GuideRepository) IncrementViewCount(ctx context.Context, id valueobjects.GuideID, viewerID string) error {
	args := m.Called(ctx, id, viewerID)
	return args.Error(0)
}

// InteractionRepository is a mock ports.InteractionRepository
type InteractionRepository struct {
	mock.Mock
}

func (m *InteractionRepository) Upsert(ctx context.Context, update *entities.InteractionUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *InteractionRepository) Get(ctx context.Context, guideID valueobjects.GuideID, userID string) (*entities.Interaction, error) {
	args := m.Called(ctx, guideID, userID)
	if i := args.Get(0); i != nil {
		return i.(*entities.Interaction), args.Error(1)
	}
	return nil, args.Error(1)
}

// CommentRepository is a mock ports.CommentRepository
type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Save(ctx context.Context, comment *entities.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) GetByID(ctx context.Context, guideID valueobjects.GuideID, commentID valueobjects.CommentID) (*entities.Comment, error) {
	args := m.Called(ctx, guideID, commentID)
	if c := args.Get(0); c != nil {
		return c.(*entities.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CommentRepository) ListVisibleByGuide(ctx context.Context, guideID valueobjects.GuideID) ([]*entities.Comment, error) {
	args := m.Called(ctx, guideID)
	if c := args.Get(0); c != nil {
		return c.([]*entities.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

// GuideSearcher is a mock ports.GuideSearcher
type GuideSearcher struct {
	mock.Mock
}

func (m *GuideSearcher) Search(ctx context.Context, query string, limit int) ([]*entities.Guide, error) {
	args := m.Called(ctx, query, limit)
	if g := args.Get(0); g != nil {
		return g.([]*entities.Guide), args.Error(1)
	}
	return nil, args.Error(1)
}

// EventBus is a mock ports.EventBus
type EventBus struct {
	mock.Mock
}

func (m *EventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *EventBus) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}
