package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"proofr-backend/domain/core/entities"
	"proofr-backend/domain/core/valueobjects"
	pkgerrors "proofr-backend/pkg/errors"
	"proofr-backend/tests/mocks"
)

func storedGuide(t *testing.T, authorID string) *entities.Guide {
	t.Helper()
	guide, err := entities.NewGuide(authorID, entities.GuideDraft{
		Title:       "Interview Prep Basics",
		Description: "What to expect from alumni interviews",
		Category:    "interviews",
		Content:     "Research the school. Prepare questions. Relax.",
	})
	require.NoError(t, err)
	guide.MarkEventsAsCommitted()
	return guide
}

func TestUpdateGuideHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("author update bumps the version by one", func(t *testing.T) {
		guide := storedGuide(t, "author-1")
		guideRepo := new(mocks.GuideRepository)
		eventBus := new(mocks.EventBus)
		guideRepo.On("GetByID", mock.Anything, mock.Anything).Return(guide, nil)
		guideRepo.On("Update", mock.Anything, guide).Return(nil)
		eventBus.On("PublishBatch", mock.Anything, mock.Anything).Return(nil)

		handler := NewUpdateGuideHandler(guideRepo, eventBus, zap.NewNop())

		title := "Interview Prep, Revised"
		updated, err := handler.Handle(ctx, UpdateGuideCommand{
			GuideID: guide.ID().String(),
			UserID:  "author-1",
			Title:   &title,
		})
		require.NoError(t, err)

		assert.Equal(t, 2, updated.Version())
		assert.Equal(t, "Interview Prep, Revised", updated.Title())
		assert.NotNil(t, updated.LastMajorUpdate())
		guideRepo.AssertExpectations(t)
	})

	t.Run("non-author is forbidden", func(t *testing.T) {
		guide := storedGuide(t, "author-1")
		guideRepo := new(mocks.GuideRepository)
		eventBus := new(mocks.EventBus)
		guideRepo.On("GetByID", mock.Anything, mock.Anything).Return(guide, nil)

		handler := NewUpdateGuideHandler(guideRepo, eventBus, zap.NewNop())

		title := "Hijacked"
		_, err := handler.Handle(ctx, UpdateGuideCommand{
			GuideID: guide.ID().String(),
			UserID:  "someone-else",
			Title:   &title,
		})
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeForbidden))
		guideRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing guide propagates not found", func(t *testing.T) {
		guideRepo := new(mocks.GuideRepository)
		eventBus := new(mocks.EventBus)
		guideRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, pkgerrors.NewNotFoundError("guide"))

		handler := NewUpdateGuideHandler(guideRepo, eventBus, zap.NewNop())

		_, err := handler.Handle(ctx, UpdateGuideCommand{
			GuideID: valueobjects.NewGuideID().String(),
			UserID:  "author-1",
		})
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeNotFound))
	})
}

func TestDeleteGuideHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("author delete removes the guide", func(t *testing.T) {
		guide := storedGuide(t, "author-1")
		guideRepo := new(mocks.GuideRepository)
		eventBus := new(mocks.EventBus)
		guideRepo.On("GetByID", mock.Anything, mock.Anything).Return(guide, nil)
		guideRepo.On("Delete", mock.Anything, guide.ID()).Return(nil)
		eventBus.On("Publish", mock.Anything, mock.Anything).Return(nil)

		handler := NewDeleteGuideHandler(guideRepo, eventBus, zap.NewNop())

		err := handler.Handle(ctx, DeleteGuideCommand{
			GuideID: guide.ID().String(),
			UserID:  "author-1",
		})
		require.NoError(t, err)
		guideRepo.AssertExpectations(t)
		eventBus.AssertExpectations(t)
	})

	t.Run("non-author is forbidden", func(t *testing.T) {
		guide := storedGuide(t, "author-1")
		guideRepo := new(mocks.GuideRepository)
		eventBus := new(mocks.EventBus)
		guideRepo.On("GetByID", mock.Anything, mock.Anything).Return(guide, nil)

		handler := NewDeleteGuideHandler(guideRepo, eventBus, zap.NewNop())

		err := handler.Handle(ctx, DeleteGuideCommand{
			GuideID: guide.ID().String(),
			UserID:  "someone-else",
		})
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeForbidden))
		guideRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
