package queries

import (
	"context"
	"errors"
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

func TestGetGuideHandler(t *testing.T) {
	ctx := context.Background()
	guide := publishedGuide(guideSpec{title: "a guide", viewCount: 7})
	guideID := guide.ID()

	t.Run("anonymous reads do not count views", func(t *testing.T) {
		guideRepo := new(mocks.GuideRepository)
		interactionRepo := new(mocks.InteractionRepository)
		guideRepo.On("GetByID", mock.Anything, guideID).Return(guide, nil)

		handler := NewGetGuideHandler(guideRepo, interactionRepo, zap.NewNop())
		result, err := handler.Handle(ctx, GetGuideQuery{GuideID: guideID.String()})
		require.NoError(t, err)

		assert.Equal(t, 7, result.Guide.ViewCount)
		assert.Nil(t, result.Interaction)
		guideRepo.AssertNotCalled(t, "IncrementViewCount", mock.Anything, mock.Anything, mock.Anything)
		interactionRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("identified viewers count a view and get their interaction", func(t *testing.T) {
		stored := &entities.Interaction{GuideID: guideID.String(), UserID: "u1", Bookmarked: true}
		guideRepo := new(mocks.GuideRepository)
		interactionRepo := new(mocks.InteractionRepository)
		guideRepo.On("GetByID", mock.Anything, guideID).Return(guide, nil)
		guideRepo.On("IncrementViewCount", mock.Anything, guideID, "u1").Return(nil)
		interactionRepo.On("Get", mock.Anything, guideID, "u1").Return(stored, nil)

		handler := NewGetGuideHandler(guideRepo, interactionRepo, zap.NewNop())
		result, err := handler.Handle(ctx, GetGuideQuery{GuideID: guideID.String(), ViewerID: "u1"})
		require.NoError(t, err)

		assert.Equal(t, 8, result.Guide.ViewCount)
		require.NotNil(t, result.Interaction)
		assert.True(t, result.Interaction.Bookmarked)
	})

	t.Run("viewers without an interaction record get none", func(t *testing.T) {
		guideRepo := new(mocks.GuideRepository)
		interactionRepo := new(mocks.InteractionRepository)
		guideRepo.On("GetByID", mock.Anything, guideID).Return(guide, nil)
		guideRepo.On("IncrementViewCount", mock.Anything, guideID, "u2").Return(nil)
		interactionRepo.On("Get", mock.Anything, guideID, "u2").Return(nil, nil)

		handler := NewGetGuideHandler(guideRepo, interactionRepo, zap.NewNop())
		result, err := handler.Handle(ctx, GetGuideQuery{GuideID: guideID.String(), ViewerID: "u2"})
		require.NoError(t, err)
		assert.Nil(t, result.Interaction)
	})

	t.Run("view counting failures never fail the read", func(t *testing.T) {
		guideRepo := new(mocks.GuideRepository)
		interactionRepo := new(mocks.InteractionRepository)
		guideRepo.On("GetByID", mock.Anything, guideID).Return(guide, nil)
		guideRepo.On("IncrementViewCount", mock.Anything, guideID, "u1").Return(errors.New("throttled"))
		interactionRepo.On("Get", mock.Anything, guideID, "u1").Return(nil, nil)

		handler := NewGetGuideHandler(guideRepo, interactionRepo, zap.NewNop())
		result, err := handler.Handle(ctx, GetGuideQuery{GuideID: guideID.String(), ViewerID: "u1"})
		require.NoError(t, err)
		assert.Equal(t, 7, result.Guide.ViewCount)
	})

	t.Run("missing guide propagates not found", func(t *testing.T) {
		guideRepo := new(mocks.GuideRepository)
		interactionRepo := new(mocks.InteractionRepository)
		guideRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, pkgerrors.NewNotFoundError("guide"))

		handler := NewGetGuideHandler(guideRepo, interactionRepo, zap.NewNop())
		_, err := handler.Handle(ctx, GetGuideQuery{GuideID: valueobjects.NewGuideID().String()})
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeNotFound))
	})
}
