package queries

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"proofr-backend/application/ports"
	"proofr-backend/domain/core/entities"
	"proofr-backend/domain/core/valueobjects"
)

// GetGuideQuery fetches one guide. ViewerID is empty for anonymous and
// internal reads; a non-empty viewer records a view and gets their own
// interaction record alongside the guide.
type GetGuideQuery struct {
	GuideID  string `json:"guide_id" validate:"required,uuid"`
	ViewerID string `json:"viewer_id,omitempty"`
}

// Validate validates the query
func (q GetGuideQuery) Validate() error {
	if q.GuideID == "" {
		return errors.New("guide ID is required")
	}
	return nil
}

// GetGuideResult is the guide detail payload
type GetGuideResult struct {
	Guide       *GuideView            `json:"guide"`
	Interaction *entities.Interaction `json:"interaction,omitempty"`
}

// GetGuideHandler handles the GetGuideQuery
type GetGuideHandler struct {
	guideRepo       ports.GuideRepository
	interactionRepo ports.InteractionRepository
	logger          *zap.Logger
}

// NewGetGuideHandler creates a new handler instance
func NewGetGuideHandler(
	guideRepo ports.GuideRepository,
	interactionRepo ports.InteractionRepository,
	logger *zap.Logger,
) *GetGuideHandler {
	return &GetGuideHandler{
		guideRepo:       guideRepo,
		interactionRepo: interactionRepo,
		logger:          logger,
	}
}

// Handle executes the get guide query
func (h *GetGuideHandler) Handle(ctx context.Context, q GetGuideQuery) (*GetGuideResult, error) {
	guideID, err := valueobjects.NewGuideIDFromString(q.GuideID)
	if err != nil {
		return nil, err
	}

	guide, err := h.guideRepo.GetByID(ctx, guideID)
	if err != nil {
		return nil, err
	}

	result := &GetGuideResult{Guide: NewGuideView(guide)}

	if q.ViewerID != "" {
		// View counting is best-effort and must not fail the read
		if err := h.guideRepo.IncrementViewCount(ctx, guideID, q.ViewerID); err != nil {
			h.logger.Warn("failed to record view",
				zap.String("guideID", q.GuideID),
				zap.Error(err),
			)
		} else {
			result.Guide.ViewCount++
		}

		interaction, err := h.interactionRepo.Get(ctx, guideID, q.ViewerID)
		if err != nil {
			h.logger.Warn("failed to load viewer interaction",
				zap.String("guideID", q.GuideID),
				zap.Error(err),
			)
		} else {
			result.Interaction = interaction
		}
	}

	return result, nil
}
