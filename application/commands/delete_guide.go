package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"proofr-backend/application/ports"
	"proofr-backend/domain/core/valueobjects"
	"proofr-backend/domain/events"
	pkgerrors "proofr-backend/pkg/errors"
)

// DeleteGuideCommand represents the command to permanently remove a guide
type DeleteGuideCommand struct {
	GuideID string `json:"guide_id" validate:"required,uuid"`
	UserID  string `json:"user_id" validate:"required"`
}

// Validate validates the command
func (cmd DeleteGuideCommand) Validate() error {
	if cmd.GuideID == "" {
		return errors.New("guide ID is required")
	}
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// DeleteGuideHandler handles the DeleteGuideCommand
type DeleteGuideHandler struct {
	guideRepo ports.GuideRepository
	eventBus  ports.EventBus
	logger    *zap.Logger
}

// NewDeleteGuideHandler creates a new handler instance
func NewDeleteGuideHandler(
	guideRepo ports.GuideRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *DeleteGuideHandler {
	return &DeleteGuideHandler{
		guideRepo: guideRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle executes the delete guide command. Only the author may delete.
func (h *DeleteGuideHandler) Handle(ctx context.Context, cmd DeleteGuideCommand) error {
	guideID, err := valueobjects.NewGuideIDFromString(cmd.GuideID)
	if err != nil {
		return err
	}

	guide, err := h.guideRepo.GetByID(ctx, guideID)
	if err != nil {
		return err
	}

	if !guide.IsAuthoredBy(cmd.UserID) {
		return pkgerrors.NewForbiddenError("only the author can delete this guide")
	}

	if err := h.guideRepo.Delete(ctx, guideID); err != nil {
		return err
	}

	if err := h.eventBus.Publish(ctx, events.NewGuideDeleted(guideID.String(), cmd.UserID)); err != nil {
		h.logger.Warn("failed to publish guide deleted event",
			zap.String("guideID", guideID.String()),
			zap.Error(err),
		)
	}

	h.logger.Info("guide deleted",
		zap.String("guideID", guideID.String()),
		zap.String("userID", cmd.UserID),
	)

	return nil
}
