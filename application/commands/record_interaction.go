package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"proofr-backend/application/ports"
	"proofr-backend/domain/core/entities"
	"proofr-backend/domain/core/valueobjects"
	domainevents "proofr-backend/domain/events"
)

// RecordInteractionCommand upserts one interaction kind for a (guide, user)
// pair. The update is built by the API layer from the request payload so
// invalid kinds and out-of-range ratings are rejected before dispatch.
type RecordInteractionCommand struct {
	Update *entities.InteractionUpdate
}

// Validate validates the command
func (cmd RecordInteractionCommand) Validate() error {
	if cmd.Update == nil {
		return errors.New("interaction update is required")
	}
	if cmd.Update.GuideID == "" {
		return errors.New("guide ID is required")
	}
	if cmd.Update.UserID == "" {
		return errors.New("user ID is required")
	}
	switch cmd.Update.Kind {
	case entities.InteractionBookmark, entities.InteractionHelpful,
		entities.InteractionRating, entities.InteractionShare,
		entities.InteractionProgress:
		return nil
	default:
		return errors.New("unknown interaction kind")
	}
}

// RecordInteractionHandler handles the RecordInteractionCommand
type RecordInteractionHandler struct {
	guideRepo       ports.GuideRepository
	interactionRepo ports.InteractionRepository
	eventBus        ports.EventBus
	logger          *zap.Logger
}

// NewRecordInteractionHandler creates a new handler instance
func NewRecordInteractionHandler(
	guideRepo ports.GuideRepository,
	interactionRepo ports.InteractionRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *RecordInteractionHandler {
	return &RecordInteractionHandler{
		guideRepo:       guideRepo,
		interactionRepo: interactionRepo,
		eventBus:        eventBus,
		logger:          logger,
	}
}

// Handle executes the record interaction command. The guide must exist;
// the upsert itself is a field-level merge so concurrent kinds never
// clobber each other.
func (h *RecordInteractionHandler) Handle(ctx context.Context, cmd RecordInteractionCommand) error {
	guideID, err := valueobjects.NewGuideIDFromString(cmd.Update.GuideID)
	if err != nil {
		return err
	}

	if _, err := h.guideRepo.GetByID(ctx, guideID); err != nil {
		return err
	}

	if err := h.interactionRepo.Upsert(ctx, cmd.Update); err != nil {
		return err
	}

	event := domainevents.NewInteractionRecorded(cmd.Update.GuideID, cmd.Update.UserID, cmd.Update.Kind)
	if err := h.eventBus.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish interaction event",
			zap.String("guideID", cmd.Update.GuideID),
			zap.Error(err),
		)
	}

	h.logger.Info("interaction recorded",
		zap.String("guideID", cmd.Update.GuideID),
		zap.String("userID", cmd.Update.UserID),
		zap.String("kind", cmd.Update.Kind),
	)

	return nil
}
