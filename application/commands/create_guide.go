package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"proofr-backend/application/ports"
	"proofr-backend/domain/core/entities"
	"proofr-backend/domain/core/valueobjects"
)

// CreateGuideCommand represents the command to create a new guide
type CreateGuideCommand struct {
	GuideID         string   `json:"guide_id" validate:"required,uuid"`
	AuthorID        string   `json:"author_id" validate:"required"`
	Title           string   `json:"title" validate:"required,max=200"`
	Description     string   `json:"description" validate:"required,max=500"`
	Category        string   `json:"category" validate:"required"`
	Difficulty      string   `json:"difficulty"`
	Content         string   `json:"content" validate:"required"`
	Tags            []string `json:"tags"`
	MetaDescription string   `json:"meta_description"`
}

// Validate validates the command
func (cmd CreateGuideCommand) Validate() error {
	if cmd.GuideID == "" {
		return errors.New("guide ID is required")
	}
	if cmd.AuthorID == "" {
		return errors.New("author ID is required")
	}
	return nil
}

// CreateGuideHandler handles the CreateGuideCommand
type CreateGuideHandler struct {
	guideRepo ports.GuideRepository
	eventBus  ports.EventBus
	logger    *zap.Logger
}

// NewCreateGuideHandler creates a new handler instance
func NewCreateGuideHandler(
	guideRepo ports.GuideRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *CreateGuideHandler {
	return &CreateGuideHandler{
		guideRepo: guideRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle executes the create guide command
func (h *CreateGuideHandler) Handle(ctx context.Context, cmd CreateGuideCommand) (*entities.Guide, error) {
	guideID, err := valueobjects.NewGuideIDFromString(cmd.GuideID)
	if err != nil {
		return nil, err
	}

	guide, err := entities.NewGuideWithID(guideID, cmd.AuthorID, entities.GuideDraft{
		Title:           cmd.Title,
		Description:     cmd.Description,
		Category:        cmd.Category,
		Difficulty:      cmd.Difficulty,
		Content:         cmd.Content,
		Tags:            cmd.Tags,
		MetaDescription: cmd.MetaDescription,
	})
	if err != nil {
		return nil, err
	}

	if err := h.guideRepo.Save(ctx, guide); err != nil {
		return nil, err
	}

	// Event delivery is best-effort; the review queue reconciles misses
	if err := h.eventBus.PublishBatch(ctx, guide.GetUncommittedEvents()); err != nil {
		h.logger.Warn("failed to publish guide events",
			zap.String("guideID", guide.ID().String()),
			zap.Error(err),
		)
	}
	guide.MarkEventsAsCommitted()

	h.logger.Info("guide created",
		zap.String("guideID", guide.ID().String()),
		zap.String("authorID", cmd.AuthorID),
		zap.String("category", guide.Category()),
	)

	return guide, nil
}
