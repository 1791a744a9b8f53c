package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"proofr-backend/application/ports"
	"proofr-backend/domain/core/entities"
	"proofr-backend/domain/core/valueobjects"
	pkgerrors "proofr-backend/pkg/errors"
)

// UpdateGuideCommand represents the command to revise an existing guide.
// Nil fields are left untouched.
type UpdateGuideCommand struct {
	GuideID         string    `json:"guide_id" validate:"required,uuid"`
	UserID          string    `json:"user_id" validate:"required"`
	Title           *string   `json:"title,omitempty"`
	Description     *string   `json:"description,omitempty"`
	Category        *string   `json:"category,omitempty"`
	Difficulty      *string   `json:"difficulty,omitempty"`
	Content         *string   `json:"content,omitempty"`
	Tags            *[]string `json:"tags,omitempty"`
	MetaDescription *string   `json:"meta_description,omitempty"`
}

// Validate validates the command
func (cmd UpdateGuideCommand) Validate() error {
	if cmd.GuideID == "" {
		return errors.New("guide ID is required")
	}
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

func (cmd UpdateGuideCommand) patch() entities.GuidePatch {
	return entities.GuidePatch{
		Title:           cmd.Title,
		Description:     cmd.Description,
		Category:        cmd.Category,
		Difficulty:      cmd.Difficulty,
		Content:         cmd.Content,
		Tags:            cmd.Tags,
		MetaDescription: cmd.MetaDescription,
	}
}

// UpdateGuideHandler handles the UpdateGuideCommand
type UpdateGuideHandler struct {
	guideRepo ports.GuideRepository
	eventBus  ports.EventBus
	logger    *zap.Logger
}

// NewUpdateGuideHandler creates a new handler instance
func NewUpdateGuideHandler(
	guideRepo ports.GuideRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *UpdateGuideHandler {
	return &UpdateGuideHandler{
		guideRepo: guideRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle executes the update guide command. Only the author may update;
// every successful update bumps the version by one.
func (h *UpdateGuideHandler) Handle(ctx context.Context, cmd UpdateGuideCommand) (*entities.Guide, error) {
	guideID, err := valueobjects.NewGuideIDFromString(cmd.GuideID)
	if err != nil {
		return nil, err
	}

	guide, err := h.guideRepo.GetByID(ctx, guideID)
	if err != nil {
		return nil, err
	}

	if !guide.IsAuthoredBy(cmd.UserID) {
		return nil, pkgerrors.NewForbiddenError("only the author can update this guide")
	}

	if err := guide.ApplyPatch(cmd.patch()); err != nil {
		return nil, err
	}

	if err := h.guideRepo.Update(ctx, guide); err != nil {
		return nil, err
	}

	if err := h.eventBus.PublishBatch(ctx, guide.GetUncommittedEvents()); err != nil {
		h.logger.Warn("failed to publish guide events",
			zap.String("guideID", guide.ID().String()),
			zap.Error(err),
		)
	}
	guide.MarkEventsAsCommitted()

	h.logger.Info("guide updated",
		zap.String("guideID", guide.ID().String()),
		zap.Int("version", guide.Version()),
	)

	return guide, nil
}
