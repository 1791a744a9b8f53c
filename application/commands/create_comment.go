package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"proofr-backend/application/ports"
	"proofr-backend/domain/core/entities"
	"proofr-backend/domain/core/valueobjects"
	domainevents "proofr-backend/domain/events"
	"proofr-backend/domain/services"
	pkgerrors "proofr-backend/pkg/errors"
)

// CreateCommentCommand represents the command to post a comment or reply
type CreateCommentCommand struct {
	CommentID       string  `json:"comment_id" validate:"required,uuid"`
	GuideID         string  `json:"guide_id" validate:"required,uuid"`
	AuthorID        string  `json:"author_id" validate:"required"`
	AuthorEmail     string  `json:"author_email"`
	Content         string  `json:"content" validate:"required"`
	ParentCommentID *string `json:"parent_comment_id,omitempty"`
}

// Validate validates the command
func (cmd CreateCommentCommand) Validate() error {
	if cmd.CommentID == "" {
		return errors.New("comment ID is required")
	}
	if cmd.GuideID == "" {
		return errors.New("guide ID is required")
	}
	if cmd.AuthorID == "" {
		return errors.New("author ID is required")
	}
	return nil
}

// CreateCommentHandler handles the CreateCommentCommand
type CreateCommentHandler struct {
	guideRepo   ports.GuideRepository
	commentRepo ports.CommentRepository
	screener    *services.ContentScreener
	eventBus    ports.EventBus
	logger      *zap.Logger
}

// NewCreateCommentHandler creates a new handler instance
func NewCreateCommentHandler(
	guideRepo ports.GuideRepository,
	commentRepo ports.CommentRepository,
	screener *services.ContentScreener,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *CreateCommentHandler {
	return &CreateCommentHandler{
		guideRepo:   guideRepo,
		commentRepo: commentRepo,
		screener:    screener,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Handle executes the create comment command. The guide must exist and the
// content must pass screening. Replies to replies attach to the top-level
// ancestor so threads stay two levels deep.
func (h *CreateCommentHandler) Handle(ctx context.Context, cmd CreateCommentCommand) (*entities.Comment, error) {
	guideID, err := valueobjects.NewGuideIDFromString(cmd.GuideID)
	if err != nil {
		return nil, err
	}

	if _, err := h.guideRepo.GetByID(ctx, guideID); err != nil {
		return nil, err
	}

	if err := h.screener.Screen(cmd.Content); err != nil {
		return nil, err
	}

	parentID := cmd.ParentCommentID
	if parentID != nil && *parentID != "" {
		parent, err := h.resolveParent(ctx, guideID, *parentID)
		if err != nil {
			return nil, err
		}
		top := parent.ID.String()
		if parent.IsReply() {
			top = *parent.ParentCommentID
		}
		parentID = &top
	} else {
		parentID = nil
	}

	comment, err := entities.NewComment(guideID, entities.CommentAuthor{
		ID:    cmd.AuthorID,
		Email: cmd.AuthorEmail,
	}, cmd.Content, parentID)
	if err != nil {
		return nil, err
	}

	commentID, err := valueobjects.NewCommentIDFromString(cmd.CommentID)
	if err != nil {
		return nil, err
	}
	comment.ID = commentID

	if err := h.commentRepo.Save(ctx, comment); err != nil {
		return nil, err
	}

	event := domainevents.NewCommentCreated(
		comment.ID.String(),
		cmd.GuideID,
		cmd.AuthorID,
		comment.IsQuestion,
		comment.IsReply(),
	)
	if err := h.eventBus.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish comment event",
			zap.String("commentID", comment.ID.String()),
			zap.Error(err),
		)
	}

	h.logger.Info("comment created",
		zap.String("commentID", comment.ID.String()),
		zap.String("guideID", cmd.GuideID),
		zap.Bool("isReply", comment.IsReply()),
	)

	return comment, nil
}

func (h *CreateCommentHandler) resolveParent(ctx context.Context, guideID valueobjects.GuideID, parentID string) (*entities.Comment, error) {
	id, err := valueobjects.NewCommentIDFromString(parentID)
	if err != nil {
		return nil, pkgerrors.NewNotFoundError("parent comment")
	}
	parent, err := h.commentRepo.GetByID(ctx, guideID, id)
	if err != nil {
		return nil, err
	}
	return parent, nil
}
