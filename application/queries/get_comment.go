package queries

import (
	"context"
	"errors"

	"proofr-backend/application/ports"
	"proofr-backend/domain/core/entities"
	"proofr-backend/domain/core/valueobjects"
	pkgerrors "proofr-backend/pkg/errors"
)

// GetCommentQuery fetches one visible comment on a guide
type GetCommentQuery struct {
	GuideID   string `json:"guide_id" validate:"required,uuid"`
	CommentID string `json:"comment_id" validate:"required,uuid"`
}

// Validate validates the query
func (q GetCommentQuery) Validate() error {
	if q.GuideID == "" {
		return errors.New("guide ID is required")
	}
	if q.CommentID == "" {
		return errors.New("comment ID is required")
	}
	return nil
}

// GetCommentHandler handles the GetCommentQuery
type GetCommentHandler struct {
	commentRepo ports.CommentRepository
}

// NewGetCommentHandler creates a new handler instance
func NewGetCommentHandler(commentRepo ports.CommentRepository) *GetCommentHandler {
	return &GetCommentHandler{commentRepo: commentRepo}
}

// Handle executes the get comment query. Hidden comments are not exposed.
func (h *GetCommentHandler) Handle(ctx context.Context, q GetCommentQuery) (*entities.Comment, error) {
	guideID, err := valueobjects.NewGuideIDFromString(q.GuideID)
	if err != nil {
		return nil, err
	}
	commentID, err := valueobjects.NewCommentIDFromString(q.CommentID)
	if err != nil {
		return nil, err
	}

	comment, err := h.commentRepo.GetByID(ctx, guideID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.Hidden {
		return nil, pkgerrors.NewNotFoundError("comment")
	}

	return comment, nil
}
