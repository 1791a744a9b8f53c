package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"proofr-backend/application/commands"
	"proofr-backend/application/commands/bus"
	"proofr-backend/application/queries"
	querybus "proofr-backend/application/queries/bus"
	"proofr-backend/pkg/auth"
	"proofr-backend/pkg/utils"
)

// CommentHandler handles comment-thread HTTP requests
type CommentHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *CommentHandler {
	return &CommentHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// CreateCommentRequest represents the request body for posting a comment
type CreateCommentRequest struct {
	Content         string  `json:"content" validate:"required,max=5000"`
	ParentCommentID *string `json:"parent_comment_id,omitempty" validate:"omitempty,uuid"`
}

// ListComments handles GET /guides/{guideID}/comments
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	guideID := chi.URLParam(r, "guideID")
	if _, err := uuid.Parse(guideID); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid guide ID format")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListCommentsQuery{GuideID: guideID})
	if err != nil {
		respondAppError(w, h.logger, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// CreateComment handles POST /guides/{guideID}/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	guideID := chi.URLParam(r, "guideID")
	if _, err := uuid.Parse(guideID); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid guide ID format")
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	commentID := uuid.New().String()

	cmd := commands.CreateCommentCommand{
		CommentID:       commentID,
		GuideID:         guideID,
		AuthorID:        userCtx.UserID,
		AuthorEmail:     userCtx.Email,
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		respondAppError(w, h.logger, r, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetCommentQuery{
		GuideID:   guideID,
		CommentID: commentID,
	})
	if err != nil {
		respondAppError(w, h.logger, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, result)
}
