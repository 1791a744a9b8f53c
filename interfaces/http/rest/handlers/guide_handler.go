package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

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

// GuideHandler handles guide-related HTTP requests
type GuideHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewGuideHandler creates a new guide handler
func NewGuideHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *GuideHandler {
	return &GuideHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// CreateGuideRequest represents the request body for creating a guide
type CreateGuideRequest struct {
	Title           string   `json:"title" validate:"required,max=200"`
	Description     string   `json:"description" validate:"required,max=500"`
	Category        string   `json:"category" validate:"required"`
	Difficulty      string   `json:"difficulty,omitempty"`
	Content         string   `json:"content" validate:"required"`
	Tags            []string `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=50"`
	MetaDescription string   `json:"meta_description,omitempty" validate:"omitempty,max=200"`
}

// UpdateGuideRequest represents the request body for updating a guide
type UpdateGuideRequest struct {
	Title           *string   `json:"title,omitempty" validate:"omitempty,max=200"`
	Description     *string   `json:"description,omitempty" validate:"omitempty,max=500"`
	Category        *string   `json:"category,omitempty"`
	Difficulty      *string   `json:"difficulty,omitempty"`
	Content         *string   `json:"content,omitempty"`
	Tags            *[]string `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=50"`
	MetaDescription *string   `json:"meta_description,omitempty" validate:"omitempty,max=200"`
}

// CreateGuide handles POST /guides
func (h *GuideHandler) CreateGuide(w http.ResponseWriter, r *http.Request) {
	// Identity first: an unauthenticated caller gets 401 regardless of body
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateGuideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	guideID := uuid.New().String()

	cmd := commands.CreateGuideCommand{
		GuideID:         guideID,
		AuthorID:        userCtx.UserID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Difficulty:      req.Difficulty,
		Content:         req.Content,
		Tags:            req.Tags,
		MetaDescription: req.MetaDescription,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		respondAppError(w, h.logger, r, err)
		return
	}

	// Read the created guide back so the response carries the full entity
	result, err := h.queryBus.Ask(r.Context(), queries.GetGuideQuery{GuideID: guideID})
	if err != nil {
		respondAppError(w, h.logger, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, result)
}

// GetGuide handles GET /guides/{guideID}
func (h *GuideHandler) GetGuide(w http.ResponseWriter, r *http.Request) {
	guideID := chi.URLParam(r, "guideID")
	if _, err := uuid.Parse(guideID); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid guide ID format")
		return
	}

	query := queries.GetGuideQuery{
		GuideID:  guideID,
		ViewerID: auth.CallerID(r.Context()),
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		respondAppError(w, h.logger, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// ListGuides handles GET /guides
func (h *GuideHandler) ListGuides(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	limit, _ := strconv.Atoi(params.Get("limit"))
	offset, _ := strconv.Atoi(params.Get("offset"))

	// "sort" is the documented parameter; "sort_by" is kept for older clients
	sortBy := params.Get("sort")
	if sortBy == "" {
		sortBy = params.Get("sort_by")
	}

	query := queries.ListGuidesQuery{
		Query:      params.Get("q"),
		Category:   params.Get("category"),
		Difficulty: params.Get("difficulty"),
		SortBy:     sortBy,
		Limit:      limit,
		Offset:     offset,
	}

	if err := query.Validate(); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		respondAppError(w, h.logger, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// UpdateGuide handles PUT /guides/{guideID}
func (h *GuideHandler) UpdateGuide(w http.ResponseWriter, r *http.Request) {
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

	var req UpdateGuideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	cmd := commands.UpdateGuideCommand{
		GuideID:         guideID,
		UserID:          userCtx.UserID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Difficulty:      req.Difficulty,
		Content:         req.Content,
		Tags:            req.Tags,
		MetaDescription: req.MetaDescription,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		respondAppError(w, h.logger, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]bool{"success": true})
}

// DeleteGuide handles DELETE /guides/{guideID}
func (h *GuideHandler) DeleteGuide(w http.ResponseWriter, r *http.Request) {
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

	cmd := commands.DeleteGuideCommand{
		GuideID: guideID,
		UserID:  userCtx.UserID,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		respondAppError(w, h.logger, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]bool{"success": true})
}
