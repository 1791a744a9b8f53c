package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"proofr-backend/application/commands"
	"proofr-backend/application/commands/bus"
	"proofr-backend/domain/core/entities"
	"proofr-backend/pkg/auth"
	pkgerrors "proofr-backend/pkg/errors"
)

// InteractionHandler handles interaction-tracking HTTP requests
type InteractionHandler struct {
	commandBus *bus.CommandBus
	logger     *zap.Logger
}

// NewInteractionHandler creates a new interaction handler
func NewInteractionHandler(commandBus *bus.CommandBus, logger *zap.Logger) *InteractionHandler {
	return &InteractionHandler{
		commandBus: commandBus,
		logger:     logger,
	}
}

// InteractionRequest represents the request body for recording an
// interaction. Type selects the kind; Value is interpreted per kind
// (boolean for bookmark/helpful, integer for rating/progress, string
// for share medium).
type InteractionRequest struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// RecordInteraction handles POST /guides/{guideID}/interact
func (h *InteractionHandler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
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

	var req InteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	update, err := buildUpdate(guideID, userCtx.UserID, req)
	if err != nil {
		respondAppError(w, h.logger, r, err)
		return
	}

	cmd := commands.RecordInteractionCommand{Update: update}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		respondAppError(w, h.logger, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]bool{"success": true})
}

// buildUpdate translates the polymorphic payload into a typed change set
func buildUpdate(guideID, userID string, req InteractionRequest) (*entities.InteractionUpdate, error) {
	switch req.Type {
	case entities.InteractionBookmark:
		on, err := boolValue(req.Value)
		if err != nil {
			return nil, err
		}
		return entities.NewBookmarkUpdate(guideID, userID, on), nil
	case entities.InteractionHelpful:
		helpful, err := boolValue(req.Value)
		if err != nil {
			return nil, err
		}
		return entities.NewHelpfulUpdate(guideID, userID, helpful), nil
	case entities.InteractionRating:
		rating, err := intValue(req.Value)
		if err != nil {
			return nil, err
		}
		return entities.NewRatingUpdate(guideID, userID, rating)
	case entities.InteractionShare:
		return entities.NewShareUpdate(guideID, userID, stringValue(req.Value)), nil
	case entities.InteractionProgress:
		progress, err := intValue(req.Value)
		if err != nil {
			return nil, err
		}
		return entities.NewProgressUpdate(guideID, userID, progress), nil
	default:
		return nil, pkgerrors.NewValidationError("invalid interaction type")
	}
}

// boolValue decodes an optional boolean value. An omitted value means
// true, matching the tap-to-bookmark client behavior.
func boolValue(raw json.RawMessage) (bool, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return true, nil
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, pkgerrors.NewValidationError("value must be a boolean")
	}
	return v, nil
}

// intValue decodes a required integer value
func intValue(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, pkgerrors.NewValidationError("value must be an integer")
	}
	var v int
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, pkgerrors.NewValidationError("value must be an integer")
	}
	return v, nil
}

// stringValue decodes an optional string value; anything else reads as empty
func stringValue(raw json.RawMessage) string {
	var v string
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return ""
	}
	return v
}
