package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	pkgerrors "proofr-backend/pkg/errors"
)

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// respondError writes the standard error body with an explicit status
func respondError(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]string{"error": message})
}

// respondAppError maps an application error onto status and body. The error
// taxonomy decides the status; infrastructure details never leak to callers.
func respondAppError(w http.ResponseWriter, logger *zap.Logger, r *http.Request, err error) {
	status := pkgerrors.StatusOf(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	respondError(w, logger, status, pkgerrors.MessageOf(err))
}
