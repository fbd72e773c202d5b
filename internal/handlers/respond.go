package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vidshelf/backend/internal/logging"
	"github.com/vidshelf/backend/internal/repositories"
)

// validationErrorResponse reports per-field constraint violations.
type validationErrorResponse struct {
	Error      string            `json:"error"`
	Violations map[string]string `json:"violations"`
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(ctx).Error("encode response body", "status", status, "error", err)
		return
	}

	logger := logging.FromContext(ctx)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", "status", status, "response", payload)
	case status >= http.StatusBadRequest:
		logger.Warn("request returned client error", "status", status, "response", payload)
	}
}

// respondStoreError maps typed store failures onto status codes: missing
// records are 404, uniqueness collisions 409, everything else 500.
func respondStoreError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, repositories.ErrConflict):
		respondJSON(ctx, w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		logging.FromContext(ctx).Error("store operation failed", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func respondValidationFailure(ctx context.Context, w http.ResponseWriter, violations map[string]string) {
	respondJSON(ctx, w, http.StatusBadRequest, validationErrorResponse{
		Error:      "validation failed",
		Violations: violations,
	})
}
