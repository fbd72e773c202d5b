package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vidshelf/backend/internal/catalog"
	"github.com/vidshelf/backend/internal/logging"
	"github.com/vidshelf/backend/internal/models"
)

const (
	maxCategoryNameLen        = 100
	maxCategoryDescriptionLen = 500
)

// CategoryHandler implements the category CRUD endpoints.
type CategoryHandler struct {
	Categories CategoryStore
	Limiter    RateLimiter
}

type categoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func toCategoryResponse(category models.Category) categoryResponse {
	return categoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	}
}

// List handles GET /api/v1/categories.
func (h CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := h.Categories.List(ctx)
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, toCategoryResponse(category))
	}
	respondJSON(ctx, w, http.StatusOK, out)
}

// Get handles GET /api/v1/categories/{id}.
func (h CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	category, err := h.Categories.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toCategoryResponse(category))
}

// Create handles POST /api/v1/categories.
func (h CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if !allowRequest(h.Limiter, r, "categories:write") {
		respondJSON(ctx, w, http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
		return
	}

	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid category payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	violations := map[string]string{}
	validateCategoryName(violations, &req.Name, true)
	validateCategoryDescription(violations, &req.Description)
	if len(violations) > 0 {
		respondValidationFailure(ctx, w, violations)
		return
	}

	category, err := h.Categories.Create(ctx, catalog.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, toCategoryResponse(category))
}

// Update handles PUT /api/v1/categories/{id}.
func (h CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if !allowRequest(h.Limiter, r, "categories:write") {
		respondJSON(ctx, w, http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
		return
	}

	var req updateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid category payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	violations := map[string]string{}
	validateCategoryName(violations, req.Name, false)
	validateCategoryDescription(violations, req.Description)
	if len(violations) > 0 {
		respondValidationFailure(ctx, w, violations)
		return
	}

	category, err := h.Categories.Update(ctx, mux.Vars(r)["id"], catalog.CategoryPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toCategoryResponse(category))
}

// Delete handles DELETE /api/v1/categories/{id}. Videos owned by the category
// are deleted with it.
func (h CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !allowRequest(h.Limiter, r, "categories:write") {
		respondJSON(ctx, w, http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
		return
	}

	if err := h.Categories.Delete(ctx, mux.Vars(r)["id"]); err != nil {
		respondStoreError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func validateCategoryName(violations map[string]string, name *string, required bool) {
	if name == nil {
		if required {
			violations["name"] = "name is required"
		}
		return
	}
	if required && *name == "" {
		violations["name"] = "name is required"
		return
	}
	if len(*name) > maxCategoryNameLen {
		violations["name"] = "name must be at most 100 characters"
	}
}

func validateCategoryDescription(violations map[string]string, description *string) {
	if description != nil && len(*description) > maxCategoryDescriptionLen {
		violations["description"] = "description must be at most 500 characters"
	}
}
