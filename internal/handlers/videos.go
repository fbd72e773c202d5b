package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/vidshelf/backend/internal/catalog"
	"github.com/vidshelf/backend/internal/logging"
	"github.com/vidshelf/backend/internal/models"
	"github.com/vidshelf/backend/internal/videos"
)

const (
	maxVideoTitleLen       = 200
	maxVideoDescriptionLen = 1000
)

// VideoHandler implements the video CRUD, search and metadata endpoints.
type VideoHandler struct {
	Videos   VideoStore
	Metadata VideoMetadataProvider
	Limiter  RateLimiter
}

type videoResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	URL             string    `json:"url"`
	DurationSeconds *int      `json:"durationSeconds"`
	VideoType       string    `json:"videoType"`
	VideoID         *string   `json:"videoId"`
	CategoryID      *string   `json:"categoryId"`
	CategoryName    *string   `json:"categoryName"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type createVideoRequest struct {
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	URL             string  `json:"url"`
	DurationSeconds *int    `json:"durationSeconds"`
	CategoryID      *string `json:"categoryId"`
}

type updateVideoRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	URL             *string `json:"url"`
	DurationSeconds *int    `json:"durationSeconds"`
	CategoryID      *string `json:"categoryId"`
}

type metadataResponse struct {
	VideoType       string `json:"videoType"`
	VideoID         string `json:"videoId"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationSeconds int    `json:"durationSeconds"`
}

func toVideoResponse(video models.Video) videoResponse {
	return videoResponse{
		ID:              video.ID,
		Title:           video.Title,
		Description:     video.Description,
		URL:             video.URL,
		DurationSeconds: video.DurationSeconds,
		VideoType:       string(video.VideoType),
		VideoID:         video.VideoID,
		CategoryID:      video.CategoryID,
		CategoryName:    video.CategoryName,
		CreatedAt:       video.CreatedAt,
		UpdatedAt:       video.UpdatedAt,
	}
}

func toVideoResponses(entries []models.Video) []videoResponse {
	out := make([]videoResponse, 0, len(entries))
	for _, video := range entries {
		out = append(out, toVideoResponse(video))
	}
	return out
}

// List handles GET /api/v1/videos.
func (h VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := h.Videos.List(ctx)
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toVideoResponses(entries))
}

// Get handles GET /api/v1/videos/{id}.
func (h VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	video, err := h.Videos.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toVideoResponse(video))
}

// ListByCategory handles GET /api/v1/videos/category/{categoryId}. A missing
// category yields 404 rather than an empty list.
func (h VideoHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := h.Videos.ListByCategory(ctx, mux.Vars(r)["categoryId"])
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toVideoResponses(entries))
}

// Search handles GET /api/v1/videos/search?title=.
func (h VideoHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	title := r.URL.Query().Get("title")
	if title == "" {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "title query parameter is required"})
		return
	}

	entries, err := h.Videos.SearchByTitle(ctx, title)
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toVideoResponses(entries))
}

// LookupMetadata handles GET /api/v1/videos/metadata?url=. It classifies the
// URL and, when an id can be extracted, asks the provider for details.
func (h VideoHandler) LookupMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	url := r.URL.Query().Get("url")
	if url == "" {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "url query parameter is required"})
		return
	}

	videoType, videoID := videos.Classify(url)
	if videoID == "" || videoType != models.VideoTypeYouTube {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "url is not a recognized provider video url"})
		return
	}

	if h.Metadata == nil {
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "metadata provider unavailable"})
		return
	}

	details, err := h.Metadata.Lookup(ctx, videoID)
	if err != nil {
		if errors.Is(err, videos.ErrNoResult) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "no metadata found for video"})
			return
		}
		logger.Warn("metadata lookup failed", "videoId", videoID, "error", err)
		respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "metadata unavailable for video"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, metadataResponse{
		VideoType:       string(videoType),
		VideoID:         videoID,
		Title:           details.Title,
		Description:     details.Description,
		DurationSeconds: details.DurationSeconds,
	})
}

// Create handles POST /api/v1/videos. Title may be blank so the enrichment
// step can fill it from the provider.
func (h VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if !allowRequest(h.Limiter, r, "videos:write") {
		respondJSON(ctx, w, http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
		return
	}

	var req createVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid video payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	violations := map[string]string{}
	validateVideoTitle(violations, &req.Title)
	validateVideoDescription(violations, req.Description)
	validateVideoDuration(violations, req.DurationSeconds)
	if req.URL == "" {
		violations["url"] = "url is required"
	}
	if len(violations) > 0 {
		respondValidationFailure(ctx, w, violations)
		return
	}

	video, err := h.Videos.Create(ctx, catalog.VideoInput{
		Title:           req.Title,
		Description:     req.Description,
		URL:             req.URL,
		DurationSeconds: req.DurationSeconds,
		CategoryID:      req.CategoryID,
	})
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, toVideoResponse(video))
}

// Update handles PUT /api/v1/videos/{id} as a partial update; only supplied
// fields change.
func (h VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if !allowRequest(h.Limiter, r, "videos:write") {
		respondJSON(ctx, w, http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
		return
	}

	var req updateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid video payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	violations := map[string]string{}
	validateVideoTitle(violations, req.Title)
	validateVideoDescription(violations, req.Description)
	validateVideoDuration(violations, req.DurationSeconds)
	if req.URL != nil && *req.URL == "" {
		violations["url"] = "url must not be empty"
	}
	if len(violations) > 0 {
		respondValidationFailure(ctx, w, violations)
		return
	}

	video, err := h.Videos.Update(ctx, mux.Vars(r)["id"], catalog.VideoPatch{
		Title:           req.Title,
		Description:     req.Description,
		URL:             req.URL,
		DurationSeconds: req.DurationSeconds,
		CategoryID:      req.CategoryID,
	})
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toVideoResponse(video))
}

// Delete handles DELETE /api/v1/videos/{id}.
func (h VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !allowRequest(h.Limiter, r, "videos:write") {
		respondJSON(ctx, w, http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
		return
	}

	if err := h.Videos.Delete(ctx, mux.Vars(r)["id"]); err != nil {
		respondStoreError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func validateVideoTitle(violations map[string]string, title *string) {
	if title != nil && len(*title) > maxVideoTitleLen {
		violations["title"] = "title must be at most 200 characters"
	}
}

func validateVideoDescription(violations map[string]string, description *string) {
	if description != nil && len(*description) > maxVideoDescriptionLen {
		violations["description"] = "description must be at most 1000 characters"
	}
}

func validateVideoDuration(violations map[string]string, duration *int) {
	if duration != nil && *duration < 0 {
		violations["durationSeconds"] = "durationSeconds must not be negative"
	}
}
