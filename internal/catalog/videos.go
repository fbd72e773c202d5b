package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vidshelf/backend/internal/logging"
	"github.com/vidshelf/backend/internal/models"
	"github.com/vidshelf/backend/internal/repositories"
	"github.com/vidshelf/backend/internal/videos"
)

// VideoInput carries the fields accepted when creating a video. Title may be
// blank; enrichment fills it in when the provider knows the video.
type VideoInput struct {
	Title           string
	Description     *string
	URL             string
	DurationSeconds *int
	CategoryID      *string
}

// VideoPatch carries a partial video update; nil fields are untouched. An
// explicitly empty CategoryID clears the category association.
type VideoPatch struct {
	Title           *string
	Description     *string
	URL             *string
	DurationSeconds *int
	CategoryID      *string
}

// VideoService implements the video store operations. Every persist runs the
// URL through classification so the derived provider columns can never go
// stale, and create/update attempt best-effort metadata enrichment.
type VideoService struct {
	Videos     repositories.VideoRepository
	Categories repositories.CategoryRepository
	Metadata   videos.Provider
	NowFunc    func() time.Time
}

// List returns all videos, newest first.
func (s *VideoService) List(ctx context.Context) ([]models.Video, error) {
	return s.Videos.FindAll(ctx)
}

// Get returns a single video by id.
func (s *VideoService) Get(ctx context.Context, id string) (models.Video, error) {
	video, err := s.Videos.FindByID(ctx, id)
	if err != nil {
		return models.Video{}, fmt.Errorf("video %s: %w", id, err)
	}
	return video, nil
}

// ListByCategory returns the videos attached to a category. A missing
// category is ErrNotFound rather than an empty list.
func (s *VideoService) ListByCategory(ctx context.Context, categoryID string) ([]models.Video, error) {
	exists, err := s.Categories.ExistsByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("check category %s: %w", categoryID, err)
	}
	if !exists {
		return nil, fmt.Errorf("category %s: %w", categoryID, repositories.ErrNotFound)
	}
	return s.Videos.FindByCategory(ctx, categoryID)
}

// SearchByTitle returns videos whose title contains the term, case-insensitively.
func (s *VideoService) SearchByTitle(ctx context.Context, title string) ([]models.Video, error) {
	return s.Videos.SearchByTitle(ctx, title)
}

// Create persists a new video. The URL is classified, and when it maps to a
// known provider video the service attempts enrichment: a provider title
// fills a blank supplied title, provider description and duration fill
// absent ones. Supplied values are never overridden.
func (s *VideoService) Create(ctx context.Context, input VideoInput) (models.Video, error) {
	var category *models.Category
	if input.CategoryID != nil {
		found, err := s.Categories.FindByID(ctx, *input.CategoryID)
		if err != nil {
			return models.Video{}, fmt.Errorf("category %s: %w", *input.CategoryID, err)
		}
		category = &found
	}

	details := s.fetchDetails(ctx, input.URL)

	title := input.Title
	if strings.TrimSpace(title) == "" && details != nil {
		title = details.Title
	}

	description := input.Description
	if description == nil && details != nil {
		description = &details.Description
	}

	duration := input.DurationSeconds
	if duration == nil && details != nil {
		duration = &details.DurationSeconds
	}

	now := s.now()
	video := models.Video{
		ID:              uuid.NewString(),
		Title:           title,
		Description:     description,
		URL:             input.URL,
		DurationSeconds: duration,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if category != nil {
		video.CategoryID = &category.ID
		video.CategoryName = &category.Name
	}
	applyClassification(&video)

	if err := s.Videos.Create(ctx, video); err != nil {
		return models.Video{}, fmt.Errorf("create video: %w", err)
	}

	return video, nil
}

// Update applies a partial update. Enrichment is attempted only when the URL
// is being changed; the derived provider columns are recomputed from the
// final URL regardless.
func (s *VideoService) Update(ctx context.Context, id string, patch VideoPatch) (models.Video, error) {
	video, err := s.Videos.FindByID(ctx, id)
	if err != nil {
		return models.Video{}, fmt.Errorf("video %s: %w", id, err)
	}

	// The category is looked up whenever supplied, even if it matches the
	// current association; the resolved name feeds the returned entity.
	var category *models.Category
	clearCategory := false
	if patch.CategoryID != nil {
		if *patch.CategoryID == "" {
			clearCategory = true
		} else {
			found, err := s.Categories.FindByID(ctx, *patch.CategoryID)
			if err != nil {
				return models.Video{}, fmt.Errorf("category %s: %w", *patch.CategoryID, err)
			}
			category = &found
		}
	}

	var details *videos.Details
	if patch.URL != nil && *patch.URL != video.URL {
		details = s.fetchDetails(ctx, *patch.URL)
	}

	if patch.Title != nil {
		video.Title = *patch.Title
	} else if details != nil && strings.TrimSpace(video.Title) == "" {
		video.Title = details.Title
	}

	if patch.Description != nil {
		video.Description = patch.Description
	} else if details != nil && (video.Description == nil || strings.TrimSpace(*video.Description) == "") {
		video.Description = &details.Description
	}

	if patch.URL != nil {
		video.URL = *patch.URL
	}

	if patch.DurationSeconds != nil {
		video.DurationSeconds = patch.DurationSeconds
	} else if details != nil && video.DurationSeconds == nil {
		video.DurationSeconds = &details.DurationSeconds
	}

	if clearCategory {
		video.CategoryID = nil
		video.CategoryName = nil
	} else if category != nil {
		video.CategoryID = &category.ID
		video.CategoryName = &category.Name
	}

	video.UpdatedAt = s.now()
	applyClassification(&video)

	if err := s.Videos.Update(ctx, video); err != nil {
		return models.Video{}, fmt.Errorf("update video %s: %w", id, err)
	}

	return video, nil
}

// Delete removes a video.
func (s *VideoService) Delete(ctx context.Context, id string) error {
	if err := s.Videos.Delete(ctx, id); err != nil {
		return fmt.Errorf("video %s: %w", id, err)
	}
	return nil
}

// fetchDetails is the best-effort enrichment step: it classifies the URL and,
// for YouTube-hosted videos with an extractable id, asks the provider for
// details. Every failure degrades to "no enrichment" and is only logged.
func (s *VideoService) fetchDetails(ctx context.Context, url string) *videos.Details {
	videoType, videoID := videos.Classify(url)
	if videoType != models.VideoTypeYouTube || videoID == "" || s.Metadata == nil {
		return nil
	}

	ctx, span := logging.StartSpan(ctx, "metadata.lookup")
	defer span.End()

	details, err := s.Metadata.Lookup(ctx, videoID)
	if err != nil {
		logging.FromContext(ctx).Warn("metadata enrichment unavailable", "videoId", videoID, "error", err)
		return nil
	}

	return &details
}

// applyClassification recomputes the derived provider columns from the URL
// that is about to be persisted.
func applyClassification(video *models.Video) {
	videoType, videoID := videos.Classify(video.URL)
	video.VideoType = videoType
	if videoID == "" {
		video.VideoID = nil
	} else {
		video.VideoID = &videoID
	}
}

func (s *VideoService) now() time.Time {
	if s.NowFunc != nil {
		return s.NowFunc()
	}
	return time.Now().UTC()
}
