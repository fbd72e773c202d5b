package handlers

import (
	"context"

	"github.com/vidshelf/backend/internal/catalog"
	"github.com/vidshelf/backend/internal/models"
	"github.com/vidshelf/backend/internal/videos"
)

// CategoryStore captures the operations required by the category handlers.
type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id string) (models.Category, error)
	Create(ctx context.Context, input catalog.CategoryInput) (models.Category, error)
	Update(ctx context.Context, id string, patch catalog.CategoryPatch) (models.Category, error)
	Delete(ctx context.Context, id string) error
}

// VideoStore captures the operations required by the video handlers.
type VideoStore interface {
	List(ctx context.Context) ([]models.Video, error)
	Get(ctx context.Context, id string) (models.Video, error)
	ListByCategory(ctx context.Context, categoryID string) ([]models.Video, error)
	SearchByTitle(ctx context.Context, title string) ([]models.Video, error)
	Create(ctx context.Context, input catalog.VideoInput) (models.Video, error)
	Update(ctx context.Context, id string, patch catalog.VideoPatch) (models.Video, error)
	Delete(ctx context.Context, id string) error
}

// VideoMetadataProvider resolves provider details for an extracted video id.
type VideoMetadataProvider interface {
	Lookup(ctx context.Context, videoID string) (videos.Details, error)
}
