package repositories

import (
	"context"

	"github.com/vidshelf/backend/internal/models"
)

// VideoRepository defines the data access contract for videos.
type VideoRepository interface {
	Create(ctx context.Context, video models.Video) error
	Update(ctx context.Context, video models.Video) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (models.Video, error)
	FindAll(ctx context.Context) ([]models.Video, error)
	FindByCategory(ctx context.Context, categoryID string) ([]models.Video, error)
	SearchByTitle(ctx context.Context, title string) ([]models.Video, error)
}
