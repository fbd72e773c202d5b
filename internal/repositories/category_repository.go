package repositories

import (
	"context"

	"github.com/vidshelf/backend/internal/models"
)

// CategoryRepository defines the data access contract for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category models.Category) error
	Update(ctx context.Context, category models.Category) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
}
