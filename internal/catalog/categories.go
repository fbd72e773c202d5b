package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vidshelf/backend/internal/models"
	"github.com/vidshelf/backend/internal/repositories"
)

// CategoryInput carries the fields accepted when creating a category.
type CategoryInput struct {
	Name        string
	Description string
}

// CategoryPatch carries a partial category update; nil fields are untouched.
type CategoryPatch struct {
	Name        *string
	Description *string
}

// CategoryService implements the category store operations on top of a
// repository. Name uniqueness is case-insensitive and enforced atomically by
// the repository alongside the write.
type CategoryService struct {
	Categories repositories.CategoryRepository
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.Categories.FindAll(ctx)
}

// Get returns a single category by id.
func (s *CategoryService) Get(ctx context.Context, id string) (models.Category, error) {
	category, err := s.Categories.FindByID(ctx, id)
	if err != nil {
		return models.Category{}, fmt.Errorf("category %s: %w", id, err)
	}
	return category, nil
}

// Create persists a new category, rejecting case-insensitive name collisions
// with ErrConflict.
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (models.Category, error) {
	category := models.Category{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
	}

	if err := s.Categories.Create(ctx, category); err != nil {
		return models.Category{}, fmt.Errorf("category %q: %w", input.Name, err)
	}

	return category, nil
}

// Update applies the supplied fields to an existing category. Renaming into a
// case-insensitive collision with another category yields ErrConflict; a
// case-only rename of the category itself is allowed.
func (s *CategoryService) Update(ctx context.Context, id string, patch CategoryPatch) (models.Category, error) {
	category, err := s.Categories.FindByID(ctx, id)
	if err != nil {
		return models.Category{}, fmt.Errorf("category %s: %w", id, err)
	}

	if patch.Name != nil {
		category.Name = *patch.Name
	}
	if patch.Description != nil {
		category.Description = *patch.Description
	}

	if err := s.Categories.Update(ctx, category); err != nil {
		return models.Category{}, fmt.Errorf("category %s: %w", id, err)
	}

	return category, nil
}

// Delete removes a category along with every video it owns.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.Categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("category %s: %w", id, err)
	}
	return nil
}
