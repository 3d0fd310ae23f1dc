package repositories

import (
	"context"

	"resep/internal/models"
)

// RecipeRepository defines the interface for recipe data access. Like
// OwnedRepository, every read is filtered by owner.
type RecipeRepository interface {
	// Create inserts the recipe together with its tag and ingredient links
	// in a single transaction.
	Create(ctx context.Context, recipe *models.Recipe) error
	// ListByOwner returns the owner's recipes in id order with Tags and
	// Ingredients loaded.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Recipe, error)
	// GetByOwner returns one of the owner's recipes; another owner's id
	// yields ErrNotFound.
	GetByOwner(ctx context.Context, ownerID string, id uint) (*models.Recipe, error)
}
