package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"resep/internal/models"
)

// MockRecipeRepository is an in-memory implementation of RecipeRepository.
type MockRecipeRepository struct {
	recipes []models.Recipe
	nextID  uint
	mu      sync.RWMutex
}

// NewMockRecipeRepository creates a new instance of MockRecipeRepository.
func NewMockRecipeRepository() *MockRecipeRepository {
	return &MockRecipeRepository{nextID: 1}
}

// Create stores a copy of the recipe under the next id.
func (r *MockRecipeRepository) Create(_ context.Context, recipe *models.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	recipe.ID = r.nextID
	r.nextID++
	recipe.CreatedAt = time.Now()
	recipe.UpdatedAt = recipe.CreatedAt
	r.recipes = append(r.recipes, *recipe)
	return nil
}

// ListByOwner returns the owner's recipes in id order.
func (r *MockRecipeRepository) ListByOwner(_ context.Context, ownerID string) ([]models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Recipe, 0)
	for _, rec := range r.recipes {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// GetByOwner returns one of the owner's recipes.
func (r *MockRecipeRepository) GetByOwner(_ context.Context, ownerID string, id uint) (*models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.recipes {
		if rec.ID == id && rec.OwnerID == ownerID {
			return &rec, nil
		}
	}
	return nil, fmt.Errorf("recipe with ID %d: %w", id, ErrNotFound)
}

// Len returns the number of stored recipes across all owners.
func (r *MockRecipeRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.recipes)
}
