package repositories

import (
	"context"
	"errors"
	"fmt"

	"resep/internal/models"

	"gorm.io/gorm"
)

// GORMRecipeRepository is a GORM implementation of RecipeRepository.
type GORMRecipeRepository struct {
	db *gorm.DB
}

// NewGORMRecipeRepository creates a new instance of GORMRecipeRepository.
func NewGORMRecipeRepository(db *gorm.DB) *GORMRecipeRepository {
	return &GORMRecipeRepository{
		db: db,
	}
}

// Create inserts the recipe and its join rows in one transaction. Tags and
// ingredients must already exist; they are linked, never upserted.
func (r *GORMRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Owner", "Tags.*", "Ingredients.*").Create(recipe).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// ListByOwner retrieves the owner's recipes with their associations.
func (r *GORMRecipeRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0)
	err := r.db.WithContext(ctx).
		Preload("Tags", orderByID).
		Preload("Ingredients", orderByID).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes for owner %s: %w", ownerID, err)
	}
	return recipes, nil
}

// GetByOwner retrieves a single recipe of the owner.
func (r *GORMRecipeRepository) GetByOwner(ctx context.Context, ownerID string, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.WithContext(ctx).
		Preload("Tags", orderByID).
		Preload("Ingredients", orderByID).
		Where("owner_id = ?", ownerID).
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recipe with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get recipe %d: %w", id, err)
	}
	return &recipe, nil
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
