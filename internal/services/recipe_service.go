package services

import (
	"context"
	"fmt"
	"strings"

	"resep/internal/models"
	"resep/internal/repositories"

	"go.uber.org/zap"
)

// RecipeService handles the recipe aggregate. Tags and ingredients are
// resolved through the caller's own stores, so a recipe can only reference
// records of its owner.
type RecipeService struct {
	repo        repositories.RecipeRepository
	tags        *ResourceService[models.Tag]
	ingredients *ResourceService[models.Ingredient]
	publisher   EventPublisher
	logger      *zap.Logger
}

// NewRecipeService creates a new RecipeService. publisher may be nil.
func NewRecipeService(
	repo repositories.RecipeRepository,
	tags *ResourceService[models.Tag],
	ingredients *ResourceService[models.Ingredient],
	publisher EventPublisher,
	logger *zap.Logger,
) *RecipeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeService{
		repo:        repo,
		tags:        tags,
		ingredients: ingredients,
		publisher:   publisher,
		logger:      logger.Named("recipe"),
	}
}

// RecipeInput is the client-supplied part of a new recipe.
type RecipeInput struct {
	Name          string
	TimeMinutes   int
	Price         float64
	Link          string
	TagIDs        []uint
	IngredientIDs []uint
}

// Validate checks the scalar fields of in.
func (in RecipeInput) Validate() error {
	fields := map[string]string{}
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		fields["name"] = "this field may not be blank"
	case len([]rune(name)) > maxAttributeNameLength:
		fields["name"] = fmt.Sprintf("ensure this field has no more than %d characters", maxAttributeNameLength)
	}
	if in.TimeMinutes < 0 {
		fields["time_minutes"] = "ensure this value is greater than or equal to 0"
	}
	if in.Price < 0 {
		fields["price"] = "ensure this value is greater than or equal to 0"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Create validates in, resolves its references within ownerID's records and
// stores the recipe.
func (s *RecipeService) Create(ctx context.Context, ownerID string, in RecipeInput) (*models.Recipe, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	tags, err := s.tags.FindByOwner(ctx, ownerID, in.TagIDs, "tags")
	if err != nil {
		return nil, err
	}
	ingredients, err := s.ingredients.FindByOwner(ctx, ownerID, in.IngredientIDs, "ingredients")
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Name:        strings.TrimSpace(in.Name),
		TimeMinutes: in.TimeMinutes,
		Price:       in.Price,
		Link:        strings.TrimSpace(in.Link),
		OwnerID:     ownerID,
		Tags:        make([]*models.Tag, 0, len(tags)),
		Ingredients: make([]*models.Ingredient, 0, len(ingredients)),
	}
	for i := range tags {
		recipe.Tags = append(recipe.Tags, &tags[i])
	}
	for i := range ingredients {
		recipe.Ingredients = append(recipe.Ingredients, &ingredients[i])
	}

	if err := s.repo.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	s.logger.Info("recipe created", zap.Uint("recipe_id", recipe.ID), zap.String("owner_id", ownerID))
	publish(ctx, s.publisher, s.logger, EventRecipeCreated, map[string]any{
		"recipe_id": recipe.ID,
		"owner_id":  ownerID,
		"name":      recipe.Name,
	})
	return recipe, nil
}

// ListByOwner returns the owner's recipes.
func (s *RecipeService) ListByOwner(ctx context.Context, ownerID string) ([]models.Recipe, error) {
	recipes, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// Get returns one of the owner's recipes; anything else is
// repositories.ErrNotFound.
func (s *RecipeService) Get(ctx context.Context, ownerID string, id uint) (*models.Recipe, error) {
	return s.repo.GetByOwner(ctx, ownerID, id)
}
