package services_test

import (
	"context"
	"testing"

	"resep/internal/models"
	"resep/internal/repositories"
	"resep/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recipeFixture struct {
	recipes     *services.RecipeService
	tags        *services.ResourceService[models.Tag]
	ingredients *services.ResourceService[models.Ingredient]
	repo        *repositories.MockRecipeRepository
}

func newRecipeFixture(publisher services.EventPublisher) recipeFixture {
	tags := services.NewResourceService[models.Tag](services.TagKind, repositories.NewMockOwnedRepository[models.Tag, *models.Tag](), nil)
	ingredients := services.NewResourceService[models.Ingredient](services.IngredientKind, repositories.NewMockOwnedRepository[models.Ingredient, *models.Ingredient](), nil)
	repo := repositories.NewMockRecipeRepository()
	return recipeFixture{
		recipes:     services.NewRecipeService(repo, tags, ingredients, publisher, nil),
		tags:        tags,
		ingredients: ingredients,
		repo:        repo,
	}
}

func TestRecipeService_Create(t *testing.T) {
	ctx := context.Background()
	f := newRecipeFixture(nil)
	owner := uuid.New().String()

	vegan, err := f.tags.Create(ctx, owner, "Vegan")
	require.NoError(t, err)
	cabbage, err := f.ingredients.Create(ctx, owner, "Cabbage")
	require.NoError(t, err)

	recipe, err := f.recipes.Create(ctx, owner, services.RecipeInput{
		Name:          "Cabbage soup",
		TimeMinutes:   30,
		Price:         5.5,
		Link:          "https://example.com/soup",
		TagIDs:        []uint{vegan.ID},
		IngredientIDs: []uint{cabbage.ID, cabbage.ID},
	})
	require.NoError(t, err)
	assert.NotZero(t, recipe.ID)
	assert.Equal(t, owner, recipe.OwnerID)
	require.Len(t, recipe.Tags, 1)
	assert.Equal(t, "Vegan", recipe.Tags[0].Name)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "Cabbage", recipe.Ingredients[0].Name)

	got, err := f.recipes.Get(ctx, owner, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cabbage soup", got.Name)
}

func TestRecipeService_CreateValidates(t *testing.T) {
	ctx := context.Background()
	f := newRecipeFixture(nil)
	owner := uuid.New().String()

	cases := map[string]services.RecipeInput{
		"name":         {Name: " "},
		"time_minutes": {Name: "Soup", TimeMinutes: -1},
		"price":        {Name: "Soup", Price: -0.5},
	}
	for field, in := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := f.recipes.Create(ctx, owner, in)
			var ve *services.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, field)
		})
	}
	assert.Equal(t, 0, f.repo.Len())
}

func TestRecipeService_CreateRejectsForeignReferences(t *testing.T) {
	ctx := context.Background()
	f := newRecipeFixture(nil)
	owner, other := uuid.New().String(), uuid.New().String()

	theirTag, err := f.tags.Create(ctx, other, "Dessert")
	require.NoError(t, err)
	theirIngredient, err := f.ingredients.Create(ctx, other, "Sugar")
	require.NoError(t, err)

	_, err = f.recipes.Create(ctx, owner, services.RecipeInput{Name: "Cake", TagIDs: []uint{theirTag.ID}})
	var ve *services.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "tags")

	_, err = f.recipes.Create(ctx, owner, services.RecipeInput{Name: "Cake", IngredientIDs: []uint{theirIngredient.ID}})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "ingredients")

	assert.Equal(t, 0, f.repo.Len())
}

func TestRecipeService_ScopedToOwner(t *testing.T) {
	ctx := context.Background()
	f := newRecipeFixture(nil)
	owner, other := uuid.New().String(), uuid.New().String()

	mine, err := f.recipes.Create(ctx, owner, services.RecipeInput{Name: "Mine"})
	require.NoError(t, err)
	theirs, err := f.recipes.Create(ctx, other, services.RecipeInput{Name: "Theirs"})
	require.NoError(t, err)

	list, err := f.recipes.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	_, err = f.recipes.Get(ctx, owner, theirs.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestRecipeService_CreatePublishesEvent(t *testing.T) {
	publisher := new(MockPublisher)
	f := newRecipeFixture(publisher)
	owner := uuid.New().String()

	publisher.On("Publish", mock.Anything, services.EventRecipeCreated, mock.MatchedBy(func(p map[string]any) bool {
		return p["owner_id"] == owner && p["name"] == "Soup"
	})).Return(nil).Once()

	_, err := f.recipes.Create(context.Background(), owner, services.RecipeInput{Name: "Soup"})
	require.NoError(t, err)
	publisher.AssertExpectations(t)
}
