package repositories_test

import (
	"context"
	"testing"

	"resep/internal/database"
	"resep/internal/models"
	"resep/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", "file:"+uuid.New().String()+"?mode=memory&cache=shared", false)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func createUser(t *testing.T, repo *repositories.GORMUserRepository, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, IsActive: true}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestGORMUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMUserRepository(openDB(t))

	user := createUser(t, repo, "test@example.com")
	assert.NotEmpty(t, user.ID)

	got, err := repo.GetByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	err = repo.Create(ctx, &models.User{Email: "test@example.com"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate, "email is unique")

	got.Name = "Renamed"
	got.IsActive = false
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.False(t, got.IsActive)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = repo.GetByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &models.User{ID: "missing"}), repositories.ErrNotFound)
}

func TestGORMTokenRepository(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	user := createUser(t, repositories.NewGORMUserRepository(db), "test@example.com")
	repo := repositories.NewGORMTokenRepository(db)

	require.NoError(t, repo.Create(ctx, &models.AuthToken{Key: "first", UserID: user.ID}))
	require.NoError(t, repo.Create(ctx, &models.AuthToken{Key: "rival", UserID: user.ID}))

	got, err := repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Key, "a second create keeps the stored token")

	require.NoError(t, repo.Replace(ctx, "stale", &models.AuthToken{Key: "ignored", UserID: user.ID}))
	got, err = repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Key, "replace only swaps the key it observed")

	require.NoError(t, repo.Replace(ctx, "first", &models.AuthToken{Key: "second", UserID: user.ID}))
	got, err = repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Key)

	_, err = repo.GetByKey(ctx, "first")
	assert.ErrorIs(t, err, repositories.ErrNotFound, "a user holds one token")

	got, err = repo.GetByKey(ctx, "second")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)
}

func TestGORMOwnedRepository(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	users := repositories.NewGORMUserRepository(db)
	owner := createUser(t, users, "owner@example.com")
	other := createUser(t, users, "other@example.com")
	repo := repositories.NewGORMOwnedRepository[models.Tag](db)

	var created []models.Tag
	for _, name := range []string{"Dessert", "Vegan", "Breakfast", "Vegan"} {
		tag := models.Tag{Name: name, OwnerID: owner.ID}
		require.NoError(t, repo.Create(ctx, &tag))
		created = append(created, tag)
	}
	foreign := models.Tag{Name: "Zesty", OwnerID: other.ID}
	require.NoError(t, repo.Create(ctx, &foreign))

	tags, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, tags, 4)
	assert.Equal(t, created[1].ID, tags[0].ID)
	assert.Equal(t, created[3].ID, tags[1].ID)
	assert.Equal(t, "Dessert", tags[2].Name)
	assert.Equal(t, "Breakfast", tags[3].Name)

	found, err := repo.FindByOwner(ctx, owner.ID, []uint{created[0].ID, foreign.ID})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created[0].ID, found[0].ID)

	found, err = repo.FindByOwner(ctx, owner.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestGORMRecipeRepository(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	users := repositories.NewGORMUserRepository(db)
	owner := createUser(t, users, "owner@example.com")
	other := createUser(t, users, "other@example.com")

	tags := repositories.NewGORMOwnedRepository[models.Tag](db)
	ingredients := repositories.NewGORMOwnedRepository[models.Ingredient](db)
	vegan := models.Tag{Name: "Vegan", OwnerID: owner.ID}
	require.NoError(t, tags.Create(ctx, &vegan))
	quick := models.Tag{Name: "Quick", OwnerID: owner.ID}
	require.NoError(t, tags.Create(ctx, &quick))
	cabbage := models.Ingredient{Name: "Cabbage", OwnerID: owner.ID}
	require.NoError(t, ingredients.Create(ctx, &cabbage))

	repo := repositories.NewGORMRecipeRepository(db)
	recipe := &models.Recipe{
		Name:        "Cabbage soup",
		TimeMinutes: 30,
		Price:       5,
		OwnerID:     owner.ID,
		Tags:        []*models.Tag{&quick, &vegan},
		Ingredients: []*models.Ingredient{&cabbage},
	}
	require.NoError(t, repo.Create(ctx, recipe))
	assert.NotZero(t, recipe.ID)

	var tagCount int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&tagCount).Error)
	assert.Equal(t, int64(2), tagCount, "linked tags are not duplicated")

	got, err := repo.GetByOwner(ctx, owner.ID, recipe.ID)
	require.NoError(t, err)
	require.Len(t, got.Tags, 2)
	assert.Equal(t, vegan.ID, got.Tags[0].ID)
	assert.Equal(t, quick.ID, got.Tags[1].ID)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, "Cabbage", got.Ingredients[0].Name)

	_, err = repo.GetByOwner(ctx, other.ID, recipe.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	second := &models.Recipe{Name: "Toast", OwnerID: owner.ID}
	require.NoError(t, repo.Create(ctx, second))
	list, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, recipe.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	list, err = repo.ListByOwner(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGORMItemRepository(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	brands := repositories.NewGORMLookupRepository[models.Brand](db)
	categories := repositories.NewGORMLookupRepository[models.Category](db)
	promos := repositories.NewGORMLookupRepository[models.Promo](db)
	brand := models.Brand{Name: "Lenovo"}
	require.NoError(t, brands.Create(ctx, &brand))
	category := models.Category{Name: "Laptops"}
	require.NoError(t, categories.Create(ctx, &category))
	promo := models.Promo{PromoType: "Sale"}
	require.NoError(t, promos.Create(ctx, &promo))

	found, err := brands.GetByIDs(ctx, []uint{brand.ID, 999})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	repo := repositories.NewGORMItemRepository(db)
	item := &models.Item{
		Kind:       models.ItemKindNotebook,
		Model:      "X1",
		Price:      1999,
		BrandID:    brand.ID,
		CategoryID: category.ID,
		Promos:     []*models.Promo{&promo},
		Notebook:   &models.NotebookSpec{Display: 9.5, Memory: 16, CPU: "i7"},
	}
	require.NoError(t, repo.Create(ctx, item))

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Notebook)
	assert.Equal(t, "i7", got.Notebook.CPU)
	assert.Equal(t, "Lenovo X1", got.String())
	require.Len(t, got.Promos, 1)

	all, err := repo.GetAll(ctx, repositories.ItemFilter{Kind: models.ItemKindDishwasher})
	require.NoError(t, err)
	assert.Empty(t, all)
	all, err = repo.GetAll(ctx, repositories.ItemFilter{CategoryID: category.ID})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	update := &models.Item{
		ID:         item.ID,
		Kind:       models.ItemKindGeneric,
		Model:      "X1 Carbon",
		Price:      2099,
		BrandID:    brand.ID,
		CategoryID: category.ID,
	}
	require.NoError(t, repo.Update(ctx, update))
	got, err = repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "X1 Carbon", got.Model)
	assert.Nil(t, got.Notebook)
	assert.Empty(t, got.Promos)

	assert.ErrorIs(t, repo.Update(ctx, &models.Item{ID: 999, Model: "X", BrandID: brand.ID, CategoryID: category.ID}), repositories.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, item.ID))
	_, err = repo.GetByID(ctx, item.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, item.ID), repositories.ErrNotFound)
}
