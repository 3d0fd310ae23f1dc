package repositories

import (
	"context"

	"resep/internal/models"
)

// ItemRepository defines the interface for catalog item data access.
type ItemRepository interface {
	GetAll(ctx context.Context, filter ItemFilter) ([]models.Item, error)
	GetByID(ctx context.Context, id uint) (*models.Item, error)
	Create(ctx context.Context, item *models.Item) error
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id uint) error
}

// ItemFilter narrows GetAll. Zero values match everything.
type ItemFilter struct {
	Kind       models.ItemKind
	BrandID    uint
	CategoryID uint
}

// LookupRepository is the data access contract for the flat catalog tables
// (brands, categories, promos).
type LookupRepository[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByIDs(ctx context.Context, ids []uint) ([]T, error)
	Create(ctx context.Context, record *T) error
}
