package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// GORMOwnedRepository is a GORM implementation of OwnedRepository. The
// table is derived from T, which needs owner_id and name columns.
type GORMOwnedRepository[T any] struct {
	db *gorm.DB
}

// NewGORMOwnedRepository creates a new instance of GORMOwnedRepository.
func NewGORMOwnedRepository[T any](db *gorm.DB) *GORMOwnedRepository[T] {
	return &GORMOwnedRepository[T]{
		db: db,
	}
}

// Create inserts a single record.
func (r *GORMOwnedRepository[T]) Create(ctx context.Context, item *T) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create %T: %w", item, err)
	}
	return nil
}

// ListByOwner retrieves the owner's records ordered by name descending.
func (r *GORMOwnedRepository[T]) ListByOwner(ctx context.Context, ownerID string) ([]T, error) {
	items := make([]T, 0)
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name DESC").
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %T for owner %s: %w", items, ownerID, err)
	}
	return items, nil
}

// FindByOwner retrieves the owner's records whose id is in ids.
func (r *GORMOwnedRepository[T]) FindByOwner(ctx context.Context, ownerID string, ids []uint) ([]T, error) {
	items := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id IN ?", ownerID, ids).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find %T for owner %s: %w", items, ownerID, err)
	}
	return items, nil
}
