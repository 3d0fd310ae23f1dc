package repositories

import (
	"context"
	"errors"
	"fmt"

	"resep/internal/models"

	"gorm.io/gorm"
)

// GORMItemRepository is a GORM implementation of ItemRepository.
type GORMItemRepository struct {
	db *gorm.DB
}

// NewGORMItemRepository creates a new instance of GORMItemRepository.
func NewGORMItemRepository(db *gorm.DB) *GORMItemRepository {
	return &GORMItemRepository{
		db: db,
	}
}

func (r *GORMItemRepository) withAssociations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Category").
		Preload("Promos").
		Preload("Notebook").
		Preload("Dishwasher")
}

// GetAll retrieves the items matching filter in id order.
func (r *GORMItemRepository) GetAll(ctx context.Context, filter ItemFilter) ([]models.Item, error) {
	items := make([]models.Item, 0)
	q := r.withAssociations(ctx)
	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}
	if filter.BrandID != 0 {
		q = q.Where("brand_id = ?", filter.BrandID)
	}
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if err := q.Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	return items, nil
}

// GetByID retrieves a single item by its ID.
func (r *GORMItemRepository) GetByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := r.withAssociations(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get item by ID %d: %w", id, err)
	}
	return &item, nil
}

// Create inserts the item, its extension record and its promo links.
func (r *GORMItemRepository) Create(ctx context.Context, item *models.Item) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Brand", "Category", "Promos.*").Create(item).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// Update rewrites the item, replaces its extension record and its promo links.
func (r *GORMItemRepository) Update(ctx context.Context, item *models.Item) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Item{ID: item.ID}).
			Select("Kind", "Description", "Model", "Price", "Color", "Warranty", "Count", "BrandID", "CategoryID", "UpdatedAt").
			Updates(item)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("item with ID %d: %w", item.ID, ErrNotFound)
		}
		if err := deleteItemExtensions(tx, item.ID); err != nil {
			return err
		}
		if item.Notebook != nil {
			item.Notebook.ItemID = item.ID
			if err := tx.Create(item.Notebook).Error; err != nil {
				return err
			}
		}
		if item.Dishwasher != nil {
			item.Dishwasher.ItemID = item.ID
			if err := tx.Create(item.Dishwasher).Error; err != nil {
				return err
			}
		}
		if len(item.Promos) == 0 {
			return tx.Model(item).Association("Promos").Clear()
		}
		return tx.Model(item).Association("Promos").Replace(item.Promos)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to update item %d: %w", item.ID, err)
	}
	return nil
}

// Delete removes an item together with its extension record and promo links.
func (r *GORMItemRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteItemExtensions(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&models.Item{ID: id}).Association("Promos").Clear(); err != nil {
			return err
		}
		res := tx.Delete(&models.Item{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("item with ID %d: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	return nil
}

func deleteItemExtensions(tx *gorm.DB, itemID uint) error {
	if err := tx.Delete(&models.NotebookSpec{}, "item_id = ?", itemID).Error; err != nil {
		return err
	}
	return tx.Delete(&models.DishwasherSpec{}, "item_id = ?", itemID).Error
}

// GORMLookupRepository is a GORM implementation of LookupRepository.
type GORMLookupRepository[T any] struct {
	db *gorm.DB
}

// NewGORMLookupRepository creates a new instance of GORMLookupRepository.
func NewGORMLookupRepository[T any](db *gorm.DB) *GORMLookupRepository[T] {
	return &GORMLookupRepository[T]{db: db}
}

// List retrieves every record in id order.
func (r *GORMLookupRepository[T]) List(ctx context.Context) ([]T, error) {
	records := make([]T, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list %T: %w", records, err)
	}
	return records, nil
}

// GetByIDs retrieves the records whose id is in ids; unknown ids are left out.
func (r *GORMLookupRepository[T]) GetByIDs(ctx context.Context, ids []uint) ([]T, error) {
	records := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return records, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get %T by ids: %w", records, err)
	}
	return records, nil
}

// Create inserts a single record.
func (r *GORMLookupRepository[T]) Create(ctx context.Context, record *T) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create %T: %w", record, err)
	}
	return nil
}
