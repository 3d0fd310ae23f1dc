package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"resep/internal/models"
)

// MockItemRepository is an in-memory implementation of ItemRepository.
type MockItemRepository struct {
	items  map[uint]models.Item
	nextID uint
	mu     sync.RWMutex
}

// NewMockItemRepository creates a new instance of MockItemRepository.
func NewMockItemRepository() *MockItemRepository {
	return &MockItemRepository{
		items:  make(map[uint]models.Item),
		nextID: 1,
	}
}

// GetAll returns the items matching filter in id order.
func (r *MockItemRepository) GetAll(_ context.Context, filter ItemFilter) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itemList := make([]models.Item, 0, len(r.items))
	for _, it := range r.items {
		if filter.Kind != "" && it.Kind != filter.Kind {
			continue
		}
		if filter.BrandID != 0 && it.BrandID != filter.BrandID {
			continue
		}
		if filter.CategoryID != 0 && it.CategoryID != filter.CategoryID {
			continue
		}
		itemList = append(itemList, it)
	}
	sort.Slice(itemList, func(i, j int) bool { return itemList[i].ID < itemList[j].ID })
	return itemList, nil
}

// GetByID returns an item by its ID.
func (r *MockItemRepository) GetByID(_ context.Context, id uint) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("item with ID %d: %w", id, ErrNotFound)
	}
	return &item, nil
}

// Create adds a new item.
func (r *MockItemRepository) Create(_ context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	r.items[item.ID] = *item
	return nil
}

// Update replaces an existing item.
func (r *MockItemRepository) Update(_ context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.ID]
	if !ok {
		return fmt.Errorf("item with ID %d: %w", item.ID, ErrNotFound)
	}
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = time.Now()
	r.items[item.ID] = *item
	return nil
}

// Delete removes an item by its ID.
func (r *MockItemRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("item with ID %d: %w", id, ErrNotFound)
	}
	delete(r.items, id)
	return nil
}

// MockLookupRepository is an in-memory implementation of LookupRepository.
// setID assigns the id of a new record.
type MockLookupRepository[T any] struct {
	records []T
	ids     []uint
	setID   func(*T, uint)
	nextID  uint
	mu      sync.RWMutex
}

// NewMockLookupRepository creates a new instance of MockLookupRepository.
func NewMockLookupRepository[T any](setID func(*T, uint)) *MockLookupRepository[T] {
	return &MockLookupRepository[T]{setID: setID, nextID: 1}
}

// List returns every record in id order.
func (r *MockLookupRepository[T]) List(_ context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(make([]T, 0, len(r.records)), r.records...), nil
}

// GetByIDs returns the records whose id is in ids.
func (r *MockLookupRepository[T]) GetByIDs(_ context.Context, ids []uint) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(ids))
	for i, id := range r.ids {
		for _, want := range ids {
			if id == want {
				out = append(out, r.records[i])
				break
			}
		}
	}
	return out, nil
}

// Create assigns the next id and stores a copy of the record.
func (r *MockLookupRepository[T]) Create(_ context.Context, record *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.setID(record, r.nextID)
	r.ids = append(r.ids, r.nextID)
	r.nextID++
	r.records = append(r.records, *record)
	return nil
}
