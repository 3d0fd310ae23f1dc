package repositories

import (
	"context"
	"slices"
	"sort"
	"sync"
)

// MockOwnedRepository is an in-memory implementation of OwnedRepository.
// Records are kept in insertion order.
type MockOwnedRepository[T any, P OwnedRecord[T]] struct {
	items  []T
	nextID uint
	mu     sync.RWMutex
}

// NewMockOwnedRepository creates a new instance of MockOwnedRepository.
func NewMockOwnedRepository[T any, P OwnedRecord[T]]() *MockOwnedRepository[T, P] {
	return &MockOwnedRepository[T, P]{nextID: 1}
}

// Create assigns the next id and stores a copy of the record.
func (r *MockOwnedRepository[T, P]) Create(_ context.Context, item *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	P(item).SetID(r.nextID)
	r.nextID++
	r.items = append(r.items, *item)
	return nil
}

// ListByOwner returns the owner's records by name descending.
func (r *MockOwnedRepository[T, P]) ListByOwner(_ context.Context, ownerID string) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0)
	for i := range r.items {
		if P(&r.items[i]).GetOwnerID() == ownerID {
			out = append(out, r.items[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return P(&out[i]).GetName() > P(&out[j]).GetName()
	})
	return out, nil
}

// FindByOwner returns the owner's records among ids in id order.
func (r *MockOwnedRepository[T, P]) FindByOwner(_ context.Context, ownerID string, ids []uint) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(ids))
	for i := range r.items {
		rec := P(&r.items[i])
		if rec.GetOwnerID() == ownerID && slices.Contains(ids, rec.GetID()) {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}

// Len returns the number of stored records across all owners.
func (r *MockOwnedRepository[T, P]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
