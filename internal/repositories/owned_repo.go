package repositories

import (
	"context"

	"resep/internal/models"
)

// OwnedRepository is the persistence contract for records scoped to a
// single owner. Every read takes the owner explicitly and never returns
// records of another owner.
type OwnedRepository[T any] interface {
	Create(ctx context.Context, item *T) error
	// ListByOwner returns the owner's records by name descending, ties in
	// insertion order.
	ListByOwner(ctx context.Context, ownerID string) ([]T, error)
	// FindByOwner returns the owner's records among ids. Unknown ids and ids
	// of other owners are silently left out.
	FindByOwner(ctx context.Context, ownerID string, ids []uint) ([]T, error)
}

// OwnedRecord constrains a pointer to a record type that carries an owner.
type OwnedRecord[T any] interface {
	*T
	models.Owned
}
