package services

import (
	"context"
	"fmt"
	"strings"

	"resep/internal/repositories"

	"go.uber.org/zap"
)

// ResourceKind describes one kind of owner-scoped named resource.
type ResourceKind[T any] struct {
	// Name is used in logs and error messages, e.g. "tag".
	Name string
	// New builds an unsaved record owned by ownerID.
	New func(ownerID, name string) *T
	// MaxNameLength caps the name; zero disables the check.
	MaxNameLength int
}

// ResourceService implements list and create for an owner-scoped resource
// kind. The owner always comes from the caller's identity.
type ResourceService[T any] struct {
	kind   ResourceKind[T]
	repo   repositories.OwnedRepository[T]
	logger *zap.Logger
}

// NewResourceService creates a new ResourceService for kind.
func NewResourceService[T any](kind ResourceKind[T], repo repositories.OwnedRepository[T], logger *zap.Logger) *ResourceService[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceService[T]{
		kind:   kind,
		repo:   repo,
		logger: logger.Named(kind.Name),
	}
}

// Kind returns the descriptor the service was built with.
func (s *ResourceService[T]) Kind() ResourceKind[T] {
	return s.kind
}

// Validate rejects a blank or over-long name.
func (s *ResourceService[T]) Validate(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewValidationError("name", "this field may not be blank")
	}
	if s.kind.MaxNameLength > 0 && len([]rune(name)) > s.kind.MaxNameLength {
		return NewValidationError("name", fmt.Sprintf("ensure this field has no more than %d characters", s.kind.MaxNameLength))
	}
	return nil
}

// Create validates name and stores a new record owned by ownerID.
func (s *ResourceService[T]) Create(ctx context.Context, ownerID, name string) (*T, error) {
	if err := s.Validate(name); err != nil {
		return nil, err
	}
	item := s.kind.New(ownerID, strings.TrimSpace(name))
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", s.kind.Name, err)
	}
	s.logger.Debug("created", zap.String("owner_id", ownerID))
	return item, nil
}

// ListByOwner returns the owner's records, name descending.
func (s *ResourceService[T]) ListByOwner(ctx context.Context, ownerID string) ([]T, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", s.kind.Name, err)
	}
	return items, nil
}

// FindByOwner resolves ids against the owner's records. Any id that is not
// one of the owner's records is reported as a ValidationError on field.
func (s *ResourceService[T]) FindByOwner(ctx context.Context, ownerID string, ids []uint, field string) ([]T, error) {
	ids = uniqueIDs(ids)
	items, err := s.repo.FindByOwner(ctx, ownerID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %ss: %w", s.kind.Name, err)
	}
	if len(items) != len(ids) {
		return nil, NewValidationError(field, fmt.Sprintf("invalid %s id", s.kind.Name))
	}
	return items, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
