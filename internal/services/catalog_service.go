package services

import (
	"context"
	"fmt"

	"resep/internal/models"
	"resep/internal/repositories"
)

// CatalogService handles the product catalog. Catalog records are flat and
// shared by all users; there is no pricing or stock logic here.
type CatalogService struct {
	items      repositories.ItemRepository
	brands     repositories.LookupRepository[models.Brand]
	categories repositories.LookupRepository[models.Category]
	promos     repositories.LookupRepository[models.Promo]
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	items repositories.ItemRepository,
	brands repositories.LookupRepository[models.Brand],
	categories repositories.LookupRepository[models.Category],
	promos repositories.LookupRepository[models.Promo],
) *CatalogService {
	return &CatalogService{
		items:      items,
		brands:     brands,
		categories: categories,
		promos:     promos,
	}
}

// ListItems retrieves the items matching filter.
func (s *CatalogService) ListItems(ctx context.Context, filter repositories.ItemFilter) ([]models.Item, error) {
	return s.items.GetAll(ctx, filter)
}

// GetItem retrieves a single item by its ID.
func (s *CatalogService) GetItem(ctx context.Context, id uint) (*models.Item, error) {
	return s.items.GetByID(ctx, id)
}

// CreateItem checks the variant and references of item, links promoIDs and
// stores it.
func (s *CatalogService) CreateItem(ctx context.Context, item *models.Item, promoIDs []uint) error {
	if err := s.prepareItem(ctx, item, promoIDs); err != nil {
		return err
	}
	return s.items.Create(ctx, item)
}

// UpdateItem replaces an existing item.
func (s *CatalogService) UpdateItem(ctx context.Context, item *models.Item, promoIDs []uint) error {
	if err := s.prepareItem(ctx, item, promoIDs); err != nil {
		return err
	}
	return s.items.Update(ctx, item)
}

// DeleteItem deletes an item by its ID.
func (s *CatalogService) DeleteItem(ctx context.Context, id uint) error {
	return s.items.Delete(ctx, id)
}

func (s *CatalogService) prepareItem(ctx context.Context, item *models.Item, promoIDs []uint) error {
	if err := ValidateItemVariant(item); err != nil {
		return err
	}
	if err := requireLookup(ctx, s.brands, item.BrandID, "brand_id"); err != nil {
		return err
	}
	if err := requireLookup(ctx, s.categories, item.CategoryID, "category_id"); err != nil {
		return err
	}

	promoIDs = uniqueIDs(promoIDs)
	promos, err := s.promos.GetByIDs(ctx, promoIDs)
	if err != nil {
		return fmt.Errorf("failed to resolve promos: %w", err)
	}
	if len(promos) != len(promoIDs) {
		return NewValidationError("promo_ids", "invalid promo id")
	}
	item.Promos = make([]*models.Promo, 0, len(promos))
	for i := range promos {
		item.Promos = append(item.Promos, &promos[i])
	}
	return nil
}

func requireLookup[T any](ctx context.Context, repo repositories.LookupRepository[T], id uint, field string) error {
	found, err := repo.GetByIDs(ctx, []uint{id})
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", field, err)
	}
	if len(found) != 1 {
		return NewValidationError(field, "invalid id")
	}
	return nil
}

// ValidateItemVariant enforces the tagged-variant rule: exactly the
// extension record selected by Kind is present.
func ValidateItemVariant(item *models.Item) error {
	if item.Kind == "" {
		item.Kind = models.ItemKindGeneric
	}
	switch item.Kind {
	case models.ItemKindGeneric:
		if item.Notebook != nil || item.Dishwasher != nil {
			return NewValidationError("kind", "generic items carry no subtype fields")
		}
	case models.ItemKindNotebook:
		if item.Notebook == nil || item.Dishwasher != nil {
			return NewValidationError("notebook", "notebook items need notebook fields only")
		}
	case models.ItemKindDishwasher:
		if item.Dishwasher == nil || item.Notebook != nil {
			return NewValidationError("dishwasher", "dishwasher items need dishwasher fields only")
		}
		if item.Dishwasher.EnergySavingClass == "" {
			item.Dishwasher.EnergySavingClass = "A+"
		}
	default:
		return NewValidationError("kind", fmt.Sprintf("unknown item kind %q", item.Kind))
	}
	return nil
}

// ListBrands retrieves all brands.
func (s *CatalogService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return s.brands.List(ctx)
}

// CreateBrand stores a new brand.
func (s *CatalogService) CreateBrand(ctx context.Context, brand *models.Brand) error {
	return s.brands.Create(ctx, brand)
}

// ListCategories retrieves all categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

// CreateCategory stores a new category.
func (s *CatalogService) CreateCategory(ctx context.Context, category *models.Category) error {
	return s.categories.Create(ctx, category)
}

// ListPromos retrieves all promos.
func (s *CatalogService) ListPromos(ctx context.Context) ([]models.Promo, error) {
	return s.promos.List(ctx)
}

// CreatePromo stores a new promo.
func (s *CatalogService) CreatePromo(ctx context.Context, promo *models.Promo) error {
	return s.promos.Create(ctx, promo)
}
