package handlers

import (
	"context"

	"resep/internal/middleware"
	"resep/internal/models"
	"resep/internal/repositories"
	"resep/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CatalogHandler handles HTTP requests for the shared product catalog.
// Any authenticated user may read it; writes need a staff account.
type CatalogHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{
		service:  service,
		validate: NewValidator(),
		logger:   logger.Named("catalog"),
	}
}

// RegisterRoutes registers the catalog routes.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	staff := middleware.StaffRequired()
	catalog := router.Group("/catalog", auth)

	catalog.Get("/items", h.HandleListItems)
	catalog.Get("/items/:id", h.HandleGetItem)
	catalog.Post("/items", staff, h.HandleCreateItem)
	catalog.Put("/items/:id", staff, h.HandleUpdateItem)
	catalog.Delete("/items/:id", staff, h.HandleDeleteItem)

	catalog.Get("/brands", listLookup(h, h.service.ListBrands))
	catalog.Post("/brands", staff, createLookup(h, "brand", h.service.CreateBrand))
	catalog.Get("/categories", listLookup(h, h.service.ListCategories))
	catalog.Post("/categories", staff, createLookup(h, "category", h.service.CreateCategory))
	catalog.Get("/promos", listLookup(h, h.service.ListPromos))
	catalog.Post("/promos", staff, createLookup(h, "promo", h.service.CreatePromo))
}

// ItemRequest is the payload for creating or replacing an item.
type ItemRequest struct {
	models.Item
	PromoIDs []uint `json:"promo_ids"`
}

// HandleListItems retrieves items, optionally filtered by the kind,
// brand_id and category_id query parameters.
func (h *CatalogHandler) HandleListItems(c *fiber.Ctx) error {
	filter := repositories.ItemFilter{
		Kind:       models.ItemKind(c.Query("kind")),
		BrandID:    uint(c.QueryInt("brand_id")),
		CategoryID: uint(c.QueryInt("category_id")),
	}
	items, err := h.service.ListItems(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.logger, err, "retrieve items")
	}
	return c.JSON(items)
}

// HandleGetItem retrieves a single item by its ID.
func (h *CatalogHandler) HandleGetItem(c *fiber.Ctx) error {
	id, ok := itemID(c)
	if !ok {
		return notFound(c)
	}
	item, err := h.service.GetItem(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "retrieve item")
	}
	return c.JSON(item)
}

// HandleCreateItem creates a new item.
func (h *CatalogHandler) HandleCreateItem(c *fiber.Ctx) error {
	req, ok, err := h.parseItem(c)
	if !ok {
		return err
	}
	req.Item.ID = 0
	if err := h.service.CreateItem(c.UserContext(), &req.Item, req.PromoIDs); err != nil {
		return respondError(c, h.logger, err, "create item")
	}
	return h.respondItem(c, fiber.StatusCreated, req.Item.ID)
}

// HandleUpdateItem replaces an existing item.
func (h *CatalogHandler) HandleUpdateItem(c *fiber.Ctx) error {
	id, ok := itemID(c)
	if !ok {
		return notFound(c)
	}
	req, ok, err := h.parseItem(c)
	if !ok {
		return err
	}
	req.Item.ID = id
	if err := h.service.UpdateItem(c.UserContext(), &req.Item, req.PromoIDs); err != nil {
		return respondError(c, h.logger, err, "update item")
	}
	return h.respondItem(c, fiber.StatusOK, id)
}

// HandleDeleteItem deletes an item.
func (h *CatalogHandler) HandleDeleteItem(c *fiber.Ctx) error {
	id, ok := itemID(c)
	if !ok {
		return notFound(c)
	}
	if err := h.service.DeleteItem(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err, "delete item")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CatalogHandler) parseItem(c *fiber.Ctx) (*ItemRequest, bool, error) {
	var req ItemRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, false, badRequest(c, "Invalid request body", err.Error())
	}
	if ok, err := validateStruct(c, h.validate, req.Item); !ok {
		return nil, false, err
	}
	return &req, true, nil
}

// respondItem reloads the stored item so the response carries its
// associations.
func (h *CatalogHandler) respondItem(c *fiber.Ctx, status int, id uint) error {
	item, err := h.service.GetItem(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "retrieve item")
	}
	return c.Status(status).JSON(item)
}

func itemID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func listLookup[T any](h *CatalogHandler, list func(context.Context) ([]T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := list(c.UserContext())
		if err != nil {
			return respondError(c, h.logger, err, "retrieve records")
		}
		return c.JSON(records)
	}
}

func createLookup[T any](h *CatalogHandler, name string, create func(context.Context, *T) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var record T
		if err := c.BodyParser(&record); err != nil {
			return badRequest(c, "Invalid request body", err.Error())
		}
		if ok, err := validateStruct(c, h.validate, record); !ok {
			return err
		}
		if err := create(c.UserContext(), &record); err != nil {
			return respondError(c, h.logger, err, "create "+name)
		}
		return c.Status(fiber.StatusCreated).JSON(record)
	}
}
