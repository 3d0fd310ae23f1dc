package handlers

import (
	"resep/internal/middleware"
	"resep/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ResourceHandler exposes list and create for one owner-scoped resource
// kind. Every request is answered from the caller's own records.
type ResourceHandler[T any] struct {
	service *services.ResourceService[T]
	logger  *zap.Logger
}

// NewResourceHandler creates a new ResourceHandler.
func NewResourceHandler[T any](service *services.ResourceService[T], logger *zap.Logger) *ResourceHandler[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceHandler[T]{
		service: service,
		logger:  logger.Named(service.Kind().Name),
	}
}

// RegisterRoutes mounts the collection at path. auth must resolve the
// caller's identity.
func (h *ResourceHandler[T]) RegisterRoutes(router fiber.Router, path string, auth fiber.Handler) {
	routes := router.Group(path, auth)
	routes.Get("/", middleware.WithIdentity(h.HandleList))
	routes.Post("/", middleware.WithIdentity(h.HandleCreate))
}

// ResourceRequest is the payload for creating a named resource. Any owner
// field sent by the client is ignored.
type ResourceRequest struct {
	Name string `json:"name" form:"name"`
}

// HandleList returns the caller's records, name descending.
func (h *ResourceHandler[T]) HandleList(c *fiber.Ctx, id middleware.Identity) error {
	items, err := h.service.ListByOwner(c.UserContext(), id.UserID)
	if err != nil {
		return respondError(c, h.logger, err, "retrieve "+h.service.Kind().Name+"s")
	}
	if items == nil {
		items = []T{}
	}
	return c.JSON(items)
}

// HandleCreate stores a new record owned by the caller.
func (h *ResourceHandler[T]) HandleCreate(c *fiber.Ctx, id middleware.Identity) error {
	var req ResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err.Error())
	}

	item, err := h.service.Create(c.UserContext(), id.UserID, req.Name)
	if err != nil {
		return respondError(c, h.logger, err, "create "+h.service.Kind().Name)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}
