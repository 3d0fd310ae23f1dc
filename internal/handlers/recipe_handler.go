package handlers

import (
	"resep/internal/middleware"
	"resep/internal/models"
	"resep/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RecipeHandler handles HTTP requests for the caller's recipes.
type RecipeHandler struct {
	service  *services.RecipeService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(service *services.RecipeService, logger *zap.Logger) *RecipeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeHandler{
		service:  service,
		validate: NewValidator(),
		logger:   logger.Named("recipe"),
	}
}

// RegisterRoutes mounts the recipe collection at path.
func (h *RecipeHandler) RegisterRoutes(router fiber.Router, path string, auth fiber.Handler) {
	routes := router.Group(path, auth)
	routes.Get("/", middleware.WithIdentity(h.HandleList))
	routes.Post("/", middleware.WithIdentity(h.HandleCreate))
	routes.Get("/:id", middleware.WithIdentity(h.HandleGet))
}

// RecipeRequest is the payload for creating a recipe. Tags and ingredients
// are ids of the caller's own records.
type RecipeRequest struct {
	Name        string  `json:"name" form:"name" validate:"required,notblank,max=255"`
	TimeMinutes int     `json:"time_minutes" form:"time_minutes" validate:"gte=0"`
	Price       float64 `json:"price" form:"price" validate:"gte=0"`
	Link        string  `json:"link" form:"link" validate:"omitempty,url,max=255"`
	Tags        []uint  `json:"tags" form:"tags"`
	Ingredients []uint  `json:"ingredients" form:"ingredients"`
}

// RecipeSummary is the list representation: related records by id.
type RecipeSummary struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link"`
	Tags        []uint  `json:"tags"`
	Ingredients []uint  `json:"ingredients"`
}

// RecipeDetail is the single-record representation: related records nested.
type RecipeDetail struct {
	ID          uint                `json:"id"`
	Name        string              `json:"name"`
	TimeMinutes int                 `json:"time_minutes"`
	Price       float64             `json:"price"`
	Link        string              `json:"link"`
	Tags        []models.Tag        `json:"tags"`
	Ingredients []models.Ingredient `json:"ingredients"`
}

// NewRecipeSummary builds the list representation of r.
func NewRecipeSummary(r *models.Recipe) RecipeSummary {
	out := RecipeSummary{
		ID:          r.ID,
		Name:        r.Name,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        make([]uint, 0, len(r.Tags)),
		Ingredients: make([]uint, 0, len(r.Ingredients)),
	}
	for _, t := range r.Tags {
		out.Tags = append(out.Tags, t.ID)
	}
	for _, i := range r.Ingredients {
		out.Ingredients = append(out.Ingredients, i.ID)
	}
	return out
}

// NewRecipeDetail builds the detail representation of r.
func NewRecipeDetail(r *models.Recipe) RecipeDetail {
	out := RecipeDetail{
		ID:          r.ID,
		Name:        r.Name,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        make([]models.Tag, 0, len(r.Tags)),
		Ingredients: make([]models.Ingredient, 0, len(r.Ingredients)),
	}
	for _, t := range r.Tags {
		out.Tags = append(out.Tags, *t)
	}
	for _, i := range r.Ingredients {
		out.Ingredients = append(out.Ingredients, *i)
	}
	return out
}

// HandleList returns the caller's recipes in id order.
func (h *RecipeHandler) HandleList(c *fiber.Ctx, id middleware.Identity) error {
	recipes, err := h.service.ListByOwner(c.UserContext(), id.UserID)
	if err != nil {
		return respondError(c, h.logger, err, "retrieve recipes")
	}
	out := make([]RecipeSummary, 0, len(recipes))
	for i := range recipes {
		out = append(out, NewRecipeSummary(&recipes[i]))
	}
	return c.JSON(out)
}

// HandleCreate stores a new recipe owned by the caller.
func (h *RecipeHandler) HandleCreate(c *fiber.Ctx, id middleware.Identity) error {
	var req RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err.Error())
	}
	if ok, err := validateStruct(c, h.validate, req); !ok {
		return err
	}

	recipe, err := h.service.Create(c.UserContext(), id.UserID, services.RecipeInput{
		Name:          req.Name,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		return respondError(c, h.logger, err, "create recipe")
	}
	return c.Status(fiber.StatusCreated).JSON(NewRecipeSummary(recipe))
}

// HandleGet returns one of the caller's recipes. Recipes of other users are
// reported as not found.
func (h *RecipeHandler) HandleGet(c *fiber.Ctx, id middleware.Identity) error {
	recipeID, err := c.ParamsInt("id")
	if err != nil || recipeID <= 0 {
		return notFound(c)
	}

	recipe, err := h.service.Get(c.UserContext(), id.UserID, uint(recipeID))
	if err != nil {
		return respondError(c, h.logger, err, "retrieve recipe")
	}
	return c.JSON(NewRecipeDetail(recipe))
}
