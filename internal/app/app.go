// Package app wires repositories, services and handlers into a Fiber app.
package app

import (
	"errors"
	"time"

	"resep/internal/config"
	"resep/internal/handlers"
	"resep/internal/middleware"
	"resep/internal/models"
	"resep/internal/repositories"
	"resep/internal/services"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services bundles the domain services the HTTP layer is built on.
type Services struct {
	Auth        *services.AuthService
	Tags        *services.ResourceService[models.Tag]
	Ingredients *services.ResourceService[models.Ingredient]
	Recipes     *services.RecipeService
	Catalog     *services.CatalogService
}

// NewServices builds the services on top of the GORM repositories.
// publisher may be nil to disable events.
func NewServices(cfg *config.Config, db *gorm.DB, publisher services.EventPublisher, logger *zap.Logger) *Services {
	userRepo := repositories.NewGORMUserRepository(db)
	tokenRepo := repositories.NewGORMTokenRepository(db)
	tagRepo := repositories.NewGORMOwnedRepository[models.Tag](db)
	ingredientRepo := repositories.NewGORMOwnedRepository[models.Ingredient](db)
	recipeRepo := repositories.NewGORMRecipeRepository(db)

	tags := services.NewResourceService[models.Tag](services.TagKind, tagRepo, logger)
	ingredients := services.NewResourceService[models.Ingredient](services.IngredientKind, ingredientRepo, logger)

	return &Services{
		Auth:        services.NewAuthService(userRepo, tokenRepo, cfg.JWTSecret, cfg.TokenTTL, publisher, logger),
		Tags:        tags,
		Ingredients: ingredients,
		Recipes:     services.NewRecipeService(recipeRepo, tags, ingredients, publisher, logger),
		Catalog: services.NewCatalogService(
			repositories.NewGORMItemRepository(db),
			repositories.NewGORMLookupRepository[models.Brand](db),
			repositories.NewGORMLookupRepository[models.Category](db),
			repositories.NewGORMLookupRepository[models.Promo](db),
		),
	}
}

// Options tune the HTTP app.
type Options struct {
	// APIPrefix is prepended to every API route, e.g. "/api".
	APIPrefix string
	// AccessLog enables the per-request access log.
	AccessLog bool
	// EventsEnabled is reported by the health check.
	EventsEnabled bool
}

// New creates the Fiber app with every route registered.
func New(svc *Services, opts Options, logger *zap.Logger) *fiber.App {
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               "resep",
		StrictRouting:         false,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
	})

	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(fiberlogger.New())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		events := "disabled"
		if opts.EventsEnabled {
			events = "enabled"
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": events,
		})
	})

	api := app.Group(opts.APIPrefix)
	auth := middleware.AuthRequired(svc.Auth, logger)

	handlers.NewAuthHandler(svc.Auth, logger).RegisterRoutes(api, auth)
	handlers.NewResourceHandler(svc.Tags, logger).RegisterRoutes(api, "/recipe/tags", auth)
	handlers.NewResourceHandler(svc.Ingredients, logger).RegisterRoutes(api, "/recipe/ingredients", auth)
	handlers.NewRecipeHandler(svc.Recipes, logger).RegisterRoutes(api, "/recipe/recipes", auth)
	handlers.NewCatalogHandler(svc.Catalog, logger).RegisterRoutes(api, auth)

	return app
}

// errorHandler renders errors that escape the handlers, including Fiber's
// own 404 and 405, as JSON.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed", zap.String("method", c.Method()), zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(code).JSON(fiber.Map{"message": message})
	}
}
