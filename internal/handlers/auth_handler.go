package handlers

import (
	"resep/internal/middleware"
	"resep/internal/models"
	"resep/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP requests for user accounts and tokens.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{
		authService: authService,
		validate:    NewValidator(),
		logger:      logger.Named("user"),
	}
}

// RegisterRoutes registers the user routes. auth guards the routes that act
// on the caller's own account.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	userRoutes := router.Group("/user")
	userRoutes.Post("/create", h.HandleCreate)
	userRoutes.Post("/token", h.HandleToken)
	userRoutes.Get("/me", auth, middleware.WithIdentity(h.HandleMe))
	userRoutes.Patch("/me", auth, middleware.WithIdentity(h.HandleUpdateMe))
	userRoutes.Put("/me", auth, middleware.WithIdentity(h.HandleUpdateMe))
}

// CreateUserRequest represents the request body for signup.
type CreateUserRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email,max=255"`
	Password string `json:"password" form:"password" validate:"required,min=5"`
	Name     string `json:"name" form:"name" validate:"max=255"`
}

// TokenRequest represents the request body for obtaining a token.
type TokenRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// UpdateUserRequest represents a partial update of the caller's account.
type UpdateUserRequest struct {
	Name     *string `json:"name" form:"name" validate:"omitempty,max=255"`
	Password *string `json:"password" form:"password" validate:"omitempty,min=5"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

// HandleCreate registers a new user. The password is never echoed back.
func (h *AuthHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Debug("invalid signup body", zap.Error(err))
		return badRequest(c, "Invalid request body", err.Error())
	}
	if ok, err := validateStruct(c, h.validate, req); !ok {
		return err
	}

	user, err := h.authService.CreateUser(c.UserContext(), req.Email, req.Password, services.NewUserFields{Name: req.Name})
	if err != nil {
		return respondError(c, h.logger, err, "create user")
	}
	return c.Status(fiber.StatusCreated).JSON(newUserResponse(user))
}

// HandleToken exchanges credentials for the caller's bearer token.
func (h *AuthHandler) HandleToken(c *fiber.Ctx) error {
	var req TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err.Error())
	}
	if ok, err := validateStruct(c, h.validate, req); !ok {
		return err
	}

	token, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, h.logger, err, "issue token")
	}
	return c.JSON(fiber.Map{"token": token})
}

// HandleMe returns the caller's own account.
func (h *AuthHandler) HandleMe(c *fiber.Ctx, id middleware.Identity) error {
	user, err := h.authService.GetUser(c.UserContext(), id.UserID)
	if err != nil {
		return respondError(c, h.logger, err, "retrieve user")
	}
	return c.JSON(newUserResponse(user))
}

// HandleUpdateMe changes the caller's name or password.
func (h *AuthHandler) HandleUpdateMe(c *fiber.Ctx, id middleware.Identity) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err.Error())
	}
	if ok, err := validateStruct(c, h.validate, req); !ok {
		return err
	}

	user, err := h.authService.UpdateUser(c.UserContext(), id.UserID, services.UserUpdate{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, h.logger, err, "update user")
	}
	return c.JSON(newUserResponse(user))
}
