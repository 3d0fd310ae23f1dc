package middleware

import (
	"context"
	"errors"
	"strings"

	"resep/internal/models"
	"resep/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const identityKey = "identity"

// Identity is the authenticated caller, resolved once per request.
type Identity struct {
	UserID  string
	Email   string
	IsStaff bool
}

// IdentityFromUser builds the identity of user.
func IdentityFromUser(u *models.User) Identity {
	return Identity{UserID: u.ID, Email: u.Email, IsStaff: u.IsStaff || u.IsSuperuser}
}

// TokenValidator resolves a bearer token to a user.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*models.User, error)
}

// AuthRequired is a Fiber middleware that requires a valid bearer token.
// Both "Bearer <token>" and "Token <token>" headers are accepted.
func AuthRequired(validator TokenValidator, logger *zap.Logger) fiber.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "Authentication credentials were not provided.")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || (!strings.EqualFold(parts[0], "Bearer") && !strings.EqualFold(parts[0], "Token")) {
			return unauthorized(c, "Authorization header format must be 'Bearer <token>'")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return unauthorized(c, "Authorization header format must be 'Bearer <token>'")
		}

		user, err := validator.ValidateToken(c.UserContext(), tokenString)
		if err != nil {
			if errors.Is(err, services.ErrInvalidToken) {
				logger.Debug("token rejected", zap.Error(err))
				return unauthorized(c, "Invalid token.")
			}
			logger.Error("token validation failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal server error",
			})
		}

		c.Locals(identityKey, IdentityFromUser(user))
		return c.Next()
	}
}

// StaffRequired rejects authenticated callers that are not staff. It must
// run after AuthRequired.
func StaffRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := CurrentIdentity(c)
		if !ok {
			return unauthorized(c, "Authentication credentials were not provided.")
		}
		if !id.IsStaff {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "You do not have permission to perform this action.",
			})
		}
		return c.Next()
	}
}

// CurrentIdentity returns the identity stored by AuthRequired.
func CurrentIdentity(c *fiber.Ctx) (Identity, bool) {
	id, ok := c.Locals(identityKey).(Identity)
	return id, ok && id.UserID != ""
}

// WithIdentity adapts a handler that takes the caller's identity as an
// explicit argument. Requests without an identity get 401.
func WithIdentity(h func(c *fiber.Ctx, id Identity) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := CurrentIdentity(c)
		if !ok {
			return unauthorized(c, "Authentication credentials were not provided.")
		}
		return h(c, id)
	}
}

func unauthorized(c *fiber.Ctx, msg string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": msg,
	})
}
