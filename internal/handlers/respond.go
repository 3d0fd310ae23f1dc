package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"resep/internal/repositories"
	"resep/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// NewValidator returns a validator that reports fields by their JSON name
// and knows the "notblank" tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	return v
}

// validateStruct runs v over s and writes a 400 response on failure. The
// returned bool is true when s is valid.
func validateStruct(c *fiber.Ctx, v *validator.Validate, s any) (bool, error) {
	err := v.Struct(s)
	if err == nil {
		return true, nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return false, badRequest(c, "Validation failed", err.Error())
	}
	errorMessages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

func badRequest(c *fiber.Ctx, msg, detail string) error {
	body := fiber.Map{"message": msg}
	if detail != "" {
		body["error"] = detail
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Not found."})
}

// respondError maps service and repository errors to HTTP responses.
// Unexpected errors are logged and reported without detail.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error, action string) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  ve.Fields,
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Unable to authenticate with provided credentials",
		})
	case errors.Is(err, repositories.ErrNotFound):
		return notFound(c)
	}
	logger.Error(action+" failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not " + action,
	})
}
