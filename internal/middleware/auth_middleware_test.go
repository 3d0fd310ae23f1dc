package middleware_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"resep/internal/middleware"
	"resep/internal/models"
	"resep/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newApp(validator middleware.TokenValidator) *fiber.App {
	app := fiber.New()
	auth := middleware.AuthRequired(validator, nil)
	app.Get("/me", auth, middleware.WithIdentity(func(c *fiber.Ctx, id middleware.Identity) error {
		return c.SendString(id.UserID)
	}))
	app.Get("/staff", auth, middleware.StaffRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/open", middleware.WithIdentity(func(c *fiber.Ctx, id middleware.Identity) error {
		return c.SendStatus(fiber.StatusOK)
	}))
	return app
}

func get(t *testing.T, app *fiber.App, path, authorization string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthRequired(t *testing.T) {
	validator := new(MockTokenValidator)
	user := &models.User{ID: "user-123", Email: "test@example.com"}
	validator.On("ValidateToken", mock.Anything, "good").Return(user, nil)
	validator.On("ValidateToken", mock.Anything, "bad").Return(nil, fmt.Errorf("%w: expired", services.ErrInvalidToken))
	validator.On("ValidateToken", mock.Anything, "broken").Return(nil, errors.New("database is down"))
	app := newApp(validator)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"bearer", "Bearer good", http.StatusOK},
		{"token scheme", "Token good", http.StatusOK},
		{"lower case scheme", "bearer good", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"no scheme", "good", http.StatusUnauthorized},
		{"unknown scheme", "Basic good", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer bad", http.StatusUnauthorized},
		{"validator failure", "Bearer broken", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := get(t, app, "/me", tc.header)
			defer resp.Body.Close()
			assert.Equal(t, tc.want, resp.StatusCode)
			if tc.want == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
			}
		})
	}
}

func TestStaffRequired(t *testing.T) {
	validator := new(MockTokenValidator)
	validator.On("ValidateToken", mock.Anything, "user").Return(&models.User{ID: "u1"}, nil)
	validator.On("ValidateToken", mock.Anything, "staff").Return(&models.User{ID: "u2", IsStaff: true}, nil)
	validator.On("ValidateToken", mock.Anything, "root").Return(&models.User{ID: "u3", IsSuperuser: true}, nil)
	app := newApp(validator)

	assert.Equal(t, http.StatusForbidden, get(t, app, "/staff", "Bearer user").StatusCode)
	assert.Equal(t, http.StatusNoContent, get(t, app, "/staff", "Bearer staff").StatusCode)
	assert.Equal(t, http.StatusNoContent, get(t, app, "/staff", "Bearer root").StatusCode)
}

func TestWithIdentityWithoutAuth(t *testing.T) {
	app := newApp(new(MockTokenValidator))
	assert.Equal(t, http.StatusUnauthorized, get(t, app, "/open", "").StatusCode)
}

func TestIdentityFromUser(t *testing.T) {
	id := middleware.IdentityFromUser(&models.User{ID: "u1", Email: "a@b.c", IsSuperuser: true})
	assert.Equal(t, middleware.Identity{UserID: "u1", Email: "a@b.c", IsStaff: true}, id)
}
