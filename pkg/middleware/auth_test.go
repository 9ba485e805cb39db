package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Anaselll/TeachMeApp/pkg/common"
	"github.com/Anaselll/TeachMeApp/pkg/config"
	"github.com/Anaselll/TeachMeApp/pkg/infra/auth/jwt"
	"github.com/Anaselll/TeachMeApp/pkg/infra/auth/jwt/mocks"
	"github.com/Anaselll/TeachMeApp/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthApp(manager jwt.Manager, caller *uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewAuthMiddleware(logrus.New(), manager).Middleware())
	app.Get("/test", func(c *fiber.Ctx) error {
		if id, ok := c.Locals(string(common.CallerIDContextKey)).(uuid.UUID); ok && caller != nil {
			*caller = id
		}
		return c.SendString("OK")
	})
	return app
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	manager := mocks.NewManager(t)
	app := newAuthApp(manager, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	manager := mocks.NewManager(t)
	app := newAuthApp(manager, nil)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Basic abc")
	resp, err := app.Test(req)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	manager := mocks.NewManager(t)
	manager.On("ValidateToken", "bad-token").Return(nil, jwt.ErrInvalidToken)
	app := newAuthApp(manager, nil)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	resp, err := app.Test(req)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_BearerToken(t *testing.T) {
	userID := uuid.New()
	manager := mocks.NewManager(t)
	manager.On("ValidateToken", "good-token").Return(&jwt.Claims{UserID: userID.String()}, nil)

	var caller uuid.UUID
	app := newAuthApp(manager, &caller)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, userID, caller)
}

func TestAuthMiddleware_QueryToken(t *testing.T) {
	userID := uuid.New()
	manager := jwt.NewJwtManager(&config.ServerConfig{SecretKey: "secret", TokenTTL: time.Hour})
	token, err := manager.CreateToken(userID, "ada@example.com")
	require.NoError(t, err)

	var caller uuid.UUID
	app := newAuthApp(manager, &caller)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test?token="+token, nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, userID, caller)
}

func TestAuthMiddleware_ClaimsWithoutUser(t *testing.T) {
	manager := mocks.NewManager(t)
	manager.On("ValidateToken", "odd-token").Return(&jwt.Claims{UserID: "not-a-uuid"}, nil)
	app := newAuthApp(manager, nil)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer odd-token")
	resp, err := app.Test(req)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
