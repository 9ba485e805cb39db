package router_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	handlers "github.com/Anaselll/TeachMeApp/pkg/handlers/http"
	wsHandlers "github.com/Anaselll/TeachMeApp/pkg/handlers/websocket"
	"github.com/Anaselll/TeachMeApp/pkg/middleware"
	"github.com/Anaselll/TeachMeApp/pkg/server/router"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedHandler string

func (h namedHandler) Handle(c *fiber.Ctx) error {
	return c.SendString(string(h))
}

type noopWSHandler struct{}

func (noopWSHandler) Handle(*websocket.Conn) {}

// rejectingAuth lets requests through only when the test header is set.
type rejectingAuth struct{}

func (rejectingAuth) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("X-Test-Auth") == "" {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.Next()
	}
}

type passthrough struct{}

func (passthrough) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error { return c.Next() }
}

func newRoutedApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	r := router.NewAPIRouter(router.APIRouterDI{
		Global:              middleware.NewTransport(passthrough{}),
		AuthMiddleware:      rejectingAuth{},
		WebsocketMiddleware: passthrough{},
		HandlerTransport: &handlers.HandlerTransport{
			CreateSessionHandler:       namedHandler("create"),
			ListSessionsHandler:        namedHandler("list"),
			SignalReadyHandler:         namedHandler("ready"),
			UpdateSessionStatusHandler: namedHandler("status"),
			ListMessagesHandler:        namedHandler("messages"),
			SendMessageHandler:         namedHandler("send"),
			GetVersionHandler:          namedHandler("version"),
			HealthHandler:              namedHandler("health"),
		},
		WSHandlerTransport: &wsHandlers.HandlerTransportDTO{RelayHandler: noopWSHandler{}},
		SwaggerURL:         "doc.json",
	})
	require.NoError(t, r.BuildRoutes(app))
	return app
}

func TestAPIRouter_Routes(t *testing.T) {
	app := newRoutedApp(t)

	cases := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodPost, "/api/sessions/create", "create"},
		{http.MethodGet, "/api/sessions", "list"},
		{http.MethodPost, "/api/sessions/7f1c7f1e-0000-4000-8000-000000000001/room/ready", "ready"},
		{http.MethodPatch, "/api/sessions/7f1c7f1e-0000-4000-8000-000000000001/status", "status"},
		{http.MethodGet, "/api/sessions/7f1c7f1e-0000-4000-8000-000000000001/messages", "messages"},
		{http.MethodPost, "/api/sessions/7f1c7f1e-0000-4000-8000-000000000001/messages", "send"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			req.Header.Set("X-Test-Auth", "yes")
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tc.want, string(body))
		})
	}
}

func TestAPIRouter_APIRequiresAuth(t *testing.T) {
	app := newRoutedApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/sessions", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ws", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAPIRouter_PublicRoutes(t *testing.T) {
	app := newRoutedApp(t)

	for path, want := range map[string]string{"/health": "health", "/version": "version"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, want, string(body))
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/__/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAPIRouter_InvalidTransport(t *testing.T) {
	r := router.NewAPIRouter(router.APIRouterDI{})
	assert.ErrorIs(t, r.BuildRoutes(fiber.New()), router.ErrInvalidHandlerTransport)
}
