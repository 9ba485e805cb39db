package router

import (
	"errors"
	"time"

	_ "github.com/Anaselll/TeachMeApp/docs"
	handlers "github.com/Anaselll/TeachMeApp/pkg/handlers/http"
	wsHandlers "github.com/Anaselll/TeachMeApp/pkg/handlers/websocket"
	"github.com/Anaselll/TeachMeApp/pkg/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

var (
	ErrInvalidHandlerTransport = errors.New("invalid handler transport")
)

type APIRouterDI struct {
	// Global runs on every route, in order.
	Global              *middleware.Transport
	AuthMiddleware      middleware.Middleware
	WebsocketMiddleware middleware.Middleware
	HandlerTransport    *handlers.HandlerTransport
	WSHandlerTransport  wsHandlers.HandlerTransport
	// SwaggerURL defaults to the registered doc.json.
	SwaggerURL          string
}

type apiRouter struct {
	di APIRouterDI
}

func NewAPIRouter(di APIRouterDI) ServerRouter {
	return &apiRouter{di: di}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	if r.di.HandlerTransport == nil || r.di.WSHandlerTransport == nil {
		return ErrInvalidHandlerTransport
	}
	handlerTransport := r.di.HandlerTransport
	wsTransport, ok := r.di.WSHandlerTransport.GetTransport().(*wsHandlers.HandlerTransportDTO)
	if !ok {
		return ErrInvalidHandlerTransport
	}

	if r.di.Global != nil {
		if global := r.di.Global.GetMiddlewares(); len(global) > 0 {
			router.Use(global...)
		}
	}

	router.Get("/__/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	router.Get("/health", handlerTransport.HealthHandler.Handle)
	router.Get("/version", handlerTransport.GetVersionHandler.Handle)

	router.Get("/docs/*", swagger.New(swagger.Config{
		URL: r.di.SwaggerURL,
	}))

	router.Get("/ws",
		r.di.AuthMiddleware.Middleware(),
		r.di.WebsocketMiddleware.Middleware(),
		websocket.New(wsTransport.RelayHandler.Handle),
	)

	api := router.Group("/api", r.di.AuthMiddleware.Middleware())
	{
		sessions := api.Group("/sessions")
		{
			sessions.Post("/create", handlerTransport.CreateSessionHandler.Handle)
			sessions.Get("", handlerTransport.ListSessionsHandler.Handle)
			sessions.Post("/:session/room/ready", handlerTransport.SignalReadyHandler.Handle)
			sessions.Patch("/:session/status", handlerTransport.UpdateSessionStatusHandler.Handle)

			sessions.Get("/:session_id/messages", handlerTransport.ListMessagesHandler.Handle)
			sessions.Post("/:session_id/messages", handlerTransport.SendMessageHandler.Handle)
		}
	}
	return nil
}
