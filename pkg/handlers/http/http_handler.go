package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Session
	CreateSessionHandler       Handler
	ListSessionsHandler        Handler
	SignalReadyHandler         Handler
	UpdateSessionStatusHandler Handler

	// Message
	ListMessagesHandler Handler
	SendMessageHandler  Handler

	// System
	GetVersionHandler Handler
	HealthHandler     Handler
}
