package middleware

import (
	"github.com/Anaselll/TeachMeApp/pkg/common"
	infra "github.com/Anaselll/TeachMeApp/pkg/infra/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type websocketMiddleware struct {
	logger    *logrus.Logger
	semaphore *infra.Semaphore
}

// NewWebsocketMiddleware only lets upgrade requests through and caps the
// number of open relay sockets. The handler releases the slot on close.
func NewWebsocketMiddleware(logger *logrus.Logger, semaphore *infra.Semaphore) Middleware {
	return &websocketMiddleware{
		logger:    logger,
		semaphore: semaphore,
	}
}

func (m *websocketMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if !m.semaphore.Acquire() {
			m.logger.WithField("capacity", m.semaphore.Capacity()).
				Warn("maximum webSocket connections reached, rejecting connection")
			return fiber.ErrTooManyRequests
		}
		c.Locals(string(common.WsSemaphoreContextKey), m.semaphore)
		if err := c.Next(); err != nil {
			m.semaphore.Release()
			return err
		}
		return nil
	}
}
