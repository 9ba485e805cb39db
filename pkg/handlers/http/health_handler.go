package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Pinger is implemented by the database and the cache client.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthHandler struct {
	logger   *logrus.Logger
	checks   map[string]Pinger
	deadline time.Duration
}

func NewHealthHandler(logger *logrus.Logger, checks map[string]Pinger) Handler {
	return &healthHandler{logger: logger, checks: checks, deadline: 2 * time.Second}
}

// Handle @Summary Health check
// @Description Reports the status of the database and the cache
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *healthHandler) Handle(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.deadline)
	defer cancel()

	status := fiber.StatusOK
	components := fiber.Map{}
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			h.logger.WithError(err).WithField("component", name).Warn("health check failed")
			components[name] = "down"
			status = fiber.StatusServiceUnavailable
			continue
		}
		components[name] = "up"
	}

	state := "ok"
	if status != fiber.StatusOK {
		state = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{
		"status":     state,
		"components": components,
		"time":       time.Now().UTC().Format(time.RFC3339),
	})
}
