package http

import (
	"context"
	"strconv"
	"time"

	appMessage "github.com/Anaselll/TeachMeApp/pkg/app/message"
	"github.com/Anaselll/TeachMeApp/pkg/common"
	"github.com/Anaselll/TeachMeApp/pkg/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultRequestTimeout = 10 * time.Second

type BaseHandler struct {
	logger  *logrus.Logger
	timeout time.Duration
}

func NewBaseHandler(logger *logrus.Logger, timeout time.Duration) *BaseHandler {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &BaseHandler{logger: logger, timeout: timeout}
}

// RequestContext bounds a lifecycle or message operation by the configured timeout.
func (h *BaseHandler) RequestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context(), h.timeout)
}

// Caller returns the authenticated user set by the auth middleware.
func (h *BaseHandler) Caller(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(string(common.CallerIDContextKey)).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func (h *BaseHandler) Unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
}

func (h *BaseHandler) PathUUID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(param, "must be a valid uuid")
	}
	return id, nil
}

// HandleError maps a service error to its status code. Anything that is not a
// domain error is answered with fallback and a 500.
func (h *BaseHandler) HandleError(c *fiber.Ctx, err error, fallback string) error {
	if limited, ok := appMessage.IsRateLimitedError(err); ok {
		retryAfter := int(limited.RetryAfter.Round(time.Second) / time.Second)
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": limited.Error()})
	}

	switch {
	case domain.IsValidationError(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case domain.IsNotFoundError(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case domain.IsForbiddenError(err):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case domain.IsConflictError(err):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	h.logger.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error(fallback)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
}
