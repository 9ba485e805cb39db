package http

import (
	appSession "github.com/Anaselll/TeachMeApp/pkg/app/session"
	"github.com/Anaselll/TeachMeApp/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type signalReadyHandler struct {
	*BaseHandler
	logger   *logrus.Logger
	signaler appSession.ReadinessSignaler
}

func NewSignalReadyHandler(base *BaseHandler, logger *logrus.Logger, signaler appSession.ReadinessSignaler) Handler {
	return &signalReadyHandler{
		BaseHandler: base,
		logger:      logger,
		signaler:    signaler,
	}
}

// Handle @Summary Signal readiness
// @Description Sets the caller's readiness flag. The chat becomes active once both participants are ready.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param session path string true "Session ID"
// @Param body body request.ReadyRequest true "Role played by the caller"
// @Success 200 {object} map[string]interface{} "message and ready flag"
// @Failure 400 {object} map[string]interface{} "Invalid role"
// @Failure 403 {object} map[string]interface{} "Caller does not play this role"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /api/sessions/{session}/room/ready [post]
func (h *signalReadyHandler) Handle(c *fiber.Ctx) error {
	caller, ok := h.Caller(c)
	if !ok {
		return h.Unauthorized(c)
	}
	sessionID, err := h.PathUUID(c, "session")
	if err != nil {
		return h.HandleError(c, err, "")
	}

	var req request.ReadyRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to parse request body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := h.RequestContext(c)
	defer cancel()

	result, err := h.signaler.Signal(ctx, caller, sessionID, req.ParsedRole)
	if err != nil {
		return h.HandleError(c, err, "error updating session readiness")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "session is ready",
		"ready":   result.Ready,
	})
}
