package http

import (
	appSession "github.com/Anaselll/TeachMeApp/pkg/app/session"
	"github.com/Anaselll/TeachMeApp/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type updateSessionStatusHandler struct {
	*BaseHandler
	logger  *logrus.Logger
	updater appSession.StatusUpdater
}

func NewUpdateSessionStatusHandler(base *BaseHandler, logger *logrus.Logger, updater appSession.StatusUpdater) Handler {
	return &updateSessionStatusHandler{
		BaseHandler: base,
		logger:      logger,
		updater:     updater,
	}
}

// Handle @Summary Close a session
// @Description Moves a scheduled session to completed or canceled
// @Tags Sessions
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param session path string true "Session ID"
// @Param body body request.UpdateSessionStatusRequest true "Target status"
// @Success 200 {object} session.Session
// @Failure 400 {object} map[string]interface{} "Invalid status"
// @Failure 403 {object} map[string]interface{} "Caller is not a participant"
// @Failure 409 {object} map[string]interface{} "Session already closed"
// @Router /api/sessions/{session}/status [patch]
func (h *updateSessionStatusHandler) Handle(c *fiber.Ctx) error {
	caller, ok := h.Caller(c)
	if !ok {
		return h.Unauthorized(c)
	}
	sessionID, err := h.PathUUID(c, "session")
	if err != nil {
		return h.HandleError(c, err, "")
	}

	var req request.UpdateSessionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to parse request body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := h.RequestContext(c)
	defer cancel()

	updated, err := h.updater.Update(ctx, caller, sessionID, req.ParsedStatus)
	if err != nil {
		return h.HandleError(c, err, "error updating session status")
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}
