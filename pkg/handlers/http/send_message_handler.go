package http

import (
	appMessage "github.com/Anaselll/TeachMeApp/pkg/app/message"
	"github.com/Anaselll/TeachMeApp/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type sendMessageHandler struct {
	*BaseHandler
	logger   *logrus.Logger
	appender appMessage.Appender
}

func NewSendMessageHandler(base *BaseHandler, logger *logrus.Logger, appender appMessage.Appender) Handler {
	return &sendMessageHandler{
		BaseHandler: base,
		logger:      logger,
		appender:    appender,
	}
}

// Handle @Summary Send a message
// @Description Persists a message of the session. Broadcasting it is done on the relay.
// @Tags Messages
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param session_id path string true "Session ID"
// @Param message body request.SendMessageRequest true "Message"
// @Success 201 {object} message.Message
// @Failure 400 {object} map[string]interface{} "Empty content or bad receiver"
// @Failure 403 {object} map[string]interface{} "Caller is not a participant"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Failure 429 {object} map[string]interface{} "Too many messages"
// @Router /api/sessions/{session_id}/messages [post]
func (h *sendMessageHandler) Handle(c *fiber.Ctx) error {
	caller, ok := h.Caller(c)
	if !ok {
		return h.Unauthorized(c)
	}
	sessionID, err := h.PathUUID(c, "session_id")
	if err != nil {
		return h.HandleError(c, err, "")
	}

	var req request.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to parse request body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := h.RequestContext(c)
	defer cancel()

	m, err := h.appender.Append(ctx, caller, sessionID, &req)
	if err != nil {
		return h.HandleError(c, err, "error sending message")
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}
