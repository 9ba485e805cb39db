package http

import (
	appMessage "github.com/Anaselll/TeachMeApp/pkg/app/message"
	"github.com/Anaselll/TeachMeApp/pkg/common"
	domainMessage "github.com/Anaselll/TeachMeApp/pkg/domain/message"
	"github.com/Anaselll/TeachMeApp/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type listMessagesHandler struct {
	*BaseHandler
	logger      *logrus.Logger
	lister      appMessage.Lister
	maxPageSize int
}

func NewListMessagesHandler(base *BaseHandler, logger *logrus.Logger, lister appMessage.Lister, maxPageSize int) Handler {
	return &listMessagesHandler{
		BaseHandler: base,
		logger:      logger,
		lister:      lister,
		maxPageSize: maxPageSize,
	}
}

// Handle @Summary Fetch messages
// @Description Returns the session transcript in creation order. Without limit and after the whole history is returned.
// @Tags Messages
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param session_id path string true "Session ID"
// @Param limit query int false "Page size"
// @Param after query string false "Cursor from X-Next-Cursor"
// @Success 200 {array} message.Message
// @Header 200 {string} X-Next-Cursor "Cursor of the next page"
// @Failure 400 {object} map[string]interface{} "Invalid pagination"
// @Failure 403 {object} map[string]interface{} "Caller is not a participant"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /api/sessions/{session_id}/messages [get]
func (h *listMessagesHandler) Handle(c *fiber.Ctx) error {
	caller, ok := h.Caller(c)
	if !ok {
		return h.Unauthorized(c)
	}
	sessionID, err := h.PathUUID(c, "session_id")
	if err != nil {
		return h.HandleError(c, err, "")
	}

	var query request.ListMessagesQuery
	if err := c.QueryParser(&query); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid query parameters"})
	}
	if err := query.Validate(h.maxPageSize); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := h.RequestContext(c)
	defer cancel()

	page, err := h.lister.List(ctx, caller, sessionID, domainMessage.Page{After: query.AfterSeq, Limit: query.Limit})
	if err != nil {
		return h.HandleError(c, err, "error fetching messages")
	}
	if page.NextCursor != "" {
		c.Set(common.NextCursorHeader, page.NextCursor)
	}
	return c.Status(fiber.StatusOK).JSON(page.Messages)
}
