package http

import (
	appSession "github.com/Anaselll/TeachMeApp/pkg/app/session"
	"github.com/Anaselll/TeachMeApp/pkg/domain"
	domainSession "github.com/Anaselll/TeachMeApp/pkg/domain/session"
	"github.com/Anaselll/TeachMeApp/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type listSessionsHandler struct {
	*BaseHandler
	logger *logrus.Logger
	lister appSession.Lister
}

func NewListSessionsHandler(base *BaseHandler, logger *logrus.Logger, lister appSession.Lister) Handler {
	return &listSessionsHandler{
		BaseHandler: base,
		logger:      logger,
		lister:      lister,
	}
}

// Handle @Summary List sessions
// @Description Lists the caller's sessions as student or tutor, hydrated with offer, student and tutor
// @Tags Sessions
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param role query string true "student or tutor"
// @Param status query string false "scheduled, completed, canceled (closed is an alias of canceled)"
// @Param userId query string false "Defaults to the caller"
// @Success 200 {array} session.Session
// @Failure 400 {object} map[string]interface{} "Invalid query"
// @Failure 403 {object} map[string]interface{} "userId is not the caller"
// @Router /api/sessions [get]
func (h *listSessionsHandler) Handle(c *fiber.Ctx) error {
	caller, ok := h.Caller(c)
	if !ok {
		return h.Unauthorized(c)
	}

	var query request.ListSessionsQuery
	if err := c.QueryParser(&query); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid query parameters"})
	}
	if err := query.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if query.User == uuid.Nil {
		query.User = caller
	}
	if query.User != caller {
		return h.HandleError(c, domain.NewForbiddenError("sessions can only be listed for the authenticated user"), "")
	}

	ctx, cancel := h.RequestContext(c)
	defer cancel()

	sessions, err := h.lister.List(ctx, domainSession.ListFilter{
		Role:   query.ParsedRole,
		UserID: query.User,
		Status: query.ParsedStatus,
	})
	if err != nil {
		return h.HandleError(c, err, "error listing sessions")
	}
	return c.Status(fiber.StatusOK).JSON(sessions)
}
