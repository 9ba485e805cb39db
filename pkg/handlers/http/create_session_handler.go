package http

import (
	appSession "github.com/Anaselll/TeachMeApp/pkg/app/session"
	"github.com/Anaselll/TeachMeApp/pkg/common"
	"github.com/Anaselll/TeachMeApp/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const idempotentReplayHeader = "Idempotent-Replayed"

type createSessionHandler struct {
	*BaseHandler
	logger  *logrus.Logger
	creator appSession.Creator
}

func NewCreateSessionHandler(base *BaseHandler, logger *logrus.Logger, creator appSession.Creator) Handler {
	return &createSessionHandler{
		BaseHandler: base,
		logger:      logger,
		creator:     creator,
	}
}

// Handle @Summary Create a session from an offer
// @Description Books the offer: creates a scheduled session and marks the offer accepted
// @Tags Sessions
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param Idempotency-Key header string false "Replays the original result for retried submissions"
// @Param session body request.CreateSessionRequest true "Session data"
// @Success 201 {object} map[string]interface{} "Session created"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 403 {object} map[string]interface{} "Caller is not the student or the tutor"
// @Failure 404 {object} map[string]interface{} "Offer not found"
// @Failure 409 {object} map[string]interface{} "Offer already accepted"
// @Router /api/sessions/create [post]
func (h *createSessionHandler) Handle(c *fiber.Ctx) error {
	caller, ok := h.Caller(c)
	if !ok {
		return h.Unauthorized(c)
	}

	var req request.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to parse request body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := h.RequestContext(c)
	defer cancel()

	result, err := h.creator.Create(ctx, caller, &req, c.Get(common.IdempotencyKeyHeader))
	if err != nil {
		return h.HandleError(c, err, "error creating session")
	}
	if result.Replayed {
		c.Set(idempotentReplayHeader, "true")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "session created successfully",
		"offers":     result.OpenOffers,
		"session_id": result.SessionID,
	})
}
