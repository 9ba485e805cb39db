package websocket

import (
	"context"
	"encoding/json"
	"time"

	appRelay "github.com/Anaselll/TeachMeApp/pkg/app/relay"
	appSession "github.com/Anaselll/TeachMeApp/pkg/app/session"
	"github.com/Anaselll/TeachMeApp/pkg/common"
	"github.com/Anaselll/TeachMeApp/pkg/config"
	"github.com/Anaselll/TeachMeApp/pkg/domain"
	infraWebsocket "github.com/Anaselll/TeachMeApp/pkg/infra/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type relayHandler struct {
	logger         *logrus.Logger
	hub            appRelay.Hub
	guard          appSession.ParticipantGuard
	cfg            config.WebSocketConfig
	requestTimeout time.Duration
}

func NewRelayHandler(
	logger *logrus.Logger,
	hub appRelay.Hub,
	guard appSession.ParticipantGuard,
	cfg config.WebSocketConfig,
	requestTimeout time.Duration,
) Handler {
	return &relayHandler{
		logger:         logger,
		hub:            hub,
		guard:          guard,
		cfg:            cfg,
		requestTimeout: requestTimeout,
	}
}

func (h *relayHandler) Handle(c *websocket.Conn) {
	if semaphore, ok := c.Locals(string(common.WsSemaphoreContextKey)).(*infraWebsocket.Semaphore); ok {
		defer semaphore.Release()
	}

	caller, ok := c.Locals(string(common.CallerIDContextKey)).(uuid.UUID)
	if !ok || caller == uuid.Nil {
		h.logger.Error("missing caller in relay connection")
		_ = c.Close()
		return
	}

	member := h.hub.Connect(caller, h.cfg.SendBuffer)
	logger := h.logger.WithFields(logrus.Fields{
		"member_id": member.ID,
		"user_id":   caller,
	})
	logger.Debug("relay connection opened")

	// The library recycles c once Handle returns, so the pump must be gone
	// by then.
	pumpDone := make(chan struct{})
	go func() {
		defer close(pumpDone)
		if err := member.WritePump(c, h.cfg.PingPeriod, h.cfg.WriteWait); err != nil {
			logger.WithError(err).Debug("relay write failed")
			_ = c.Close()
		}
	}()
	defer func() {
		h.hub.Disconnect(member)
		<-pumpDone
	}()

	if h.cfg.MaxMessageSize > 0 {
		c.SetReadLimit(h.cfg.MaxMessageSize)
	}
	if err := c.SetReadDeadline(time.Now().Add(h.cfg.PongWait)); err != nil {
		logger.WithError(err).Error("failed to set read deadline")
		return
	}
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	})

	for {
		_, frame, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WithError(err).Debug("relay connection closed unexpectedly")
			}
			return
		}
		h.process(member, frame)
	}
}

func (h *relayHandler) process(member *appRelay.Member, frame []byte) {
	env, err := infraWebsocket.DecodeEnvelope(frame)
	if err != nil {
		h.reject(member, err.Error())
		return
	}

	switch env.Event {
	case infraWebsocket.EventJoinSession:
		h.join(member, env.Data)
	case infraWebsocket.EventSendMessage:
		h.send(member, env.Data)
	default:
		h.reject(member, "unknown event "+env.Event)
	}
}

func (h *relayHandler) join(member *appRelay.Member, data json.RawMessage) {
	var payload infraWebsocket.JoinSessionData
	if err := json.Unmarshal(data, &payload); err != nil {
		h.reject(member, "join_session expects {session_id}")
		return
	}
	sessionID, err := uuid.Parse(payload.SessionID)
	if err != nil {
		h.reject(member, "session_id must be a valid uuid")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.requestTimeout)
	defer cancel()
	if _, err := h.guard.Authorize(ctx, sessionID, member.UserID); err != nil {
		switch {
		case domain.IsNotFoundError(err), domain.IsForbiddenError(err):
			h.reject(member, err.Error())
		default:
			h.logger.WithError(err).WithField("session_id", sessionID).Error("failed to authorize room join")
			h.reject(member, "could not join the session")
		}
		return
	}

	h.hub.Join(member, sessionID.String())
	h.logger.WithFields(logrus.Fields{
		"member_id":  member.ID,
		"session_id": sessionID,
	}).Debug("member joined room")
}

func (h *relayHandler) send(member *appRelay.Member, data json.RawMessage) {
	var payload infraWebsocket.RoomPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.reject(member, "sendMessage expects an object with session_id")
		return
	}
	sessionID, err := uuid.Parse(payload.SessionID)
	if err != nil {
		h.reject(member, "session_id must be a valid uuid")
		return
	}
	room := sessionID.String()
	if !h.hub.InRoom(member, room) {
		h.reject(member, "join the session before sending messages")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.requestTimeout)
	defer cancel()
	h.hub.Publish(ctx, member, room, infraWebsocket.EventReceiveMessage, data)
}

func (h *relayHandler) reject(member *appRelay.Member, message string) {
	frame, err := infraWebsocket.EncodeEnvelope(infraWebsocket.EventError, infraWebsocket.ErrorData{Message: message})
	if err != nil {
		return
	}
	member.Send(frame)
}
