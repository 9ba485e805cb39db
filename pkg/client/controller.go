package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	domainMessage "github.com/Anaselll/TeachMeApp/pkg/domain/message"
	domainSession "github.com/Anaselll/TeachMeApp/pkg/domain/session"
	infraWebsocket "github.com/Anaselll/TeachMeApp/pkg/infra/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type State int

const (
	StateIdle State = iota
	StateWaitingForReady
	StateChatActive
)

func (s State) String() string {
	switch s {
	case StateWaitingForReady:
		return "waiting-for-ready"
	case StateChatActive:
		return "chat-active"
	default:
		return "idle"
	}
}

var (
	ErrNoSelection    = errors.New("no session selected")
	ErrUnknownSession = errors.New("session is not in the loaded list")
	ErrChatInactive   = errors.New("chat is not active for the selected session")
	ErrReadyWindow    = errors.New("readiness is only offered before the scheduled start")
	ErrEmptyContent   = errors.New("message content is empty")
)

// RelayMessage is what a participant publishes on the relay after the
// message was stored. Peers append it to their transcript as is.
type RelayMessage struct {
	ID         uuid.UUID `json:"id"`
	SessionID  uuid.UUID `json:"session_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// Controller drives one participant through the session list, the readiness
// handshake and the chat of the selected session.
type Controller struct {
	logger *logrus.Logger
	api    API
	relay  Relay
	self   uuid.UUID
	role   domainSession.Role
	now    func() time.Time

	mu         sync.Mutex
	sessions   map[uuid.UUID]*domainSession.Session
	order      []uuid.UUID
	selected   uuid.UUID
	state      State
	joined     map[uuid.UUID]bool
	transcript []domainMessage.Message
	seen       map[uuid.UUID]bool
	observer   func(infraWebsocket.Envelope)
}

func NewController(logger *logrus.Logger, api API, relay Relay, self uuid.UUID, role domainSession.Role) *Controller {
	return &Controller{
		logger:   logger,
		api:      api,
		relay:    relay,
		self:     self,
		role:     role,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*domainSession.Session),
		joined:   make(map[uuid.UUID]bool),
		seen:     make(map[uuid.UUID]bool),
	}
}

// Load fetches the caller's sessions for the given status tab.
func (c *Controller) Load(ctx context.Context, status domainSession.Status) ([]domainSession.Session, error) {
	sessions, err := c.api.ListSessions(ctx, c.role, status)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = c.order[:0]
	for i := range sessions {
		s := sessions[i]
		c.sessions[s.ID] = &s
		c.order = append(c.order, s.ID)
	}
	return sessions, nil
}

// Select opens a session: joins its relay room, fetches its history and
// moves to waiting-for-ready, or straight to chat-active when the chat is
// already running.
func (c *Controller) Select(ctx context.Context, sessionID uuid.UUID) error {
	c.mu.Lock()
	s, ok := c.sessions[sessionID]
	if !ok {
		c.mu.Unlock()
		return ErrUnknownSession
	}
	c.selected = sessionID
	c.transcript = nil
	c.seen = make(map[uuid.UUID]bool)
	if s.ChatActive {
		c.state = StateChatActive
	} else {
		c.state = StateWaitingForReady
	}
	c.mu.Unlock()

	if err := c.join(sessionID); err != nil {
		return err
	}
	return c.refreshHistory(ctx, sessionID)
}

// Sessions returns the loaded sessions in list order.
func (c *Controller) Sessions() []domainSession.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domainSession.Session, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.sessions[id])
	}
	return out
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Selected() uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Transcript returns a copy of the local transcript of the selected session.
func (c *Controller) Transcript() []domainMessage.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domainMessage.Message, len(c.transcript))
	copy(out, c.transcript)
	return out
}

// CanSignalReady is true for a scheduled session not yet started for which
// this participant has not signaled yet.
func (c *Controller) CanSignalReady(sessionID uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[sessionID]
	if !ok {
		return false
	}
	return c.readyOffered(s)
}

func (c *Controller) readyOffered(s *domainSession.Session) bool {
	if s.Status != domainSession.StatusScheduled || s.ChatActive || s.IsReady(c.role) {
		return false
	}
	return !s.ScheduledStart.Before(c.now())
}

// SignalReady signals readiness for the selected session and reports whether
// the chat became active.
func (c *Controller) SignalReady(ctx context.Context) (bool, error) {
	c.mu.Lock()
	sessionID := c.selected
	s, ok := c.sessions[sessionID]
	if sessionID == uuid.Nil || !ok {
		c.mu.Unlock()
		return false, ErrNoSelection
	}
	if !c.readyOffered(s) {
		c.mu.Unlock()
		return false, ErrReadyWindow
	}
	c.mu.Unlock()

	ready, err := c.api.SignalReady(ctx, sessionID, c.role)
	if err != nil {
		return false, fmt.Errorf("signal ready: %w", err)
	}

	c.mu.Lock()
	switch c.role {
	case domainSession.RoleStudent:
		s.StudentReady = true
	case domainSession.RoleTutor:
		s.TutorReady = true
	}
	c.mu.Unlock()

	if ready {
		if err := c.activate(ctx, sessionID); err != nil {
			return true, err
		}
	}
	return ready, nil
}

// Send stores a message for the peer of the selected session, then publishes
// it on the relay. A relay failure does not undo the stored message.
func (c *Controller) Send(ctx context.Context, content string) (*domainMessage.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	c.mu.Lock()
	sessionID := c.selected
	s, ok := c.sessions[sessionID]
	if sessionID == uuid.Nil || !ok {
		c.mu.Unlock()
		return nil, ErrNoSelection
	}
	if c.state != StateChatActive {
		c.mu.Unlock()
		return nil, ErrChatInactive
	}
	peer := s.PeerOf(c.self)
	c.mu.Unlock()

	msg, err := c.api.SendMessage(ctx, sessionID, c.self, peer, content)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	c.mu.Lock()
	if c.selected == sessionID {
		c.appendLocked(*msg)
	}
	c.mu.Unlock()

	if err := c.relay.Publish(sessionID, RelayMessage{
		ID:         msg.ID,
		SessionID:  sessionID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Content:    msg.Content,
		CreatedAt:  msg.CreatedAt,
	}); err != nil {
		c.logger.WithError(err).WithField("session_id", sessionID).Warn("failed to publish message on relay")
	}
	return msg, nil
}

// Observe registers fn to be called after each relay event was applied.
func (c *Controller) Observe(fn func(infraWebsocket.Envelope)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observer = fn
}

// Run consumes relay events until ctx is done or the relay closes.
func (c *Controller) Run(ctx context.Context) error {
	incoming := c.relay.Incoming()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case env, ok := <-incoming:
			if !ok {
				return nil
			}
			c.HandleEvent(ctx, env)
			c.mu.Lock()
			observer := c.observer
			c.mu.Unlock()
			if observer != nil {
				observer(env)
			}
		}
	}
}

// HandleEvent applies one relay event to the controller state.
func (c *Controller) HandleEvent(ctx context.Context, env infraWebsocket.Envelope) {
	switch env.Event {
	case infraWebsocket.EventReceiveMessage:
		c.receive(env.Data)
	case infraWebsocket.EventSessionReady:
		var data infraWebsocket.SessionReadyData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			c.logger.WithError(err).Debug("malformed session_ready event")
			return
		}
		sessionID, err := uuid.Parse(data.SessionID)
		if err != nil || !data.Ready {
			return
		}
		if err := c.activate(ctx, sessionID); err != nil {
			c.logger.WithError(err).WithField("session_id", sessionID).Warn("failed to open chat")
		}
	case infraWebsocket.EventError:
		var data infraWebsocket.ErrorData
		_ = json.Unmarshal(env.Data, &data)
		c.logger.WithField("message", data.Message).Warn("relay rejected a frame")
	}
}

func (c *Controller) receive(data json.RawMessage) {
	var incoming RelayMessage
	if err := json.Unmarshal(data, &incoming); err != nil {
		c.logger.WithError(err).Debug("malformed receiveMessage event")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if incoming.SessionID != c.selected || c.selected == uuid.Nil {
		return
	}
	c.appendLocked(domainMessage.Message{
		ID:         incoming.ID,
		SessionID:  incoming.SessionID,
		SenderID:   incoming.SenderID,
		ReceiverID: incoming.ReceiverID,
		Content:    incoming.Content,
		CreatedAt:  incoming.CreatedAt,
	})
}

// activate moves the session to chat-active. Only the selected session
// changes state; the others just remember the chat is running.
func (c *Controller) activate(ctx context.Context, sessionID uuid.UUID) error {
	c.mu.Lock()
	if s, ok := c.sessions[sessionID]; ok {
		s.StudentReady = true
		s.TutorReady = true
		s.ChatActive = true
	}
	if c.selected != sessionID || c.state == StateChatActive {
		c.mu.Unlock()
		return nil
	}
	c.state = StateChatActive
	c.mu.Unlock()

	if err := c.join(sessionID); err != nil {
		return err
	}
	return c.refreshHistory(ctx, sessionID)
}

func (c *Controller) join(sessionID uuid.UUID) error {
	c.mu.Lock()
	if c.joined[sessionID] {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	if err := c.relay.Join(sessionID); err != nil {
		return fmt.Errorf("join relay room: %w", err)
	}

	c.mu.Lock()
	c.joined[sessionID] = true
	c.mu.Unlock()
	return nil
}

// refreshHistory replaces the transcript with the stored history, keeping
// relay messages that arrived meanwhile and are not stored yet.
func (c *Controller) refreshHistory(ctx context.Context, sessionID uuid.UUID) error {
	history, err := c.api.ListMessages(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("fetch history: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected != sessionID {
		return nil
	}
	pending := c.transcript
	c.transcript = make([]domainMessage.Message, 0, len(history)+len(pending))
	c.seen = make(map[uuid.UUID]bool, len(history)+len(pending))
	for _, m := range history {
		c.appendLocked(m)
	}
	for _, m := range pending {
		c.appendLocked(m)
	}
	return nil
}

func (c *Controller) appendLocked(m domainMessage.Message) {
	if m.ID != uuid.Nil {
		if c.seen[m.ID] {
			return
		}
		c.seen[m.ID] = true
	}
	c.transcript = append(c.transcript, m)
}
