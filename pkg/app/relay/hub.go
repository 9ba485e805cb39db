package relay

import (
	"context"
	"encoding/json"
	"sync"

	domainSession "github.com/Anaselll/TeachMeApp/pkg/domain/session"
	"github.com/Anaselll/TeachMeApp/pkg/infra/breaker"
	"github.com/Anaselll/TeachMeApp/pkg/infra/cache"
	"github.com/Anaselll/TeachMeApp/pkg/infra/cache/event"
	"github.com/Anaselll/TeachMeApp/pkg/infra/prometheus"
	infraWebsocket "github.com/Anaselll/TeachMeApp/pkg/infra/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Hub keeps the rooms of this node. A room is keyed by session id and holds
// every member that joined it. Delivery is best effort and at most once.
type Hub interface {
	Connect(userID uuid.UUID, bufferSize int) *Member
	Disconnect(m *Member)
	Join(m *Member, sessionID string)
	InRoom(m *Member, sessionID string) bool
	// Publish delivers the event to every other member of the room, on this
	// node and, when cross node relay is enabled, on the others.
	Publish(ctx context.Context, from *Member, sessionID, name string, payload json.RawMessage)
	// DeliverLocal sends the event to the local members of the room except
	// excludeMemberID and returns how many members got it.
	DeliverLocal(sessionID, excludeMemberID, name string, payload json.RawMessage) int
	SessionActivated(ctx context.Context, s *domainSession.Session)
	// NotifyReady pushes session_ready to every local member of the room.
	NotifyReady(sessionID string) int
	RoomSize(sessionID string) int
	Shutdown()
}

type hub struct {
	logger    *logrus.Logger
	nodeID    string
	publisher cache.EventPublisher

	mu          sync.RWMutex
	rooms       map[string]map[string]*Member
	memberships map[string]map[string]struct{}
	members     map[string]*Member
	closed      bool
}

// NewHub builds a hub. publisher may be nil, in which case rooms never leave
// this node.
func NewHub(logger *logrus.Logger, nodeID string, publisher cache.EventPublisher) Hub {
	return &hub{
		logger:      logger,
		nodeID:      nodeID,
		publisher:   publisher,
		rooms:       make(map[string]map[string]*Member),
		memberships: make(map[string]map[string]struct{}),
		members:     make(map[string]*Member),
	}
}

func (h *hub) Connect(userID uuid.UUID, bufferSize int) *Member {
	m := newMember(userID, bufferSize)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		m.close()
		return m
	}
	h.members[m.ID] = m
	h.memberships[m.ID] = make(map[string]struct{})
	if prometheus.Config.EnableRelay {
		prometheus.RelayConnections.Inc()
	}
	return m
}

func (h *hub) Disconnect(m *Member) {
	h.mu.Lock()
	if _, ok := h.members[m.ID]; ok {
		h.leaveAllLocked(m)
		delete(h.members, m.ID)
		if prometheus.Config.EnableRelay {
			prometheus.RelayConnections.Dec()
		}
	}
	h.mu.Unlock()
	m.close()
}

func (h *hub) leaveAllLocked(m *Member) {
	for sessionID := range h.memberships[m.ID] {
		room := h.rooms[sessionID]
		delete(room, m.ID)
		if len(room) == 0 {
			delete(h.rooms, sessionID)
		}
	}
	delete(h.memberships, m.ID)
}

func (h *hub) Join(m *Member, sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	joined, ok := h.memberships[m.ID]
	if !ok {
		return
	}
	room, ok := h.rooms[sessionID]
	if !ok {
		room = make(map[string]*Member)
		h.rooms[sessionID] = room
	}
	room[m.ID] = m
	joined[sessionID] = struct{}{}
}

func (h *hub) InRoom(m *Member, sessionID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.rooms[sessionID][m.ID]
	return ok
}

func (h *hub) RoomSize(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[sessionID])
}

func (h *hub) Publish(ctx context.Context, from *Member, sessionID, name string, payload json.RawMessage) {
	h.DeliverLocal(sessionID, from.ID, name, payload)
	if h.publisher == nil {
		return
	}
	err := h.publisher.Publish(ctx, event.RelayMessageEvent{
		SessionID:      sessionID,
		OriginNode:     h.nodeID,
		SenderMemberID: from.ID,
		Name:           name,
		Payload:        payload,
	})
	if err != nil {
		h.recordDelivery(prometheus.DeliveryRemoteFailed)
		h.logger.WithError(err).WithFields(logrus.Fields{
			"session_id":    sessionID,
			"breaker_open":  breaker.IsOpen(err),
			"relay_channel": "redis",
		}).Debug("cross node relay publish failed")
	}
}

func (h *hub) DeliverLocal(sessionID, excludeMemberID, name string, payload json.RawMessage) int {
	frame, err := infraWebsocket.EncodeEnvelope(name, payload)
	if err != nil {
		h.logger.WithError(err).Debug("failed to encode relay frame")
		return 0
	}

	h.mu.RLock()
	targets := make([]*Member, 0, len(h.rooms[sessionID]))
	for id, m := range h.rooms[sessionID] {
		if id == excludeMemberID {
			continue
		}
		targets = append(targets, m)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, m := range targets {
		if m.Send(frame) {
			delivered++
			h.recordDelivery(prometheus.DeliveryDelivered)
			continue
		}
		h.recordDelivery(prometheus.DeliveryDropped)
		h.logger.WithFields(logrus.Fields{
			"session_id": sessionID,
			"member_id":  m.ID,
			"event":      name,
		}).Debug("relay buffer full, dropping delivery")
	}
	return delivered
}

func (h *hub) SessionActivated(ctx context.Context, s *domainSession.Session) {
	sessionID := s.ID.String()
	h.NotifyReady(sessionID)
	if h.publisher == nil {
		return
	}
	err := h.publisher.Publish(ctx, event.SessionActivatedEvent{
		SessionID:  sessionID,
		OriginNode: h.nodeID,
		StudentID:  s.StudentID.String(),
		TutorID:    s.TutorID.String(),
	})
	if err != nil {
		h.logger.WithError(err).WithField("session_id", sessionID).Debug("failed to publish session activation")
	}
}

func (h *hub) NotifyReady(sessionID string) int {
	data, err := json.Marshal(infraWebsocket.SessionReadyData{SessionID: sessionID, Ready: true})
	if err != nil {
		return 0
	}
	return h.DeliverLocal(sessionID, "", infraWebsocket.EventSessionReady, data)
}

// Shutdown closes every member. Sockets are closed by their write pumps.
func (h *hub) Shutdown() {
	h.mu.Lock()
	h.closed = true
	members := make([]*Member, 0, len(h.members))
	for _, m := range h.members {
		members = append(members, m)
	}
	h.rooms = make(map[string]map[string]*Member)
	h.memberships = make(map[string]map[string]struct{})
	h.members = make(map[string]*Member)
	h.mu.Unlock()

	for _, m := range members {
		m.close()
	}
	if prometheus.Config.EnableRelay {
		prometheus.RelayConnections.Sub(float64(len(members)))
	}
	h.logger.WithField("members", len(members)).Info("relay hub stopped")
}

func (h *hub) recordDelivery(result string) {
	if prometheus.Config.EnableRelay {
		prometheus.RelayDeliveries.WithLabelValues(result).Inc()
	}
}
