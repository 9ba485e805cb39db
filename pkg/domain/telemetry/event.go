package telemetry

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	SessionCreated   EventType = "session.created"
	SessionActivated EventType = "session.activated"
	MessageAppended  EventType = "message.appended"
)

// LifecycleEvent is the record exported for every state change of a session.
type LifecycleEvent struct {
	ID         uuid.UUID              `json:"id"`
	Type       EventType              `json:"type"`
	SessionID  uuid.UUID              `json:"session_id"`
	OfferID    uuid.UUID              `json:"offer_id,omitempty"`
	ActorID    uuid.UUID              `json:"actor_id,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

func NewLifecycleEvent(t EventType, sessionID uuid.UUID, at time.Time) *LifecycleEvent {
	return &LifecycleEvent{
		ID:         uuid.New(),
		Type:       t,
		SessionID:  sessionID,
		OccurredAt: at.UTC(),
		Attributes: map[string]interface{}{},
	}
}
