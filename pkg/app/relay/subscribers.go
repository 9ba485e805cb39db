package relay

import (
	"context"

	"github.com/Anaselll/TeachMeApp/pkg/infra/cache"
	"github.com/Anaselll/TeachMeApp/pkg/infra/cache/event"
)

type relayMessageSubscriber struct {
	hub    Hub
	nodeID string
}

// NewRelayMessageSubscriber delivers broadcasts published by other nodes to
// the local members of the room.
func NewRelayMessageSubscriber(hub Hub, nodeID string) cache.EventSubscriber[event.RelayMessageEvent] {
	return &relayMessageSubscriber{hub: hub, nodeID: nodeID}
}

func (s *relayMessageSubscriber) OnEvent(_ context.Context, ev event.RelayMessageEvent) error {
	if ev.OriginNode == s.nodeID {
		return nil
	}
	s.hub.DeliverLocal(ev.SessionID, ev.SenderMemberID, ev.Name, ev.Payload)
	return nil
}

type sessionActivatedSubscriber struct {
	hub    Hub
	nodeID string
}

func NewSessionActivatedSubscriber(hub Hub, nodeID string) cache.EventSubscriber[event.SessionActivatedEvent] {
	return &sessionActivatedSubscriber{hub: hub, nodeID: nodeID}
}

func (s *sessionActivatedSubscriber) OnEvent(_ context.Context, ev event.SessionActivatedEvent) error {
	if ev.OriginNode == s.nodeID {
		return nil
	}
	s.hub.NotifyReady(ev.SessionID)
	return nil
}
