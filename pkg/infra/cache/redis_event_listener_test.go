package cache

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Anaselll/TeachMeApp/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSubscriber struct {
	got []event.SessionActivatedEvent
	err error
}

func (s *recordingSubscriber) OnEvent(_ context.Context, ev event.SessionActivatedEvent) error {
	s.got = append(s.got, ev)
	return s.err
}

type relaySubscriber struct {
	got []event.RelayMessageEvent
}

func (s *relaySubscriber) OnEvent(_ context.Context, ev event.RelayMessageEvent) error {
	s.got = append(s.got, ev)
	return nil
}

func newTestListener() *redisEventListener {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	listener, ok := NewRedisEventListener(logger, nil, event.Registry).(*redisEventListener)
	if !ok {
		panic("unexpected listener type")
	}
	return listener
}

func TestRedisEventListener_DispatchesByType(t *testing.T) {
	listener := newTestListener()
	activated := &recordingSubscriber{err: assert.AnError}
	relayed := &relaySubscriber{}
	RegisterEventSubscriber[event.SessionActivatedEvent](listener, activated)
	RegisterEventSubscriber[event.RelayMessageEvent](listener, relayed)

	data, err := EncodeEvent(event.SessionActivatedEvent{SessionID: "s-1", OriginNode: "n-1"})
	require.NoError(t, err)
	listener.handleMessage(context.Background(), string(data))

	require.Len(t, activated.got, 1)
	assert.Equal(t, "s-1", activated.got[0].SessionID)
	assert.Empty(t, relayed.got)

	data, err = EncodeEvent(event.RelayMessageEvent{SessionID: "s-1", Payload: json.RawMessage(`{"content":"hi"}`)})
	require.NoError(t, err)
	listener.handleMessage(context.Background(), string(data))

	require.Len(t, relayed.got, 1)
	assert.JSONEq(t, `{"content":"hi"}`, string(relayed.got[0].Payload))
}

func TestRedisEventListener_IgnoresUnknownAndMalformed(t *testing.T) {
	listener := newTestListener()
	sub := &recordingSubscriber{}
	RegisterEventSubscriber[event.SessionActivatedEvent](listener, sub)

	listener.handleMessage(context.Background(), "not json")
	listener.handleMessage(context.Background(), `{"type":"Unknown","event":{}}`)
	listener.handleMessage(context.Background(), `{"type":"SessionActivatedEvent","event":"oops"}`)

	assert.Empty(t, sub.got)
}
