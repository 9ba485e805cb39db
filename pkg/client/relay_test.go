package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Anaselll/TeachMeApp/pkg/client"
	infraWebsocket "github.com/Anaselll/TeachMeApp/pkg/infra/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoRelay answers every joinSession with a session_ready and every
// sendMessage with a receiveMessage carrying the same data.
func echoRelay(t *testing.T, frames chan<- infraWebsocket.Envelope) *httptest.Server {
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token-123", r.URL.Query().Get("token"))
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			env, err := infraWebsocket.DecodeEnvelope(raw)
			if err != nil {
				continue
			}
			frames <- *env

			var reply []byte
			switch env.Event {
			case infraWebsocket.EventJoinSession:
				var join infraWebsocket.JoinSessionData
				_ = json.Unmarshal(env.Data, &join)
				reply, _ = infraWebsocket.EncodeEnvelope(infraWebsocket.EventSessionReady,
					infraWebsocket.SessionReadyData{SessionID: join.SessionID, Ready: true})
			case infraWebsocket.EventSendMessage:
				reply, _ = infraWebsocket.EncodeEnvelope(infraWebsocket.EventReceiveMessage, env.Data)
			}
			if reply != nil {
				_ = conn.WriteMessage(websocket.TextMessage, reply)
			}
		}
	}))
}

func nextEnvelope(t *testing.T, ch <-chan infraWebsocket.Envelope) infraWebsocket.Envelope {
	t.Helper()
	select {
	case env, ok := <-ch:
		require.True(t, ok, "channel closed")
		return env
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for relay frame")
	}
	return infraWebsocket.Envelope{}
}

func TestRelayClient_JoinAndPublish(t *testing.T) {
	frames := make(chan infraWebsocket.Envelope, 4)
	srv := echoRelay(t, frames)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	relay, err := client.DialRelay(context.Background(), logrus.New(), wsURL, "token-123")
	require.NoError(t, err)

	sessionID := uuid.New()
	require.NoError(t, relay.Join(sessionID))

	sent := nextEnvelope(t, frames)
	assert.Equal(t, infraWebsocket.EventJoinSession, sent.Event)
	assert.JSONEq(t, `{"session_id":"`+sessionID.String()+`"}`, string(sent.Data))

	ready := nextEnvelope(t, relay.Incoming())
	assert.Equal(t, infraWebsocket.EventSessionReady, ready.Event)

	require.NoError(t, relay.Publish(sessionID, client.RelayMessage{ID: uuid.New(), Content: "hello"}))

	sent = nextEnvelope(t, frames)
	assert.Equal(t, infraWebsocket.EventSendMessage, sent.Event)
	var published map[string]interface{}
	require.NoError(t, json.Unmarshal(sent.Data, &published))
	assert.Equal(t, sessionID.String(), published["session_id"])
	assert.Equal(t, "hello", published["content"])

	echoed := nextEnvelope(t, relay.Incoming())
	assert.Equal(t, infraWebsocket.EventReceiveMessage, echoed.Event)

	require.NoError(t, relay.Close())
	select {
	case _, ok := <-relay.Incoming():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("incoming channel was not closed")
	}
}

func TestRelayClient_PublishRequiresObject(t *testing.T) {
	frames := make(chan infraWebsocket.Envelope, 1)
	srv := echoRelay(t, frames)
	defer srv.Close()

	relay, err := client.DialRelay(context.Background(), logrus.New(), "ws"+strings.TrimPrefix(srv.URL, "http"), "token-123")
	require.NoError(t, err)
	defer relay.Close()

	assert.Error(t, relay.Publish(uuid.New(), "plain string"))
}

func TestRelayClient_CloseWithUndrainedIncoming(t *testing.T) {
	upgrader := websocket.Upgrader{}
	flooded := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		frame, _ := infraWebsocket.EncodeEnvelope(infraWebsocket.EventReceiveMessage, map[string]string{"content": "hi"})
		for i := 0; i < 200; i++ {
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		}
		close(flooded)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	relay, err := client.DialRelay(context.Background(), logrus.New(), "ws"+strings.TrimPrefix(srv.URL, "http"), "token-123")
	require.NoError(t, err)

	select {
	case <-flooded:
	case <-time.After(2 * time.Second):
		t.Fatal("server did not finish writing")
	}
	// nobody reads Incoming, so the read loop ends up parked on a full buffer
	require.Eventually(t, func() bool { return len(relay.Incoming()) == cap(relay.Incoming()) }, 2*time.Second, 5*time.Millisecond)

	closed := make(chan error, 1)
	go func() { closed <- relay.Close() }()
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close blocked on the read loop")
	}

	received := 0
	for range relay.Incoming() {
		received++
	}
	assert.LessOrEqual(t, received, cap(relay.Incoming()))
}
