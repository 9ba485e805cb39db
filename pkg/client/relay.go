package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	infraWebsocket "github.com/Anaselll/TeachMeApp/pkg/infra/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	relayWriteWait = 10 * time.Second
	incomingBuffer = 64
)

type Relay interface {
	Join(sessionID uuid.UUID) error
	Publish(sessionID uuid.UUID, payload interface{}) error
	// Incoming is closed when the connection ends.
	Incoming() <-chan infraWebsocket.Envelope
	Close() error
}

type relayClient struct {
	logger    *logrus.Logger
	conn      *websocket.Conn
	writeMu   sync.Mutex
	incoming  chan infraWebsocket.Envelope
	closed    chan struct{}
	closeOnce sync.Once
	done      chan struct{}
}

// DialRelay opens the relay socket. The token travels in the query string.
func DialRelay(ctx context.Context, logger *logrus.Logger, wsURL, token string) (Relay, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("invalid relay url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial relay: %w", err)
	}

	r := &relayClient{
		logger:   logger,
		conn:     conn,
		incoming: make(chan infraWebsocket.Envelope, incomingBuffer),
		closed:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	go r.readLoop()
	return r, nil
}

func (r *relayClient) Join(sessionID uuid.UUID) error {
	return r.write(infraWebsocket.EventJoinSession, infraWebsocket.JoinSessionData{SessionID: sessionID.String()})
}

func (r *relayClient) Publish(sessionID uuid.UUID, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("payload must be a json object: %w", err)
	}
	fields["session_id"] = sessionID.String()
	return r.write(infraWebsocket.EventSendMessage, fields)
}

func (r *relayClient) Incoming() <-chan infraWebsocket.Envelope {
	return r.incoming
}

// Close returns once the read loop has stopped, whether or not anyone is
// still draining Incoming.
func (r *relayClient) Close() error {
	r.closeOnce.Do(func() { close(r.closed) })
	r.writeMu.Lock()
	_ = r.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(relayWriteWait),
	)
	r.writeMu.Unlock()
	err := r.conn.Close()
	<-r.done
	return err
}

func (r *relayClient) write(event string, data interface{}) error {
	frame, err := infraWebsocket.EncodeEnvelope(event, data)
	if err != nil {
		return err
	}
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	if err := r.conn.SetWriteDeadline(time.Now().Add(relayWriteWait)); err != nil {
		return err
	}
	return r.conn.WriteMessage(websocket.TextMessage, frame)
}

func (r *relayClient) readLoop() {
	defer close(r.done)
	defer close(r.incoming)
	for {
		_, frame, err := r.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				r.logger.WithError(err).Warn("relay connection lost")
			}
			return
		}
		env, err := infraWebsocket.DecodeEnvelope(frame)
		if err != nil {
			r.logger.WithError(err).Debug("ignoring malformed relay frame")
			continue
		}
		select {
		case r.incoming <- *env:
		case <-r.closed:
			return
		}
	}
}
