package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	EventJoinSession    = "join_session"
	EventSendMessage    = "sendMessage"
	EventReceiveMessage = "receiveMessage"
	EventSessionReady   = "session_ready"
	EventError          = "error"
)

var ErrMissingEvent = errors.New("event name is required")

// Envelope is the frame exchanged on the relay socket.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type JoinSessionData struct {
	SessionID string `json:"session_id"`
}

// RoomPayload is the part of a sendMessage payload the relay looks at. The
// rest of the payload is forwarded untouched.
type RoomPayload struct {
	SessionID string `json:"session_id"`
}

type SessionReadyData struct {
	SessionID string `json:"session_id"`
	Ready     bool   `json:"ready"`
}

type ErrorData struct {
	Message string `json:"message"`
}

func DecodeEnvelope(frame []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}
	if env.Event == "" {
		return nil, ErrMissingEvent
	}
	return &env, nil
}

func EncodeEnvelope(event string, data interface{}) ([]byte, error) {
	var raw json.RawMessage
	switch v := data.(type) {
	case nil:
	case json.RawMessage:
		raw = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s data: %w", event, err)
		}
		raw = b
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}
