package event

import "encoding/json"

// RelayMessageEvent carries a room broadcast to the other nodes.
type RelayMessageEvent struct {
	SessionID      string          `json:"session_id"`
	OriginNode     string          `json:"origin_node"`
	SenderMemberID string          `json:"sender_member_id"`
	Name           string          `json:"name"`
	Payload        json.RawMessage `json:"payload"`
}

func (e RelayMessageEvent) Type() string {
	return RelayMessageEventType
}
