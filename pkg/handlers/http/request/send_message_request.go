package request

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SendMessageRequest mirrors the chat client payload. sender_id and
// receiver_id are optional and default to the caller and its peer.
type SendMessageRequest struct {
	SenderID   string `json:"sender_id,omitempty"`
	ReceiverID string `json:"receiver_id,omitempty"`
	Content    string `json:"content"`

	Sender   uuid.UUID `json:"-"`
	Receiver uuid.UUID `json:"-"`
}

func (r *SendMessageRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("content is required")
	}
	var err error
	if strings.TrimSpace(r.SenderID) != "" {
		if r.Sender, err = parseUUID("sender_id", r.SenderID); err != nil {
			return err
		}
	}
	if strings.TrimSpace(r.ReceiverID) != "" {
		if r.Receiver, err = parseUUID("receiver_id", r.ReceiverID); err != nil {
			return err
		}
	}
	return nil
}
