package message

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmptyContent    = errors.New("content cannot be empty")
	ErrContentTooLong  = errors.New("content exceeds the maximum length")
	ErrMissingSession  = errors.New("session_id is required")
	ErrMissingSender   = errors.New("sender_id is required")
	ErrMissingReceiver = errors.New("receiver_id is required")
)

// Message is immutable once stored. Seq is assigned by the database and
// defines the canonical order of a session transcript.
type Message struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Seq        int64     `json:"-" gorm:"column:seq;autoIncrement;not null"`
	SessionID  uuid.UUID `json:"session_id" gorm:"type:uuid;not null;index"`
	SenderID   uuid.UUID `json:"sender_id" gorm:"type:uuid;not null"`
	ReceiverID uuid.UUID `json:"receiver_id" gorm:"type:uuid;not null"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}

func New(sessionID, senderID, receiverID uuid.UUID, content string, maxLength int, now time.Time) (*Message, error) {
	m := &Message{
		ID:         uuid.New(),
		SessionID:  sessionID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  now,
	}
	if err := m.Validate(maxLength); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Message) Validate(maxLength int) error {
	if m.SessionID == uuid.Nil {
		return ErrMissingSession
	}
	if m.SenderID == uuid.Nil {
		return ErrMissingSender
	}
	if m.ReceiverID == uuid.Nil {
		return ErrMissingReceiver
	}
	if strings.TrimSpace(m.Content) == "" {
		return ErrEmptyContent
	}
	if maxLength > 0 && utf8.RuneCountInString(m.Content) > maxLength {
		return ErrContentTooLong
	}
	return nil
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
