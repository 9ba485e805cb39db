package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Anaselll/TeachMeApp/pkg/domain"
	"github.com/Anaselll/TeachMeApp/pkg/domain/message"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) message.Repository {
	return &messageRepository{db: db}
}

// Append stores m and fills in Seq and CreatedAt from the database. Appends
// to one session are serialised on the session row, so within a session a
// later seq never carries an earlier created_at.
func (r *messageRepository) Append(ctx context.Context, m *message.Message) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked struct{ ID uuid.UUID }
		if err := tx.Table("sessions").
			Select("id").
			Clauses(clause.Locking{Strength: "NO KEY UPDATE"}).
			Where("id = ?", m.SessionID).
			Take(&locked).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("session", m.SessionID)
			}
			return fmt.Errorf("lock session: %w", err)
		}

		return tx.Raw(`
			INSERT INTO messages (id, session_id, sender_id, receiver_id, content, created_at)
			VALUES (?, ?, ?, ?, ?, GREATEST(
				clock_timestamp(),
				COALESCE((SELECT MAX(created_at) FROM messages WHERE session_id = ?), '-infinity')
			))
			RETURNING seq, created_at`,
			m.ID, m.SessionID, m.SenderID, m.ReceiverID, m.Content, m.SessionID,
		).Row().Scan(&m.Seq, &m.CreatedAt)
	})
	if err != nil {
		if domain.IsNotFoundError(err) {
			return err
		}
		if isForeignKeyViolation(err) {
			return domain.NewNotFoundError("session", m.SessionID)
		}
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// ListBySession returns messages in insertion order. A zero page limit
// returns the whole history after the cursor.
func (r *messageRepository) ListBySession(ctx context.Context, sessionID uuid.UUID, page message.Page) ([]*message.Message, error) {
	query := r.db.WithContext(ctx).Where("session_id = ?", sessionID)
	if page.After > 0 {
		query = query.Where("seq > ?", page.After)
	}
	if page.Limit > 0 {
		query = query.Limit(page.Limit)
	}
	messages := make([]*message.Message, 0)
	if err := query.Order("seq ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
