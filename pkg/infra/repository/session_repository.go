package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Anaselll/TeachMeApp/pkg/domain"
	"github.com/Anaselll/TeachMeApp/pkg/domain/offer"
	"github.com/Anaselll/TeachMeApp/pkg/domain/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sessionRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSessionRepository(db *gorm.DB) session.Repository {
	return &sessionRepository{db: db, now: time.Now}
}

func (r *sessionRepository) CreateFromOffer(
	ctx context.Context,
	offerID uuid.UUID,
	acceptedBy uuid.UUID,
	build session.BuildFunc,
) (*session.Session, error) {
	var created *session.Session
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o offer.Offer
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", offerID).
			First(&o).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("offer", offerID)
			}
			return fmt.Errorf("lock offer: %w", err)
		}
		if !o.IsOpen() {
			return domain.NewConflictError("offer", offer.ErrAlreadyAccepted.Error())
		}

		s, err := build(&o)
		if err != nil {
			return err
		}

		if err := tx.Create(s).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.NewConflictError("session", "a session already exists for this offer")
			}
			if isForeignKeyViolation(err) {
				return domain.NewValidationError("", "student or tutor does not exist")
			}
			return fmt.Errorf("insert session: %w", err)
		}

		if err := o.Accept(acceptedBy, r.now()); err != nil {
			return domain.NewConflictError("offer", err.Error())
		}
		if err := tx.Model(&offer.Offer{}).
			Where("id = ?", o.ID).
			Updates(map[string]interface{}{
				"status":      o.Status,
				"accepted_by": o.AcceptedBy,
				"updated_at":  o.UpdatedAt,
			}).Error; err != nil {
			if isForeignKeyViolation(err) {
				return domain.NewValidationError("accepted_by", "user does not exist")
			}
			return fmt.Errorf("accept offer: %w", err)
		}

		s.Offer = &o
		created = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	var s session.Session
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("session", id)
		}
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) List(ctx context.Context, filter session.ListFilter) ([]*session.Session, error) {
	column := filter.Role.ParticipantColumn()
	if column == "" {
		return nil, session.ErrInvalidRole
	}
	query := r.db.WithContext(ctx).Where(column+" = ?", filter.UserID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	sessions := make([]*session.Session, 0)
	if err := query.Order("scheduled_start ASC, created_at ASC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// MarkReady runs a single UPDATE ... RETURNING guarded on the session still
// being scheduled and the role flag still being false. Postgres evaluates chat_active against the locked row
// version, so of two concurrent signals exactly one sees the peer flag set
// and activates the chat.
func (r *sessionRepository) MarkReady(ctx context.Context, id uuid.UUID, role session.Role) (*session.Session, bool, error) {
	readyColumn, peerColumn := role.ReadyColumn(), role.PeerReadyColumn()
	if readyColumn == "" || peerColumn == "" {
		return nil, false, session.ErrInvalidRole
	}

	var s session.Session
	result := r.db.WithContext(ctx).
		Model(&s).
		Clauses(clause.Returning{}).
		Where("id = ? AND status = ? AND "+readyColumn+" = FALSE", id, session.StatusScheduled).
		Updates(map[string]interface{}{
			readyColumn:   true,
			"chat_active": gorm.Expr("chat_active OR " + peerColumn),
			"updated_at":  gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 0 {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, false, err
		}
		if current.Status != session.StatusScheduled {
			return nil, false, domain.NewConflictError("session", fmt.Sprintf("session is %s", current.Status))
		}
		return current, false, nil
	}
	return &s, true, nil
}

func (r *sessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to session.Status) (*session.Session, error) {
	var s session.Session
	result := r.db.WithContext(ctx).
		Model(&s).
		Clauses(clause.Returning{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, domain.NewConflictError("session", "status changed concurrently")
	}
	return &s, nil
}
