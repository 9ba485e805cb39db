package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/Anaselll/TeachMeApp/pkg/domain/offer"
	"github.com/Anaselll/TeachMeApp/pkg/domain/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

var (
	ErrInvalidStatus     = errors.New("status must be one of 'scheduled', 'completed', 'canceled'")
	ErrSameParticipant   = errors.New("student and tutor must be different users")
	ErrMissingOffer      = errors.New("offer is required")
	ErrMissingStudent    = errors.New("student_id is required")
	ErrMissingTutor      = errors.New("tutor_id is required")
	ErrInvalidTransition = errors.New("session status transition not allowed")
)

func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusScheduled, StatusCompleted, StatusCanceled:
		return Status(value), nil
	case "closed":
		return StatusCanceled, nil
	default:
		return "", ErrInvalidStatus
	}
}

// CanTransition reports whether an operator may move a session from s to next.
// Only scheduled sessions can be closed, and closed sessions stay closed.
func (s Status) CanTransition(next Status) bool {
	return s == StatusScheduled && (next == StatusCompleted || next == StatusCanceled)
}

type Session struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OfferID        uuid.UUID `json:"offer_id" gorm:"type:uuid;not null;uniqueIndex"`
	StudentID      uuid.UUID `json:"student_id" gorm:"type:uuid;not null;index"`
	TutorID        uuid.UUID `json:"tutor_id" gorm:"type:uuid;not null;index"`
	Status         Status    `json:"status" gorm:"default:'scheduled'"`
	ScheduledStart time.Time `json:"scheduled_start"`
	ScheduledEnd   time.Time `json:"scheduled_end"`
	StudentReady   bool      `json:"student_ready"`
	TutorReady     bool      `json:"tutor_ready"`
	ChatActive     bool      `json:"chat_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Offer   *offer.Offer `json:"offer,omitempty" gorm:"-"`
	Student *user.User   `json:"student,omitempty" gorm:"-"`
	Tutor   *user.User   `json:"tutor,omitempty" gorm:"-"`
}

func (Session) TableName() string {
	return "sessions"
}

// New builds a scheduled session for the given offer. The schedule window is
// taken from the offer and never recomputed afterwards.
func New(o *offer.Offer, studentID, tutorID uuid.UUID, now time.Time) (*Session, error) {
	if o == nil {
		return nil, ErrMissingOffer
	}
	if studentID == uuid.Nil {
		return nil, ErrMissingStudent
	}
	if tutorID == uuid.Nil {
		return nil, ErrMissingTutor
	}
	if studentID == tutorID {
		return nil, ErrSameParticipant
	}
	start, end, err := o.ScheduleWindow()
	if err != nil {
		return nil, fmt.Errorf("invalid offer schedule: %w", err)
	}
	return &Session{
		ID:             uuid.New(),
		OfferID:        o.ID,
		StudentID:      studentID,
		TutorID:        tutorID,
		Status:         StatusScheduled,
		ScheduledStart: start,
		ScheduledEnd:   end,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = StatusScheduled
	}
	return nil
}

// RoleOf returns the role played by userID in this session.
func (s *Session) RoleOf(userID uuid.UUID) (Role, bool) {
	switch userID {
	case uuid.Nil:
		return 0, false
	case s.StudentID:
		return RoleStudent, true
	case s.TutorID:
		return RoleTutor, true
	default:
		return 0, false
	}
}

func (s *Session) IsParticipant(userID uuid.UUID) bool {
	_, ok := s.RoleOf(userID)
	return ok
}

// ParticipantFor returns the user playing the given role.
func (s *Session) ParticipantFor(role Role) uuid.UUID {
	switch role {
	case RoleStudent:
		return s.StudentID
	case RoleTutor:
		return s.TutorID
	default:
		return uuid.Nil
	}
}

// PeerOf returns the other participant, or uuid.Nil when userID is not part of the session.
func (s *Session) PeerOf(userID uuid.UUID) uuid.UUID {
	role, ok := s.RoleOf(userID)
	if !ok {
		return uuid.Nil
	}
	switch role {
	case RoleStudent:
		return s.TutorID
	case RoleTutor:
		return s.StudentID
	default:
		return uuid.Nil
	}
}

func (s *Session) IsReady(role Role) bool {
	switch role {
	case RoleStudent:
		return s.StudentReady
	case RoleTutor:
		return s.TutorReady
	default:
		return false
	}
}
