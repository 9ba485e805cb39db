package offer

import (
	"errors"
	"time"

	"github.com/Anaselll/TeachMeApp/pkg/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusOpen     Status = "open"
	StatusAccepted Status = "accepted"
)

var (
	ErrAlreadyAccepted  = errors.New("offer is no longer open")
	ErrInvalidDuration  = errors.New("offer duration must be a positive number of hours")
	ErrMissingStartDate = errors.New("offer has no scheduled date")
)

type Offer struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID     uuid.UUID       `json:"owner_id" gorm:"type:uuid;not null"`
	Subject     string          `json:"subject"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	Date        time.Time       `json:"date"`
	Dure        int             `json:"dure"`
	Status      Status          `json:"status" gorm:"default:'open'"`
	AcceptedBy  *uuid.UUID      `json:"accepted_by,omitempty" gorm:"type:uuid"`
	Tags        domain.TagsJSON `json:"tags,omitempty" gorm:"type:jsonb"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Offer) TableName() string {
	return "offers"
}

func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = StatusOpen
	}
	return nil
}

func (o *Offer) IsOpen() bool {
	return o.Status == StatusOpen
}

// ScheduleWindow returns the start of the offer and its end, which is always
// start plus the offer duration expressed in whole hours.
func (o *Offer) ScheduleWindow() (time.Time, time.Time, error) {
	if o.Date.IsZero() {
		return time.Time{}, time.Time{}, ErrMissingStartDate
	}
	if o.Dure <= 0 {
		return time.Time{}, time.Time{}, ErrInvalidDuration
	}
	start := o.Date
	return start, start.Add(time.Duration(o.Dure) * time.Hour), nil
}

// Accept moves the offer from open to accepted. It never reverts.
func (o *Offer) Accept(acceptedBy uuid.UUID, at time.Time) error {
	if !o.IsOpen() {
		return ErrAlreadyAccepted
	}
	o.Status = StatusAccepted
	o.AcceptedBy = &acceptedBy
	o.UpdatedAt = at
	return nil
}
