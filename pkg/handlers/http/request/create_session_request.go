package request

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	OfferID    string `json:"offer_id"`
	StudentID  string `json:"student_id"`
	TutorID    string `json:"tutor_id"`
	AcceptedBy string `json:"accepted_by"`

	Offer    uuid.UUID `json:"-"`
	Student  uuid.UUID `json:"-"`
	Tutor    uuid.UUID `json:"-"`
	Acceptor uuid.UUID `json:"-"`
}

func (r *CreateSessionRequest) Validate() error {
	var err error
	if r.Offer, err = parseRequiredUUID("offer_id", r.OfferID); err != nil {
		return err
	}
	if r.Student, err = parseRequiredUUID("student_id", r.StudentID); err != nil {
		return err
	}
	if r.Tutor, err = parseRequiredUUID("tutor_id", r.TutorID); err != nil {
		return err
	}
	if r.Acceptor, err = parseRequiredUUID("accepted_by", r.AcceptedBy); err != nil {
		return err
	}
	if r.Student == r.Tutor {
		return fmt.Errorf("student_id and tutor_id must be different users")
	}
	if r.Acceptor != r.Student && r.Acceptor != r.Tutor {
		return fmt.Errorf("accepted_by must be the student or the tutor")
	}
	return nil
}

func parseRequiredUUID(field, value string) (uuid.UUID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return uuid.Nil, fmt.Errorf("%s is required", field)
	}
	return parseUUID(field, value)
}

func parseUUID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%s must be a valid uuid", field)
	}
	return id, nil
}
