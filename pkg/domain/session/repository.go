package session

import (
	"context"

	"github.com/Anaselll/TeachMeApp/pkg/domain/offer"
	"github.com/google/uuid"
)

// BuildFunc creates the session from the locked offer inside the creation transaction.
type BuildFunc func(o *offer.Offer) (*Session, error)

type ListFilter struct {
	Role   Role
	UserID uuid.UUID
	// Status is optional; an empty value matches every status.
	Status Status
}

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=session_repository_mock.go --case=underscore
type Repository interface {
	// CreateFromOffer locks the offer, builds the session, inserts it and marks
	// the offer accepted, all in one transaction.
	CreateFromOffer(ctx context.Context, offerID uuid.UUID, acceptedBy uuid.UUID, build BuildFunc) (*Session, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Session, error)
	List(ctx context.Context, filter ListFilter) ([]*Session, error)
	// MarkReady atomically sets the readiness flag of role and activates the
	// chat when the peer flag is already set. changed is false when the flag
	// was already set by an earlier call.
	MarkReady(ctx context.Context, id uuid.UUID, role Role) (s *Session, changed bool, err error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) (*Session, error)
}
