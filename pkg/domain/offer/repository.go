package offer

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=offer_repository_mock.go --case=underscore
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Offer, error)
	ListOpen(ctx context.Context) ([]*Offer, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Offer, error)
}
