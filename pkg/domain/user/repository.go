package user

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=user_repository_mock.go --case=underscore
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*User, error)
}
