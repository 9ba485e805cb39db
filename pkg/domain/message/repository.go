package message

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=message_repository_mock.go --case=underscore
type Repository interface {
	Append(ctx context.Context, m *Message) error
	ListBySession(ctx context.Context, sessionID uuid.UUID, page Page) ([]*Message, error)
}
