package message

import (
	"context"
	"fmt"

	appSession "github.com/Anaselll/TeachMeApp/pkg/app/session"
	domainMessage "github.com/Anaselll/TeachMeApp/pkg/domain/message"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Page struct {
	Messages []*domainMessage.Message
	// NextCursor is empty when the page is the end of the transcript.
	NextCursor string
}

//go:generate mockery --name=Lister --dir=. --output=./mocks --filename=message_lister_mock.go --case=underscore
type Lister interface {
	List(ctx context.Context, caller, sessionID uuid.UUID, page domainMessage.Page) (*Page, error)
}

type lister struct {
	logger          *logrus.Logger
	repo            domainMessage.Repository
	guard           appSession.ParticipantGuard
	defaultPageSize int
}

// NewLister returns the whole transcript when neither limit nor cursor is
// given. A cursor without a limit reads defaultPageSize messages.
func NewLister(
	logger *logrus.Logger,
	repo domainMessage.Repository,
	guard appSession.ParticipantGuard,
	defaultPageSize int,
) Lister {
	return &lister{
		logger:          logger,
		repo:            repo,
		guard:           guard,
		defaultPageSize: defaultPageSize,
	}
}

func (l *lister) List(ctx context.Context, caller, sessionID uuid.UUID, page domainMessage.Page) (*Page, error) {
	if _, err := l.guard.Authorize(ctx, sessionID, caller); err != nil {
		return nil, err
	}
	if page.After > 0 && page.Limit == 0 {
		page.Limit = l.defaultPageSize
	}

	messages, err := l.repo.ListBySession(ctx, sessionID, page)
	if err != nil {
		l.logger.WithError(err).WithField("session_id", sessionID).Error("failed to list messages")
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	if messages == nil {
		messages = []*domainMessage.Message{}
	}

	result := &Page{Messages: messages}
	if page.Limit > 0 && len(messages) == page.Limit {
		result.NextCursor = domainMessage.EncodeCursor(messages[len(messages)-1].Seq)
	}
	return result, nil
}
