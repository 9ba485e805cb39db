package session

import (
	"context"
	"fmt"

	domainSession "github.com/Anaselll/TeachMeApp/pkg/domain/session"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Lister --dir=. --output=./mocks --filename=session_lister_mock.go --case=underscore
type Lister interface {
	List(ctx context.Context, filter domainSession.ListFilter) ([]*domainSession.Session, error)
}

type lister struct {
	logger   *logrus.Logger
	repo     domainSession.Repository
	hydrator Hydrator
}

func NewLister(logger *logrus.Logger, repo domainSession.Repository, hydrator Hydrator) Lister {
	return &lister{logger: logger, repo: repo, hydrator: hydrator}
}

func (l *lister) List(ctx context.Context, filter domainSession.ListFilter) ([]*domainSession.Session, error) {
	sessions, err := l.repo.List(ctx, filter)
	if err != nil {
		l.logger.WithError(err).WithFields(logrus.Fields{
			"role":    filter.Role.String(),
			"user_id": filter.UserID,
			"status":  filter.Status,
		}).Error("failed to list sessions")
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	if sessions == nil {
		sessions = []*domainSession.Session{}
	}
	if err := l.hydrator.Hydrate(ctx, sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
