package session

import (
	"context"
	"fmt"

	"github.com/Anaselll/TeachMeApp/pkg/domain"
	domainSession "github.com/Anaselll/TeachMeApp/pkg/domain/session"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=StatusUpdater --dir=. --output=./mocks --filename=status_updater_mock.go --case=underscore
type StatusUpdater interface {
	Update(ctx context.Context, caller, sessionID uuid.UUID, to domainSession.Status) (*domainSession.Session, error)
}

type statusUpdater struct {
	logger *logrus.Logger
	repo   domainSession.Repository
	guard  ParticipantGuard
}

func NewStatusUpdater(logger *logrus.Logger, repo domainSession.Repository, guard ParticipantGuard) StatusUpdater {
	return &statusUpdater{logger: logger, repo: repo, guard: guard}
}

func (u *statusUpdater) Update(
	ctx context.Context,
	caller, sessionID uuid.UUID,
	to domainSession.Status,
) (*domainSession.Session, error) {
	s, err := u.guard.Authorize(ctx, sessionID, caller)
	if err != nil {
		return nil, err
	}
	if !s.Status.CanTransition(to) {
		return nil, domain.NewConflictError("session",
			fmt.Sprintf("%s: %s -> %s", domainSession.ErrInvalidTransition, s.Status, to))
	}

	updated, err := u.repo.UpdateStatus(ctx, sessionID, s.Status, to)
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		u.logger.WithError(err).WithField("session_id", sessionID).Error("failed to update session status")
		return nil, fmt.Errorf("failed to update session status: %w", err)
	}

	u.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"from":       s.Status,
		"to":         to,
		"caller":     caller,
	}).Info("session status updated")
	return updated, nil
}
