package session

import (
	"context"

	"github.com/Anaselll/TeachMeApp/pkg/domain"
	domainSession "github.com/Anaselll/TeachMeApp/pkg/domain/session"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ParticipantGuard loads a session and makes sure the caller is its student or its tutor.
//
//go:generate mockery --name=ParticipantGuard --dir=. --output=./mocks --filename=participant_guard_mock.go --case=underscore
type ParticipantGuard interface {
	Authorize(ctx context.Context, sessionID, caller uuid.UUID) (*domainSession.Session, error)
}

type participantGuard struct {
	logger *logrus.Logger
	repo   domainSession.Repository
}

func NewParticipantGuard(logger *logrus.Logger, repo domainSession.Repository) ParticipantGuard {
	return &participantGuard{logger: logger, repo: repo}
}

func (g *participantGuard) Authorize(ctx context.Context, sessionID, caller uuid.UUID) (*domainSession.Session, error) {
	s, err := g.repo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !s.IsParticipant(caller) {
		g.logger.WithFields(logrus.Fields{
			"session_id": sessionID,
			"caller":     caller,
		}).Warn("caller is not a session participant")
		return nil, domain.NewForbiddenError("caller is not a participant of this session")
	}
	return s, nil
}
