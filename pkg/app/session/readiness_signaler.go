package session

import (
	"context"
	"fmt"
	"time"

	"github.com/Anaselll/TeachMeApp/pkg/domain"
	domainSession "github.com/Anaselll/TeachMeApp/pkg/domain/session"
	"github.com/Anaselll/TeachMeApp/pkg/domain/telemetry"
	"github.com/Anaselll/TeachMeApp/pkg/infra/prometheus"
	infraTelemetry "github.com/Anaselll/TeachMeApp/pkg/infra/telemetry"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ActivationNotifier is told once per session when its chat becomes active.
type ActivationNotifier interface {
	SessionActivated(ctx context.Context, s *domainSession.Session)
}

type ReadyResult struct {
	Session *domainSession.Session
	// Ready reports whether the chat is active after this signal.
	Ready bool
}

//go:generate mockery --name=ReadinessSignaler --dir=. --output=./mocks --filename=readiness_signaler_mock.go --case=underscore
type ReadinessSignaler interface {
	Signal(ctx context.Context, caller, sessionID uuid.UUID, role domainSession.Role) (*ReadyResult, error)
}

type readinessSignaler struct {
	logger     *logrus.Logger
	repo       domainSession.Repository
	guard      ParticipantGuard
	dispatcher infraTelemetry.Dispatcher
	notifier   ActivationNotifier
	now        func() time.Time
}

func NewReadinessSignaler(
	logger *logrus.Logger,
	repo domainSession.Repository,
	guard ParticipantGuard,
	dispatcher infraTelemetry.Dispatcher,
	notifier ActivationNotifier,
) ReadinessSignaler {
	return &readinessSignaler{
		logger:     logger,
		repo:       repo,
		guard:      guard,
		dispatcher: dispatcher,
		notifier:   notifier,
		now:        time.Now,
	}
}

func (r *readinessSignaler) Signal(
	ctx context.Context,
	caller, sessionID uuid.UUID,
	role domainSession.Role,
) (*ReadyResult, error) {
	if !role.Valid() {
		return nil, domain.NewValidationError("role", "must be 'student' or 'tutor'")
	}
	s, err := r.guard.Authorize(ctx, sessionID, caller)
	if err != nil {
		return nil, err
	}
	if s.ParticipantFor(role) != caller {
		return nil, domain.NewForbiddenError(fmt.Sprintf("caller is not the %s of this session", role))
	}
	if s.Status != domainSession.StatusScheduled {
		return nil, domain.NewConflictError("session", fmt.Sprintf("session is %s", s.Status))
	}

	updated, changed, err := r.repo.MarkReady(ctx, sessionID, role)
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		r.logger.WithError(err).WithField("session_id", sessionID).Error("failed to mark session ready")
		return nil, fmt.Errorf("failed to mark session ready: %w", err)
	}

	prometheus.ReadySignals.WithLabelValues(role.String()).Inc()
	r.logger.WithFields(logrus.Fields{
		"session_id":  sessionID,
		"role":        role.String(),
		"changed":     changed,
		"chat_active": updated.ChatActive,
	}).Debug("readiness signal applied")

	if changed && updated.ChatActive {
		prometheus.SessionsActivated.Inc()
		evt := telemetry.NewLifecycleEvent(telemetry.SessionActivated, updated.ID, r.now())
		evt.OfferID = updated.OfferID
		evt.ActorID = caller
		r.dispatcher.Dispatch(evt)
		if r.notifier != nil {
			r.notifier.SessionActivated(ctx, updated)
		}
	}

	return &ReadyResult{Session: updated, Ready: updated.ChatActive}, nil
}
