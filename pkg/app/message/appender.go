package message

import (
	"context"
	"fmt"
	"time"

	appSession "github.com/Anaselll/TeachMeApp/pkg/app/session"
	"github.com/Anaselll/TeachMeApp/pkg/domain"
	domainMessage "github.com/Anaselll/TeachMeApp/pkg/domain/message"
	"github.com/Anaselll/TeachMeApp/pkg/domain/telemetry"
	"github.com/Anaselll/TeachMeApp/pkg/handlers/http/request"
	"github.com/Anaselll/TeachMeApp/pkg/infra/cache"
	"github.com/Anaselll/TeachMeApp/pkg/infra/prometheus"
	infraTelemetry "github.com/Anaselll/TeachMeApp/pkg/infra/telemetry"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const RateLimitScope = "message_send"

//go:generate mockery --name=Appender --dir=. --output=./mocks --filename=message_appender_mock.go --case=underscore
type Appender interface {
	Append(ctx context.Context, caller, sessionID uuid.UUID, req *request.SendMessageRequest) (*domainMessage.Message, error)
}

type appender struct {
	logger      *logrus.Logger
	repo        domainMessage.Repository
	guard       appSession.ParticipantGuard
	rateLimiter cache.RateLimiter
	dispatcher  infraTelemetry.Dispatcher
	maxLength   int
	now         func() time.Time
}

func NewAppender(
	logger *logrus.Logger,
	repo domainMessage.Repository,
	guard appSession.ParticipantGuard,
	rateLimiter cache.RateLimiter,
	dispatcher infraTelemetry.Dispatcher,
	maxLength int,
) Appender {
	return &appender{
		logger:      logger,
		repo:        repo,
		guard:       guard,
		rateLimiter: rateLimiter,
		dispatcher:  dispatcher,
		maxLength:   maxLength,
		now:         time.Now,
	}
}

func (a *appender) Append(
	ctx context.Context,
	caller, sessionID uuid.UUID,
	req *request.SendMessageRequest,
) (*domainMessage.Message, error) {
	s, err := a.guard.Authorize(ctx, sessionID, caller)
	if err != nil {
		return nil, err
	}

	sender := caller
	if req.Sender != uuid.Nil && req.Sender != caller {
		return nil, domain.NewForbiddenError("sender_id does not match the authenticated user")
	}
	peer := s.PeerOf(caller)
	receiver := req.Receiver
	if receiver == uuid.Nil {
		receiver = peer
	}
	if receiver != peer {
		return nil, domain.NewValidationError("receiver_id", "must be the other participant of the session")
	}

	if err := a.checkRateLimit(ctx, sender); err != nil {
		return nil, err
	}

	m, err := domainMessage.New(sessionID, sender, receiver, req.Content, a.maxLength, a.now())
	if err != nil {
		return nil, domain.NewValidationError("", err.Error())
	}

	if err := a.repo.Append(ctx, m); err != nil {
		if domain.IsNotFoundError(err) {
			return nil, err
		}
		a.logger.WithError(err).WithField("session_id", sessionID).Error("failed to append message")
		return nil, fmt.Errorf("failed to append message: %w", err)
	}

	prometheus.MessagesAppended.Inc()
	evt := telemetry.NewLifecycleEvent(telemetry.MessageAppended, sessionID, m.CreatedAt)
	evt.OfferID = s.OfferID
	evt.ActorID = sender
	evt.Attributes["message_id"] = m.ID.String()
	evt.Attributes["seq"] = m.Seq
	a.dispatcher.Dispatch(evt)

	return m, nil
}

func (a *appender) checkRateLimit(ctx context.Context, sender uuid.UUID) error {
	if a.rateLimiter == nil {
		return nil
	}
	result, err := a.rateLimiter.Allow(ctx, RateLimitScope, sender.String())
	if err != nil {
		// fail open: the limiter protects the store, it is not part of the contract
		a.logger.WithError(err).Warn("message rate limiter unavailable")
		return nil
	}
	if !result.Allowed {
		a.logger.WithFields(logrus.Fields{
			"sender_id":   sender,
			"retry_after": result.RetryAfter,
		}).Debug("message rate limit exceeded")
		return &RateLimitedError{Limit: result.Limit, RetryAfter: result.RetryAfter}
	}
	return nil
}

