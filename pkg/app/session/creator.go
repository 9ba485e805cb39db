package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Anaselll/TeachMeApp/pkg/domain"
	"github.com/Anaselll/TeachMeApp/pkg/domain/offer"
	domainSession "github.com/Anaselll/TeachMeApp/pkg/domain/session"
	"github.com/Anaselll/TeachMeApp/pkg/domain/telemetry"
	"github.com/Anaselll/TeachMeApp/pkg/handlers/http/request"
	"github.com/Anaselll/TeachMeApp/pkg/infra/cache"
	"github.com/Anaselll/TeachMeApp/pkg/infra/prometheus"
	infraTelemetry "github.com/Anaselll/TeachMeApp/pkg/infra/telemetry"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const IdempotencyScope = "session_create"

// IdempotencyFinishTimeout bounds storing or releasing a key once the
// booking itself is over, whatever is left of the request deadline.
const IdempotencyFinishTimeout = 5 * time.Second

// CreateResult is what a booking returns. It is also the value remembered
// under an idempotency key.
type CreateResult struct {
	SessionID   uuid.UUID              `json:"session_id"`
	OpenOffers  []*offer.Offer         `json:"offers"`
	Fingerprint string                 `json:"request_fingerprint,omitempty"`
	Session     *domainSession.Session `json:"-"`
	Replayed    bool                   `json:"-"`
}

// requestFingerprint identifies the booking a key was first used for.
func requestFingerprint(req *request.CreateSessionRequest) string {
	sum := sha256.Sum256([]byte(req.Offer.String() + "|" + req.Student.String() + "|" + req.Tutor.String() + "|" + req.Acceptor.String()))
	return hex.EncodeToString(sum[:])
}

//go:generate mockery --name=Creator --dir=. --output=./mocks --filename=session_creator_mock.go --case=underscore
type Creator interface {
	Create(ctx context.Context, caller uuid.UUID, req *request.CreateSessionRequest, idempotencyKey string) (*CreateResult, error)
}

type creator struct {
	logger      *logrus.Logger
	repo        domainSession.Repository
	offerRepo   offer.Repository
	idempotency cache.IdempotencyStore
	dispatcher  infraTelemetry.Dispatcher
	now         func() time.Time
}

func NewCreator(
	logger *logrus.Logger,
	repo domainSession.Repository,
	offerRepo offer.Repository,
	idempotency cache.IdempotencyStore,
	dispatcher infraTelemetry.Dispatcher,
) Creator {
	return &creator{
		logger:      logger,
		repo:        repo,
		offerRepo:   offerRepo,
		idempotency: idempotency,
		dispatcher:  dispatcher,
		now:         time.Now,
	}
}

func (c *creator) Create(
	ctx context.Context,
	caller uuid.UUID,
	req *request.CreateSessionRequest,
	idempotencyKey string,
) (*CreateResult, error) {
	if caller != req.Student && caller != req.Tutor {
		return nil, domain.NewForbiddenError("only the student or the tutor can book this session")
	}

	if idempotencyKey != "" && c.idempotency != nil {
		stored, reserved, err := c.idempotency.Reserve(ctx, IdempotencyScope, caller.String(), idempotencyKey)
		if err != nil {
			if errors.Is(err, cache.ErrIdempotencyInFlight) {
				return nil, domain.NewConflictError("session", err.Error())
			}
			c.logger.WithError(err).Warn("idempotency store unavailable, creating without replay protection")
			idempotencyKey = ""
		} else if !reserved {
			var replay CreateResult
			if err := json.Unmarshal([]byte(stored), &replay); err != nil {
				c.logger.WithError(err).Error("failed to decode idempotent result")
				return nil, fmt.Errorf("failed to decode idempotent result: %w", err)
			}
			if replay.Fingerprint != requestFingerprint(req) {
				return nil, domain.NewConflictError("session", "idempotency key was already used for a different booking")
			}
			replay.Replayed = true
			return &replay, nil
		}
	}

	result, err := c.create(ctx, req)
	if idempotencyKey != "" && c.idempotency != nil {
		c.finishIdempotency(ctx, caller, idempotencyKey, requestFingerprint(req), result, err)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *creator) create(ctx context.Context, req *request.CreateSessionRequest) (*CreateResult, error) {
	now := c.now()
	s, err := c.repo.CreateFromOffer(ctx, req.Offer, req.Acceptor, func(o *offer.Offer) (*domainSession.Session, error) {
		s, err := domainSession.New(o, req.Student, req.Tutor, now)
		if err != nil {
			return nil, domain.NewValidationError("", err.Error())
		}
		return s, nil
	})
	if err != nil {
		c.logger.WithError(err).WithField("offer_id", req.Offer).Error("failed to create session")
		if isDomainError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	prometheus.SessionsCreated.Inc()
	evt := telemetry.NewLifecycleEvent(telemetry.SessionCreated, s.ID, now)
	evt.OfferID = s.OfferID
	evt.ActorID = req.Acceptor
	evt.Attributes["student_id"] = s.StudentID.String()
	evt.Attributes["tutor_id"] = s.TutorID.String()
	evt.Attributes["scheduled_start"] = s.ScheduledStart.UTC().Format(time.RFC3339)
	evt.Attributes["scheduled_end"] = s.ScheduledEnd.UTC().Format(time.RFC3339)
	c.dispatcher.Dispatch(evt)

	openOffers, err := c.offerRepo.ListOpen(ctx)
	if err != nil {
		// the booking is committed; only the refreshed catalogue is missing
		c.logger.WithError(err).Error("failed to list open offers")
		openOffers = []*offer.Offer{}
	}

	return &CreateResult{
		SessionID:  s.ID,
		OpenOffers: openOffers,
		Session:    s,
	}, nil
}

func (c *creator) finishIdempotency(
	ctx context.Context,
	caller uuid.UUID,
	key, fingerprint string,
	result *CreateResult,
	createErr error,
) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), IdempotencyFinishTimeout)
	defer cancel()

	owner := caller.String()
	if createErr != nil {
		if err := c.idempotency.Release(ctx, IdempotencyScope, owner, key); err != nil {
			c.logger.WithError(err).Warn("failed to release idempotency key")
		}
		return
	}
	stored := *result
	stored.Fingerprint = fingerprint
	payload, err := json.Marshal(&stored)
	if err != nil {
		c.logger.WithError(err).Error("failed to encode idempotent result")
		return
	}
	if err := c.idempotency.Complete(ctx, IdempotencyScope, owner, key, string(payload)); err != nil {
		c.logger.WithError(err).Warn("failed to store idempotent result")
	}
}

func isDomainError(err error) bool {
	return domain.IsNotFoundError(err) ||
		domain.IsValidationError(err) ||
		domain.IsConflictError(err) ||
		domain.IsForbiddenError(err)
}
