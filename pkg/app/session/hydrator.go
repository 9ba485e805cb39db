package session

import (
	"context"
	"fmt"

	"github.com/Anaselll/TeachMeApp/pkg/app/user"
	"github.com/Anaselll/TeachMeApp/pkg/domain/offer"
	domainSession "github.com/Anaselll/TeachMeApp/pkg/domain/session"
	domainUser "github.com/Anaselll/TeachMeApp/pkg/domain/user"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Hydrator attaches the offer, the student and the tutor to each session.
// Missing references are left nil.
//
//go:generate mockery --name=Hydrator --dir=. --output=./mocks --filename=session_hydrator_mock.go --case=underscore
type Hydrator interface {
	Hydrate(ctx context.Context, sessions []*domainSession.Session) error
}

type hydrator struct {
	logger     *logrus.Logger
	offerRepo  offer.Repository
	userFinder user.Finder
}

func NewHydrator(logger *logrus.Logger, offerRepo offer.Repository, userFinder user.Finder) Hydrator {
	return &hydrator{
		logger:     logger,
		offerRepo:  offerRepo,
		userFinder: userFinder,
	}
}

func (h *hydrator) Hydrate(ctx context.Context, sessions []*domainSession.Session) error {
	if len(sessions) == 0 {
		return nil
	}

	offerIDs := make([]uuid.UUID, 0, len(sessions))
	userIDs := make([]uuid.UUID, 0, 2*len(sessions))
	for _, s := range sessions {
		offerIDs = append(offerIDs, s.OfferID)
		userIDs = append(userIDs, s.StudentID, s.TutorID)
	}

	var (
		offers []*offer.Offer
		users  map[uuid.UUID]*domainUser.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		offers, err = h.offerRepo.ListByIDs(gctx, offerIDs)
		if err != nil {
			return fmt.Errorf("failed to load offers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		users, err = h.userFinder.FindByIDs(gctx, userIDs)
		if err != nil {
			return fmt.Errorf("failed to load users: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		h.logger.WithError(err).Error("failed to hydrate sessions")
		return err
	}

	offersByID := make(map[uuid.UUID]*offer.Offer, len(offers))
	for _, o := range offers {
		offersByID[o.ID] = o
	}
	for _, s := range sessions {
		s.Offer = offersByID[s.OfferID]
		s.Student = users[s.StudentID]
		s.Tutor = users[s.TutorID]
	}
	return nil
}
