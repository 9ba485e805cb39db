package session_test

import (
	"context"
	"errors"
	"testing"

	appSession "github.com/Anaselll/TeachMeApp/pkg/app/session"
	userMocks "github.com/Anaselll/TeachMeApp/pkg/app/user/mocks"
	"github.com/Anaselll/TeachMeApp/pkg/domain/offer"
	offerMocks "github.com/Anaselll/TeachMeApp/pkg/domain/offer/mocks"
	domainSession "github.com/Anaselll/TeachMeApp/pkg/domain/session"
	sessionMocks "github.com/Anaselll/TeachMeApp/pkg/domain/session/mocks"
	domainUser "github.com/Anaselll/TeachMeApp/pkg/domain/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLister_List_HydratesSessions(t *testing.T) {
	repo := sessionMocks.NewRepository(t)
	offers := offerMocks.NewRepository(t)
	users := userMocks.NewFinder(t)
	logger := newTestLogger()
	l := appSession.NewLister(logger, repo, appSession.NewHydrator(logger, offers, users))
	ctx := context.Background()

	student := &domainUser.User{ID: uuid.New(), FullName: "Sara"}
	tutor := &domainUser.User{ID: uuid.New(), FullName: "Omar"}
	o := &offer.Offer{ID: uuid.New(), Subject: "Algebra"}
	s := &domainSession.Session{ID: uuid.New(), OfferID: o.ID, StudentID: student.ID, TutorID: tutor.ID}
	orphan := &domainSession.Session{ID: uuid.New(), OfferID: uuid.New(), StudentID: student.ID, TutorID: uuid.New()}

	filter := domainSession.ListFilter{Role: domainSession.RoleStudent, UserID: student.ID, Status: domainSession.StatusScheduled}
	repo.On("List", ctx, filter).Return([]*domainSession.Session{s, orphan}, nil)
	offers.On("ListByIDs", mock.Anything, []uuid.UUID{o.ID, orphan.OfferID}).Return([]*offer.Offer{o}, nil)
	users.On("FindByIDs", mock.Anything, []uuid.UUID{student.ID, tutor.ID, student.ID, orphan.TutorID}).
		Return(map[uuid.UUID]*domainUser.User{student.ID: student, tutor.ID: tutor}, nil)

	sessions, err := l.List(ctx, filter)

	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, o, sessions[0].Offer)
	assert.Equal(t, student, sessions[0].Student)
	assert.Equal(t, tutor, sessions[0].Tutor)
	assert.Nil(t, sessions[1].Offer)
	assert.Nil(t, sessions[1].Tutor)
}

func TestLister_List_EmptyIsNotAnError(t *testing.T) {
	repo := sessionMocks.NewRepository(t)
	logger := newTestLogger()
	l := appSession.NewLister(logger, repo, appSession.NewHydrator(logger, offerMocks.NewRepository(t), userMocks.NewFinder(t)))
	ctx := context.Background()
	filter := domainSession.ListFilter{Role: domainSession.RoleTutor, UserID: uuid.New()}

	repo.On("List", ctx, filter).Return(nil, nil)

	sessions, err := l.List(ctx, filter)

	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func TestLister_List_HydrationFailure(t *testing.T) {
	repo := sessionMocks.NewRepository(t)
	offers := offerMocks.NewRepository(t)
	users := userMocks.NewFinder(t)
	logger := newTestLogger()
	l := appSession.NewLister(logger, repo, appSession.NewHydrator(logger, offers, users))
	ctx := context.Background()
	s := &domainSession.Session{ID: uuid.New(), OfferID: uuid.New(), StudentID: uuid.New(), TutorID: uuid.New()}
	filter := domainSession.ListFilter{Role: domainSession.RoleStudent, UserID: s.StudentID}

	repo.On("List", ctx, filter).Return([]*domainSession.Session{s}, nil)
	offers.On("ListByIDs", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
	users.On("FindByIDs", mock.Anything, mock.Anything).Return(map[uuid.UUID]*domainUser.User{}, nil).Maybe()

	_, err := l.List(ctx, filter)

	assert.ErrorContains(t, err, "failed to load offers")
}
