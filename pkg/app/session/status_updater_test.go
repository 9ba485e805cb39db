package session_test

import (
	"context"
	"testing"

	appSession "github.com/Anaselll/TeachMeApp/pkg/app/session"
	"github.com/Anaselll/TeachMeApp/pkg/domain"
	domainSession "github.com/Anaselll/TeachMeApp/pkg/domain/session"
	sessionMocks "github.com/Anaselll/TeachMeApp/pkg/domain/session/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusUpdater_Update(t *testing.T) {
	repo := sessionMocks.NewRepository(t)
	logger := newTestLogger()
	u := appSession.NewStatusUpdater(logger, repo, appSession.NewParticipantGuard(logger, repo))
	ctx := context.Background()
	s := newScheduledSession()
	completed := *s
	completed.Status = domainSession.StatusCompleted

	repo.On("GetByID", ctx, s.ID).Return(s, nil)
	repo.On("UpdateStatus", ctx, s.ID, domainSession.StatusScheduled, domainSession.StatusCompleted).Return(&completed, nil)

	updated, err := u.Update(ctx, s.TutorID, s.ID, domainSession.StatusCompleted)

	require.NoError(t, err)
	assert.Equal(t, domainSession.StatusCompleted, updated.Status)
}

func TestStatusUpdater_Update_ClosedSessionsStayClosed(t *testing.T) {
	repo := sessionMocks.NewRepository(t)
	logger := newTestLogger()
	u := appSession.NewStatusUpdater(logger, repo, appSession.NewParticipantGuard(logger, repo))
	ctx := context.Background()
	s := newScheduledSession()
	s.Status = domainSession.StatusCanceled

	repo.On("GetByID", ctx, s.ID).Return(s, nil)

	_, err := u.Update(ctx, s.StudentID, s.ID, domainSession.StatusCompleted)

	assert.True(t, domain.IsConflictError(err))
}

func TestStatusUpdater_Update_OutsiderIsForbidden(t *testing.T) {
	repo := sessionMocks.NewRepository(t)
	logger := newTestLogger()
	u := appSession.NewStatusUpdater(logger, repo, appSession.NewParticipantGuard(logger, repo))
	ctx := context.Background()
	s := newScheduledSession()

	repo.On("GetByID", ctx, s.ID).Return(s, nil)

	_, err := u.Update(ctx, uuid.New(), s.ID, domainSession.StatusCanceled)

	assert.True(t, domain.IsForbiddenError(err))
}
