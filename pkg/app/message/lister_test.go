package message_test

import (
	"context"
	"testing"

	appMessage "github.com/Anaselll/TeachMeApp/pkg/app/message"
	sessionAppMocks "github.com/Anaselll/TeachMeApp/pkg/app/session/mocks"
	"github.com/Anaselll/TeachMeApp/pkg/domain"
	domainMessage "github.com/Anaselll/TeachMeApp/pkg/domain/message"
	messageMocks "github.com/Anaselll/TeachMeApp/pkg/domain/message/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLister_List_FullHistoryByDefault(t *testing.T) {
	repo := messageMocks.NewRepository(t)
	guard := sessionAppMocks.NewParticipantGuard(t)
	l := appMessage.NewLister(newTestLogger(), repo, guard, 2)
	ctx := context.Background()
	s := newSession()
	history := []*domainMessage.Message{{Seq: 1}, {Seq: 2}, {Seq: 3}}

	guard.On("Authorize", ctx, s.ID, s.StudentID).Return(s, nil)
	repo.On("ListBySession", ctx, s.ID, domainMessage.Page{}).Return(history, nil)

	page, err := l.List(ctx, s.StudentID, s.ID, domainMessage.Page{})

	require.NoError(t, err)
	assert.Equal(t, history, page.Messages)
	assert.Empty(t, page.NextCursor)
}

func TestLister_List_Paginates(t *testing.T) {
	repo := messageMocks.NewRepository(t)
	guard := sessionAppMocks.NewParticipantGuard(t)
	l := appMessage.NewLister(newTestLogger(), repo, guard, 2)
	ctx := context.Background()
	s := newSession()

	guard.On("Authorize", ctx, s.ID, s.TutorID).Return(s, nil)
	repo.On("ListBySession", ctx, s.ID, domainMessage.Page{After: 4, Limit: 2}).
		Return([]*domainMessage.Message{{Seq: 5}, {Seq: 6}}, nil)
	repo.On("ListBySession", ctx, s.ID, domainMessage.Page{After: 6, Limit: 2}).
		Return([]*domainMessage.Message{{Seq: 7}}, nil)

	// a cursor without a limit reads the default page size
	page, err := l.List(ctx, s.TutorID, s.ID, domainMessage.Page{After: 4})
	require.NoError(t, err)
	require.Len(t, page.Messages, 2)
	assert.Equal(t, domainMessage.EncodeCursor(6), page.NextCursor)

	page, err = l.List(ctx, s.TutorID, s.ID, domainMessage.Page{After: 6, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Messages, 1)
	assert.Empty(t, page.NextCursor)
}

func TestLister_List_Unauthorized(t *testing.T) {
	repo := messageMocks.NewRepository(t)
	guard := sessionAppMocks.NewParticipantGuard(t)
	l := appMessage.NewLister(newTestLogger(), repo, guard, 50)
	ctx := context.Background()
	id, caller := uuid.New(), uuid.New()

	guard.On("Authorize", ctx, id, caller).Return(nil, domain.NewNotFoundError("session", id))

	_, err := l.List(ctx, caller, id, domainMessage.Page{})

	assert.True(t, domain.IsNotFoundError(err))
}
