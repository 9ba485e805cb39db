package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appMessage "github.com/Anaselll/TeachMeApp/pkg/app/message"
	messageAppMocks "github.com/Anaselll/TeachMeApp/pkg/app/message/mocks"
	"github.com/Anaselll/TeachMeApp/pkg/common"
	"github.com/Anaselll/TeachMeApp/pkg/domain"
	domainMessage "github.com/Anaselll/TeachMeApp/pkg/domain/message"
	"github.com/Anaselll/TeachMeApp/pkg/handlers/http/request"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListMessagesHandler(t *testing.T) {
	caller, sessionID := uuid.New(), uuid.New()
	path := "/api/sessions/" + sessionID.String() + "/messages"

	t.Run("full history", func(t *testing.T) {
		lister := messageAppMocks.NewLister(t)
		app := newTestApp(caller)
		app.Get("/api/sessions/:session_id/messages", NewListMessagesHandler(newTestBase(), newTestLogger(), lister, 100).Handle)

		history := []*domainMessage.Message{
			{ID: uuid.New(), SessionID: sessionID, Content: "hello", CreatedAt: time.Now()},
			{ID: uuid.New(), SessionID: sessionID, Content: "hi", CreatedAt: time.Now()},
		}
		lister.On("List", mock.Anything, caller, sessionID, domainMessage.Page{}).
			Return(&appMessage.Page{Messages: history}, nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, resp.Header.Get(common.NextCursorHeader))

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var got []domainMessage.Message
		require.NoError(t, json.Unmarshal(body, &got))
		require.Len(t, got, 2)
		assert.Equal(t, "hello", got[0].Content)
	})

	t.Run("paged", func(t *testing.T) {
		lister := messageAppMocks.NewLister(t)
		app := newTestApp(caller)
		app.Get("/api/sessions/:session_id/messages", NewListMessagesHandler(newTestBase(), newTestLogger(), lister, 100).Handle)

		next := domainMessage.EncodeCursor(12)
		lister.On("List", mock.Anything, caller, sessionID, domainMessage.Page{After: 10, Limit: 2}).
			Return(&appMessage.Page{Messages: []*domainMessage.Message{{}, {}}, NextCursor: next}, nil)

		target := path + "?limit=2&after=" + domainMessage.EncodeCursor(10)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, next, resp.Header.Get(common.NextCursorHeader))
	})

	t.Run("limit above maximum", func(t *testing.T) {
		app := newTestApp(caller)
		app.Get("/api/sessions/:session_id/messages", NewListMessagesHandler(newTestBase(), newTestLogger(), messageAppMocks.NewLister(t), 100).Handle)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path+"?limit=1000", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("outsider", func(t *testing.T) {
		lister := messageAppMocks.NewLister(t)
		app := newTestApp(caller)
		app.Get("/api/sessions/:session_id/messages", NewListMessagesHandler(newTestBase(), newTestLogger(), lister, 100).Handle)

		lister.On("List", mock.Anything, caller, sessionID, domainMessage.Page{}).
			Return(nil, domain.NewForbiddenError("caller is not a participant of this session"))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestSendMessageHandler(t *testing.T) {
	caller, peer, sessionID := uuid.New(), uuid.New(), uuid.New()
	path := "/api/sessions/" + sessionID.String() + "/messages"

	t.Run("created", func(t *testing.T) {
		appender := messageAppMocks.NewAppender(t)
		app := newTestApp(caller)
		app.Post("/api/sessions/:session_id/messages", NewSendMessageHandler(newTestBase(), newTestLogger(), appender).Handle)

		appender.On("Append", mock.Anything, caller, sessionID, mock.MatchedBy(func(r *request.SendMessageRequest) bool {
			return r.Content == "hello" && r.Receiver == peer
		})).Return(&domainMessage.Message{
			ID: uuid.New(), SessionID: sessionID, SenderID: caller, ReceiverID: peer, Content: "hello", CreatedAt: time.Now(),
		}, nil)

		resp, payload := doJSON(t, app, http.MethodPost, path,
			map[string]string{"content": "hello", "receiver_id": peer.String(), "sender_id": caller.String()}, nil)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "hello", payload["content"])
		assert.Equal(t, caller.String(), payload["sender_id"])
	})

	t.Run("empty content", func(t *testing.T) {
		app := newTestApp(caller)
		app.Post("/api/sessions/:session_id/messages", NewSendMessageHandler(newTestBase(), newTestLogger(), messageAppMocks.NewAppender(t)).Handle)

		resp, _ := doJSON(t, app, http.MethodPost, path, map[string]string{"content": "   "}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rate limited", func(t *testing.T) {
		appender := messageAppMocks.NewAppender(t)
		app := newTestApp(caller)
		app.Post("/api/sessions/:session_id/messages", NewSendMessageHandler(newTestBase(), newTestLogger(), appender).Handle)

		appender.On("Append", mock.Anything, caller, sessionID, mock.Anything).
			Return(nil, &appMessage.RateLimitedError{Limit: 30, RetryAfter: 1500 * time.Millisecond})

		resp, _ := doJSON(t, app, http.MethodPost, path, map[string]string{"content": "spam"}, nil)
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
		assert.Equal(t, "2", resp.Header.Get("Retry-After"))
	})
}
