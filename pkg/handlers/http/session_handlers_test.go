package http

import (
	"errors"
	"net/http"
	"testing"
	"time"

	appSession "github.com/Anaselll/TeachMeApp/pkg/app/session"
	sessionAppMocks "github.com/Anaselll/TeachMeApp/pkg/app/session/mocks"
	"github.com/Anaselll/TeachMeApp/pkg/common"
	"github.com/Anaselll/TeachMeApp/pkg/domain"
	"github.com/Anaselll/TeachMeApp/pkg/domain/offer"
	domainSession "github.com/Anaselll/TeachMeApp/pkg/domain/session"
	"github.com/Anaselll/TeachMeApp/pkg/handlers/http/request"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateSessionHandler(t *testing.T) {
	student, tutor, offerID := uuid.New(), uuid.New(), uuid.New()
	body := fiberBody(offerID, student, tutor)

	t.Run("created", func(t *testing.T) {
		creator := sessionAppMocks.NewCreator(t)
		app := newTestApp(student)
		app.Post("/api/sessions/create", NewCreateSessionHandler(newTestBase(), newTestLogger(), creator).Handle)

		sessionID := uuid.New()
		creator.On("Create", mock.Anything, student, mock.MatchedBy(func(r *request.CreateSessionRequest) bool {
			return r.Offer == offerID && r.Acceptor == tutor
		}), "retry-1").Return(&appSession.CreateResult{
			SessionID:  sessionID,
			OpenOffers: []*offer.Offer{{ID: uuid.New(), Subject: "Physics"}},
		}, nil)

		resp, payload := doJSON(t, app, http.MethodPost, "/api/sessions/create", body,
			map[string]string{common.IdempotencyKeyHeader: "retry-1"})

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "session created successfully", payload["message"])
		assert.Equal(t, sessionID.String(), payload["session_id"])
		assert.Len(t, payload["offers"], 1)
		assert.Empty(t, resp.Header.Get(idempotentReplayHeader))
	})

	t.Run("replayed", func(t *testing.T) {
		creator := sessionAppMocks.NewCreator(t)
		app := newTestApp(student)
		app.Post("/api/sessions/create", NewCreateSessionHandler(newTestBase(), newTestLogger(), creator).Handle)

		creator.On("Create", mock.Anything, student, mock.Anything, "retry-1").
			Return(&appSession.CreateResult{SessionID: uuid.New(), OpenOffers: []*offer.Offer{}, Replayed: true}, nil)

		resp, _ := doJSON(t, app, http.MethodPost, "/api/sessions/create", body,
			map[string]string{common.IdempotencyKeyHeader: "retry-1"})

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "true", resp.Header.Get(idempotentReplayHeader))
	})

	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"offer not found", domain.NewNotFoundError("offer", offerID), http.StatusNotFound, ""},
		{"offer taken", domain.NewConflictError("offer", "offer is no longer open"), http.StatusConflict, ""},
		{"outsider", domain.NewForbiddenError("only the student or the tutor can book this session"), http.StatusForbidden, ""},
		{"store failure", errors.New("connection refused"), http.StatusInternalServerError, "error creating session"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := sessionAppMocks.NewCreator(t)
			app := newTestApp(student)
			app.Post("/api/sessions/create", NewCreateSessionHandler(newTestBase(), newTestLogger(), creator).Handle)
			creator.On("Create", mock.Anything, student, mock.Anything, "").Return(nil, tt.err)

			resp, payload := doJSON(t, app, http.MethodPost, "/api/sessions/create", body, nil)

			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, payload["error"])
			}
		})
	}

	t.Run("invalid body", func(t *testing.T) {
		app := newTestApp(student)
		app.Post("/api/sessions/create", NewCreateSessionHandler(newTestBase(), newTestLogger(), sessionAppMocks.NewCreator(t)).Handle)

		resp, _ := doJSON(t, app, http.MethodPost, "/api/sessions/create", "{not json", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp, payload := doJSON(t, app, http.MethodPost, "/api/sessions/create", map[string]string{"offer_id": offerID.String()}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, payload["error"], "student_id")
	})

	t.Run("unauthenticated", func(t *testing.T) {
		app := newTestApp(uuid.Nil)
		app.Post("/api/sessions/create", NewCreateSessionHandler(newTestBase(), newTestLogger(), sessionAppMocks.NewCreator(t)).Handle)

		resp, _ := doJSON(t, app, http.MethodPost, "/api/sessions/create", body, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func fiberBody(offerID, student, tutor uuid.UUID) map[string]string {
	return map[string]string{
		"offer_id":    offerID.String(),
		"student_id":  student.String(),
		"tutor_id":    tutor.String(),
		"accepted_by": tutor.String(),
	}
}

func TestListSessionsHandler(t *testing.T) {
	caller := uuid.New()

	t.Run("filters by role and status", func(t *testing.T) {
		lister := sessionAppMocks.NewLister(t)
		app := newTestApp(caller)
		app.Get("/api/sessions", NewListSessionsHandler(newTestBase(), newTestLogger(), lister).Handle)

		s := &domainSession.Session{
			ID:             uuid.New(),
			StudentID:      caller,
			TutorID:        uuid.New(),
			Status:         domainSession.StatusScheduled,
			ScheduledStart: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
			ScheduledEnd:   time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
			Offer:          &offer.Offer{Subject: "Algebra"},
		}
		lister.On("List", mock.Anything, domainSession.ListFilter{
			Role:   domainSession.RoleStudent,
			UserID: caller,
			Status: domainSession.StatusScheduled,
		}).Return([]*domainSession.Session{s}, nil)

		resp, _ := doJSON(t, app, http.MethodGet, "/api/sessions?role=student&status=scheduled&userId="+caller.String(), nil, nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("closed tab maps to canceled", func(t *testing.T) {
		lister := sessionAppMocks.NewLister(t)
		app := newTestApp(caller)
		app.Get("/api/sessions", NewListSessionsHandler(newTestBase(), newTestLogger(), lister).Handle)

		lister.On("List", mock.Anything, domainSession.ListFilter{
			Role:   domainSession.RoleTutor,
			UserID: caller,
			Status: domainSession.StatusCanceled,
		}).Return([]*domainSession.Session{}, nil)

		resp, _ := doJSON(t, app, http.MethodGet, "/api/sessions?role=tutor&status=closed", nil, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		app := newTestApp(caller)
		app.Get("/api/sessions", NewListSessionsHandler(newTestBase(), newTestLogger(), sessionAppMocks.NewLister(t)).Handle)

		resp, _ := doJSON(t, app, http.MethodGet, "/api/sessions?role=tutor&userId="+uuid.NewString(), nil, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("bad role", func(t *testing.T) {
		app := newTestApp(caller)
		app.Get("/api/sessions", NewListSessionsHandler(newTestBase(), newTestLogger(), sessionAppMocks.NewLister(t)).Handle)

		resp, _ := doJSON(t, app, http.MethodGet, "/api/sessions?role=admin", nil, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSignalReadyHandler(t *testing.T) {
	caller, sessionID := uuid.New(), uuid.New()
	path := "/api/sessions/" + sessionID.String() + "/room/ready"

	t.Run("ready", func(t *testing.T) {
		signaler := sessionAppMocks.NewReadinessSignaler(t)
		app := newTestApp(caller)
		app.Post("/api/sessions/:session/room/ready", NewSignalReadyHandler(newTestBase(), newTestLogger(), signaler).Handle)

		signaler.On("Signal", mock.Anything, caller, sessionID, domainSession.RoleTutor).
			Return(&appSession.ReadyResult{Ready: true}, nil)

		resp, payload := doJSON(t, app, http.MethodPost, path, map[string]string{"role": "tutor"}, nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "session is ready", payload["message"])
		assert.Equal(t, true, payload["ready"])
	})

	t.Run("not found", func(t *testing.T) {
		signaler := sessionAppMocks.NewReadinessSignaler(t)
		app := newTestApp(caller)
		app.Post("/api/sessions/:session/room/ready", NewSignalReadyHandler(newTestBase(), newTestLogger(), signaler).Handle)

		signaler.On("Signal", mock.Anything, caller, sessionID, domainSession.RoleStudent).
			Return(nil, domain.NewNotFoundError("session", sessionID))

		resp, _ := doJSON(t, app, http.MethodPost, path, map[string]string{"role": "student"}, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid role and id", func(t *testing.T) {
		app := newTestApp(caller)
		app.Post("/api/sessions/:session/room/ready", NewSignalReadyHandler(newTestBase(), newTestLogger(), sessionAppMocks.NewReadinessSignaler(t)).Handle)

		resp, _ := doJSON(t, app, http.MethodPost, path, map[string]string{"role": "observer"}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp, _ = doJSON(t, app, http.MethodPost, "/api/sessions/abc/room/ready", map[string]string{"role": "tutor"}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateSessionStatusHandler(t *testing.T) {
	caller, sessionID := uuid.New(), uuid.New()
	path := "/api/sessions/" + sessionID.String() + "/status"

	updater := sessionAppMocks.NewStatusUpdater(t)
	app := newTestApp(caller)
	app.Patch("/api/sessions/:session/status", NewUpdateSessionStatusHandler(newTestBase(), newTestLogger(), updater).Handle)

	updater.On("Update", mock.Anything, caller, sessionID, domainSession.StatusCompleted).
		Return(&domainSession.Session{ID: sessionID, Status: domainSession.StatusCompleted}, nil)
	updater.On("Update", mock.Anything, caller, sessionID, domainSession.StatusCanceled).
		Return(nil, domain.NewConflictError("session", "session status transition not allowed"))

	resp, payload := doJSON(t, app, http.MethodPatch, path, map[string]string{"status": "completed"}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", payload["status"])

	resp, _ = doJSON(t, app, http.MethodPatch, path, map[string]string{"status": "canceled"}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPatch, path, map[string]string{"status": "scheduled"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
