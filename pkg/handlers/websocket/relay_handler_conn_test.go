package websocket

import (
	"net"
	"sync"
	"testing"
	"time"

	appRelay "github.com/Anaselll/TeachMeApp/pkg/app/relay"
	appSession "github.com/Anaselll/TeachMeApp/pkg/app/session"
	sessionAppMocks "github.com/Anaselll/TeachMeApp/pkg/app/session/mocks"
	"github.com/Anaselll/TeachMeApp/pkg/common"
	"github.com/Anaselll/TeachMeApp/pkg/config"
	domainSession "github.com/Anaselll/TeachMeApp/pkg/domain/session"
	infraWebsocket "github.com/Anaselll/TeachMeApp/pkg/infra/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	gorillaws "github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func serveRelay(t *testing.T, hub appRelay.Hub, guard appSession.ParticipantGuard) string {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	h := NewRelayHandler(logger, hub, guard, config.WebSocketConfig{
		SendBuffer:     8,
		MaxMessageSize: 4096,
		PongWait:       5 * time.Second,
		PingPeriod:     time.Second,
		WriteWait:      time.Second,
	}, time.Second)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use("/ws/relay", func(c *fiber.Ctx) error {
		caller, err := uuid.Parse(c.Query("user"))
		if err != nil {
			return fiber.ErrUnauthorized
		}
		c.Locals(string(common.CallerIDContextKey), caller)
		return c.Next()
	})
	app.Get("/ws/relay", websocket.New(h.Handle))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.ShutdownWithTimeout(2 * time.Second) })

	return "ws://" + ln.Addr().String() + "/ws/relay"
}

func TestRelayHandler_ConnectionsCloseCleanly(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	hub := appRelay.NewHub(logger, "node-test", nil)
	t.Cleanup(hub.Shutdown)

	s := &domainSession.Session{ID: uuid.New(), StudentID: uuid.New(), TutorID: uuid.New()}
	guard := sessionAppMocks.NewParticipantGuard(t)
	guard.On("Authorize", mock.Anything, s.ID, mock.Anything).Return(s, nil).Maybe()

	url := serveRelay(t, hub, guard)
	room := s.ID.String()

	const clients = 100
	var wg sync.WaitGroup
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(user uuid.UUID) {
			defer wg.Done()
			conn, _, err := gorillaws.DefaultDialer.Dial(url+"?user="+user.String(), nil)
			if !assert.NoError(t, err) {
				return
			}
			defer conn.Close()

			join, err := infraWebsocket.EncodeEnvelope(infraWebsocket.EventJoinSession, infraWebsocket.JoinSessionData{SessionID: room})
			assert.NoError(t, err)
			assert.NoError(t, conn.WriteMessage(gorillaws.TextMessage, join))
			// an unknown event gets an error frame back, which proves the
			// write side is live before the client drops
			unknown, err := infraWebsocket.EncodeEnvelope("dance", nil)
			assert.NoError(t, err)
			assert.NoError(t, conn.WriteMessage(gorillaws.TextMessage, unknown))

			assert.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
			for {
				_, data, err := conn.ReadMessage()
				if !assert.NoError(t, err) {
					return
				}
				env, err := infraWebsocket.DecodeEnvelope(data)
				if assert.NoError(t, err) && env.Event == infraWebsocket.EventError {
					return
				}
			}
		}(uuid.New())
	}
	wg.Wait()

	require.Eventually(t, func() bool { return hub.RoomSize(room) == 0 }, 2*time.Second, 10*time.Millisecond)

	// the server keeps accepting after every earlier connection was recycled
	conn, _, err := gorillaws.DefaultDialer.Dial(url+"?user="+uuid.NewString(), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.WriteMessage(gorillaws.TextMessage, []byte("not json")))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	env, err := infraWebsocket.DecodeEnvelope(data)
	require.NoError(t, err)
	assert.Equal(t, infraWebsocket.EventError, env.Event)
}

func TestRelayHandler_ServerCloseSendsCloseFrame(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	hub := appRelay.NewHub(logger, "node-test", nil)
	guard := sessionAppMocks.NewParticipantGuard(t)

	url := serveRelay(t, hub, guard)
	conn, _, err := gorillaws.DefaultDialer.Dial(url+"?user="+uuid.NewString(), nil)
	require.NoError(t, err)
	defer conn.Close()

	// give Handle time to register the member before shutting the hub down
	time.Sleep(50 * time.Millisecond)
	hub.Shutdown()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, gorillaws.IsCloseError(err, gorillaws.CloseNormalClosure), "unexpected error: %v", err)
}
