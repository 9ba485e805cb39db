package relay

import (
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Conn is the write side of a relay socket.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Member is one connected socket. Frames are queued on a bounded buffer and
// written by WritePump; a full buffer drops the frame.
type Member struct {
	ID     string
	UserID uuid.UUID

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newMember(userID uuid.UUID, bufferSize int) *Member {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Member{
		ID:     uuid.NewString(),
		UserID: userID,
		send:   make(chan []byte, bufferSize),
		done:   make(chan struct{}),
	}
}

// Send queues frame without blocking and reports whether it was accepted.
func (m *Member) Send(frame []byte) bool {
	select {
	case <-m.done:
		return false
	default:
	}
	select {
	case m.send <- frame:
		return true
	default:
		return false
	}
}

// Done is closed once the member left the hub.
func (m *Member) Done() <-chan struct{} {
	return m.done
}

func (m *Member) close() {
	m.closeOnce.Do(func() {
		close(m.done)
	})
}

// WritePump owns every write to conn until the member is closed or a write
// fails. It also sends the keepalive pings.
func (m *Member) WritePump(conn Conn, pingPeriod, writeWait time.Duration) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case frame := <-m.send:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return err
			}
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		case <-m.done:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return nil
		}
	}
}
