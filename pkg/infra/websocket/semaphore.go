package websocket

// Semaphore bounds the number of concurrently open relay sockets.
type Semaphore struct {
	connections chan struct{}
}

func NewSemaphore(maxConnections int) *Semaphore {
	return &Semaphore{
		connections: make(chan struct{}, maxConnections),
	}
}

// Acquire never blocks; it reports false when the limit is reached.
func (s *Semaphore) Acquire() bool {
	select {
	case s.connections <- struct{}{}:
		return true
	default:
		return false
	}
}

func (s *Semaphore) Release() {
	select {
	case <-s.connections:
	default:
	}
}

func (s *Semaphore) GetCurrentConnections() int {
	return len(s.connections)
}

func (s *Semaphore) Capacity() int {
	return cap(s.connections)
}
