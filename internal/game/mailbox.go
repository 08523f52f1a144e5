package game

import "sync"

// Notice is a message delivered to a player outside of their own turn.
// A fatal notice ends the receiving session once it has been shown.
type Notice struct {
	Lines []string `json:"lines"`
	Fatal bool     `json:"fatal,omitempty"`
}

// Mailbox is an unbounded FIFO of notices. Any goroutine may post; only the
// owning session drains it.
type Mailbox struct {
	mu    sync.Mutex
	queue []Notice
	ready chan struct{}
}

func NewMailbox() *Mailbox {
	return &Mailbox{
		ready: make(chan struct{}, 1),
	}
}

// Post appends a notice and wakes the owner. It never blocks.
func (m *Mailbox) Post(n Notice) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.queue = append(m.queue, n)
	select {
	case m.ready <- struct{}{}:
	default:
	}
}

// Ready receives a value whenever notices may be waiting.
func (m *Mailbox) Ready() <-chan struct{} {
	return m.ready
}

// Drain removes and returns every queued notice in posting order.
func (m *Mailbox) Drain() []Notice {
	m.mu.Lock()
	defer m.mu.Unlock()

	q := m.queue
	m.queue = nil
	select {
	case <-m.ready:
	default:
	}
	return q
}

// Len returns the number of queued notices.
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
