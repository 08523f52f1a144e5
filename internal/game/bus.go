package game

import (
	"fmt"
	"sync"
)

// Bus carries notices between sessions. The in-process LocalBus is used when
// no message broker is configured; messaging.NatsServer satisfies it too.
type Bus interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte)) (unsubscribe func(), err error)
}

// PlayerSubject is the bus subject a player's mailbox listens on.
func PlayerSubject(charId string) string {
	return fmt.Sprintf("player-%s", charId)
}

// LocalBus delivers synchronously to in-process subscribers, preserving
// publish order per subject.
type LocalBus struct {
	mu     sync.RWMutex
	nextId int
	subs   map[string]map[int]func([]byte)
}

func NewLocalBus() *LocalBus {
	return &LocalBus{
		subs: make(map[string]map[int]func([]byte)),
	}
}

func (b *LocalBus) Publish(subject string, data []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, h := range b.subs[subject] {
		h(data)
	}
	return nil
}

func (b *LocalBus) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	if handler == nil {
		return nil, fmt.Errorf("subscribing to %q: nil handler", subject)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextId
	b.nextId++
	if b.subs[subject] == nil {
		b.subs[subject] = make(map[int]func([]byte))
	}
	b.subs[subject][id] = handler

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs[subject], id)
			if len(b.subs[subject]) == 0 {
				delete(b.subs, subject)
			}
		})
	}, nil
}
